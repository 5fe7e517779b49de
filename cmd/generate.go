package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jesstingley17/luna-ai/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a new course outline",
	Long:  "Generates a course outline for the topic: modules and typed lesson stubs. Lesson bodies are filled on demand with `luna lesson`.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		orch, err := newOrchestrator(ctx, st)
		if err != nil {
			return err
		}

		fmt.Printf("Generating course outline for %q...\n", topic)
		course, err := orch.GenerateCourse(ctx, topic)
		if err != nil {
			return err
		}

		adapter := st.Records()
		if err := store.UpsertCourse(ctx, adapter, course); err != nil {
			return fmt.Errorf("save course: %w", err)
		}
		if err := store.ClearTopicDraft(ctx, adapter); err != nil {
			return fmt.Errorf("clear topic draft: %w", err)
		}

		fmt.Printf("\n%s\n%s\n\n", course.Title, course.Description)
		for i, m := range course.Modules {
			fmt.Printf("%d. %s\n", i+1, m.Title)
			for j, l := range m.Lessons {
				fmt.Printf("   %d.%d %s (%s)\n", i+1, j+1, l.Title, l.Type)
			}
		}
		fmt.Printf("\nSaved as %s\n", course.ID)
		return nil
	},
}
