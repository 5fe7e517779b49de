package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesstingley17/luna-ai/internal/store"
)

var teaserCmd = &cobra.Command{
	Use:   "teaser <course>",
	Short: "Generate a teaser video for a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		adapter := st.Records()

		courses, err := store.Courses(ctx, adapter)
		if err != nil {
			return err
		}
		course, err := findCourse(courses, args[0])
		if err != nil {
			return err
		}

		orch, err := newOrchestrator(ctx, st)
		if err != nil {
			return err
		}

		fmt.Printf("Generating teaser for %q... this can take a few minutes.\n", course.Title)
		updated, err := orch.GenerateTeaser(ctx, course)
		if err != nil {
			return err
		}

		if err := store.UpsertCourse(ctx, adapter, updated); err != nil {
			return fmt.Errorf("save course: %w", err)
		}

		fmt.Printf("Teaser ready: %s\n", updated.TeaserVideoURL)
		return nil
	},
}
