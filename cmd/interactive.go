package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesstingley17/luna-ai/internal/content"
	"github.com/jesstingley17/luna-ai/internal/store"
	"github.com/jesstingley17/luna-ai/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Generate a guided lesson interactively",
	Long:  "Opens the guided-lesson screen: type a topic and watch the lesson build step by step with illustrations and narration. An unfinished topic is kept as a draft for next time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

func runInteractive(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	adapter := st.Records()

	orch, err := newOrchestrator(ctx, st)
	if err != nil {
		return err
	}

	draft, _, err := store.TopicDraft(ctx, adapter)
	if err != nil {
		return err
	}

	model, err := tui.Run(orch.GenerateInteractive, draft)
	if err != nil {
		return err
	}

	lesson, ok := model.Result()
	if !ok {
		// Keep what the user typed so the next session resumes it.
		if topic := model.Topic(); topic != "" {
			return store.SaveTopicDraft(ctx, adapter, topic)
		}
		return nil
	}

	course := content.Course{
		ID:          content.NewID(),
		Title:       lesson.Topic,
		Description: fmt.Sprintf("A guided lesson on %s.", lesson.Topic),
		Modules: []content.Module{{
			ID:    content.NewID(),
			Title: "Guided lesson",
			Lessons: []content.Lesson{{
				ID:      content.NewID(),
				Title:   lesson.Topic,
				Type:    content.LessonInteractive,
				Payload: content.InteractivePayload{Lesson: lesson},
			}},
		}},
	}

	if err := store.UpsertCourse(ctx, adapter, course); err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	if err := store.ClearTopicDraft(ctx, adapter); err != nil {
		return fmt.Errorf("clear topic draft: %w", err)
	}

	fmt.Printf("Saved guided lesson %q (%d steps) as course %s\n",
		lesson.Topic, len(lesson.Steps), course.ID)
	return nil
}
