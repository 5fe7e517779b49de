package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesstingley17/luna-ai/internal/content"
	"github.com/jesstingley17/luna-ai/internal/store"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson <course> <module#> <lesson#>",
	Short: "Generate the body of one lesson",
	Long:  "Fills the body of one lesson in a saved course: written content, quiz questions, or a video clip, depending on the lesson type.",
	Args:  cobra.ExactArgs(3),
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
		path, lesson, err := findLessonPath(course, args[1], args[2])
		if err != nil {
			return err
		}

		orch, err := newOrchestrator(ctx, st)
		if err != nil {
			return err
		}

		fmt.Printf("Generating %q (%s)...\n", lesson.Title, lesson.Type)
		updated, err := orch.GenerateLessonBody(ctx, course, path)
		if err != nil {
			return err
		}

		if err := store.UpsertCourse(ctx, adapter, updated); err != nil {
			return fmt.Errorf("save course: %w", err)
		}

		printLessonSummary(updated, path)
		return nil
	},
}

func printLessonSummary(course content.Course, path content.Path) {
	for _, m := range course.Modules {
		if m.ID != path.ModuleID {
			continue
		}
		for _, l := range m.Lessons {
			if l.ID != path.LessonID {
				continue
			}
			switch p := l.Payload.(type) {
			case content.TextPayload:
				fmt.Printf("Done: %d characters of lesson content.\n", len(p.Content))
			case content.QuizPayload:
				fmt.Printf("Done: %d quiz questions. Take it with `luna quiz`.\n", len(p.Questions))
			case content.VideoPayload:
				fmt.Printf("Done: video at %s\n", p.URL)
			case content.InteractivePayload:
				fmt.Printf("Done: guided lesson with %d steps.\n", len(p.Lesson.Steps))
			}
		}
	}
}
