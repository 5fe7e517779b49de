package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jesstingley17/luna-ai/internal/audio"
	"github.com/jesstingley17/luna-ai/internal/content"
	"github.com/jesstingley17/luna-ai/internal/playback"
	"github.com/jesstingley17/luna-ai/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play <course> <module#> <lesson#>",
	Short: "Play a guided lesson's narration",
	Long:  "Decodes the narration audio of a guided lesson and writes each step to a WAV file. With --step, only that step is played.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		step, _ := cmd.Flags().GetInt("step")
		outDir, _ := cmd.Flags().GetString("out")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		courses, err := store.Courses(cmd.Context(), st.Records())
		if err != nil {
			return err
		}
		course, err := findCourse(courses, args[0])
		if err != nil {
			return err
		}
		_, lesson, err := findLessonPath(course, args[1], args[2])
		if err != nil {
			return err
		}

		p, ok := lesson.Payload.(content.InteractivePayload)
		if !ok {
			return fmt.Errorf("lesson %q has no narration", lesson.Title)
		}

		if outDir == "" {
			outDir = "."
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}

		if step < 0 || step > len(p.Lesson.Steps) {
			return fmt.Errorf("step %d not found (lesson has %d)", step, len(p.Lesson.Steps))
		}

		controller := playback.New(playback.FileDriver{Dir: outDir},
			playback.WithNotify(func(e playback.Event) {
				switch e {
				case playback.EventStarted:
					fmt.Println("  narration started")
				case playback.EventEnded:
					fmt.Println("  narration ended")
				}
			}))
		defer controller.Stop()

		for i, s := range p.Lesson.Steps {
			if step > 0 && step != i+1 {
				continue
			}
			if s.AudioData == "" {
				fmt.Printf("step %d %q: no narration\n", i+1, s.Title)
				continue
			}

			clip, err := audio.DecodeNarration(s.AudioData)
			if err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			fmt.Printf("step %d %q (%s)\n", i+1, s.Title, clip.Duration().Round(0))

			if err := controller.Play(clip); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		fmt.Printf("WAV files written to %s\n", outDir)
		return nil
	},
}

func init() {
	playCmd.Flags().Int("step", 0, "Play only this step (1-based)")
	playCmd.Flags().String("out", "", "Directory for exported WAV files (default current directory)")
}
