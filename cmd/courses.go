package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jesstingley17/luna-ai/internal/content"
	"github.com/jesstingley17/luna-ai/internal/store"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List saved courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		courses, err := store.Courses(cmd.Context(), st.Records())
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Println("No courses yet. Start with `luna generate <topic>`.")
			return nil
		}

		for i, c := range courses {
			total, generated := lessonCounts(c)
			extras := []string{}
			if c.Thumbnail != "" {
				extras = append(extras, "thumbnail")
			}
			if c.TeaserVideoURL != "" {
				extras = append(extras, "teaser")
			}
			suffix := ""
			if len(extras) > 0 {
				suffix = " · " + strings.Join(extras, ", ")
			}
			fmt.Printf("%d. %s  [%s]\n   %d/%d lessons generated%s\n",
				i+1, c.Title, c.ID, generated, total, suffix)
		}
		return nil
	},
}

var coursesShowCmd = &cobra.Command{
	Use:   "show <course>",
	Short: "Show a course outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		fmt.Printf("%s\n%s\n\n", course.Title, course.Description)
		for i, m := range course.Modules {
			fmt.Printf("%d. %s\n", i+1, m.Title)
			for j, l := range m.Lessons {
				mark := " "
				if l.Generated() {
					mark = "✓"
				}
				fmt.Printf("   %s %d.%d %s (%s)\n", mark, i+1, j+1, l.Title, l.Type)
			}
		}
		return nil
	},
}

var coursesDeleteCmd = &cobra.Command{
	Use:   "delete <course>",
	Short: "Delete a course",
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

		if err := store.DeleteCourse(ctx, adapter, course.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", course.Title)
		return nil
	},
}

func init() {
	coursesCmd.AddCommand(coursesShowCmd)
	coursesCmd.AddCommand(coursesDeleteCmd)
}

func lessonCounts(c content.Course) (total, generated int) {
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			total++
			if l.Generated() {
				generated++
			}
		}
	}
	return total, generated
}
