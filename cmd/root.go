package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jesstingley17/luna-ai/internal/content"
	"github.com/jesstingley17/luna-ai/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "luna",
	Short: "AI course generator",
	Long:  "Luna — generates complete learning courses on any topic: lessons, quizzes, narrated guided walkthroughs, and video.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LUNA_DB env var)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(teaserCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then LUNA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the DB path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// findCourse resolves a course argument: a 1-based list position or an
// ID prefix.
func findCourse(courses []content.Course, arg string) (content.Course, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(courses) {
			return content.Course{}, fmt.Errorf("course %d not found (have %d)", n, len(courses))
		}
		return courses[n-1], nil
	}
	var matches []content.Course
	for _, c := range courses {
		if strings.HasPrefix(c.ID, arg) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return content.Course{}, fmt.Errorf("no course matches %q", arg)
	default:
		return content.Course{}, fmt.Errorf("%q is ambiguous: %d courses match", arg, len(matches))
	}
}

// findLessonPath resolves 1-based module and lesson positions to a
// tree path.
func findLessonPath(c content.Course, moduleArg, lessonArg string) (content.Path, content.Lesson, error) {
	m, err := strconv.Atoi(moduleArg)
	if err != nil || m < 1 || m > len(c.Modules) {
		return content.Path{}, content.Lesson{}, fmt.Errorf("invalid module %q (course has %d modules)", moduleArg, len(c.Modules))
	}
	module := c.Modules[m-1]

	l, err := strconv.Atoi(lessonArg)
	if err != nil || l < 1 || l > len(module.Lessons) {
		return content.Path{}, content.Lesson{}, fmt.Errorf("invalid lesson %q (module has %d lessons)", lessonArg, len(module.Lessons))
	}
	lesson := module.Lessons[l-1]

	return content.Path{ModuleID: module.ID, LessonID: lesson.ID}, lesson, nil
}
