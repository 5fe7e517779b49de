package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jesstingley17/luna-ai/internal/content"
	"github.com/jesstingley17/luna-ai/internal/quiz"
	"github.com/jesstingley17/luna-ai/internal/store"
	"github.com/jesstingley17/luna-ai/internal/ui/theme"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <course> <module#> <lesson#>",
	Short: "Take a quiz lesson",
	Long:  "Takes a generated quiz. Questions can have several correct options; answer with the option letters, e.g. \"a\" or \"a,c\". Scoring requires the exact correct set.",
	Args:  cobra.ExactArgs(3),
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
		_, lesson, err := findLessonPath(course, args[1], args[2])
		if err != nil {
			return err
		}

		questions, err := quizQuestions(lesson)
		if err != nil {
			return err
		}

		return runQuiz(lesson.Title, questions)
	},
}

func quizQuestions(lesson content.Lesson) ([]content.QuizQuestion, error) {
	switch p := lesson.Payload.(type) {
	case content.QuizPayload:
		return p.Questions, nil
	case content.InteractivePayload:
		return p.Lesson.Quiz, nil
	case nil:
		return nil, fmt.Errorf("lesson %q has no body yet, generate it first", lesson.Title)
	default:
		return nil, fmt.Errorf("lesson %q is not a quiz", lesson.Title)
	}
}

func runQuiz(title string, questions []content.QuizQuestion) error {
	if len(questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}

	fmt.Println(theme.Title.Render(title))
	fmt.Println()

	var sheet quiz.Sheet
	scanner := bufio.NewScanner(os.Stdin)

	for qi, q := range questions {
		fmt.Printf("%d. %s\n", qi+1, q.Question)
		for oi, opt := range q.Options {
			fmt.Printf("   %c) %s\n", 'a'+oi, opt)
		}
		fmt.Print("> ")

		if !scanner.Scan() {
			break
		}
		for _, oi := range parseAnswers(scanner.Text(), len(q.Options)) {
			sheet = sheet.Toggle(qi, oi)
		}
		fmt.Println()
	}

	sheet = sheet.Submit()
	score := quiz.Score(questions, sheet)

	fmt.Printf("Score: %d/%d\n\n", score, len(questions))
	for qi, q := range questions {
		got := sheet.Selected(qi)
		key := content.NormalizeAnswerKey(q.CorrectAnswers)
		mark := theme.Correct.Render("✓")
		if !sameAnswers(got, key) {
			mark = theme.Incorrect.Render("✗")
			mark += fmt.Sprintf("  (correct: %s)", answerLetters(key))
		}
		fmt.Printf("%d. %s %s\n", qi+1, q.Question, mark)
	}
	return scanner.Err()
}

// parseAnswers reads option letters ("a", "a,c", "a c") into indices,
// dropping anything out of range.
func parseAnswers(line string, optionCount int) []int {
	var out []int
	for _, tok := range strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		tok = strings.TrimSpace(tok)
		if len(tok) == 1 && tok[0] >= 'a' && int(tok[0]-'a') < optionCount {
			out = append(out, int(tok[0]-'a'))
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil && n >= 1 && n <= optionCount {
			out = append(out, n-1)
		}
	}
	return out
}

func answerLetters(indices []int) string {
	letters := make([]string, len(indices))
	for i, idx := range indices {
		letters[i] = string(rune('a' + idx))
	}
	return strings.Join(letters, ",")
}

func sameAnswers(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[int]bool, len(want))
	for _, w := range want {
		seen[w] = true
	}
	for _, g := range got {
		if !seen[g] {
			return false
		}
	}
	return true
}
