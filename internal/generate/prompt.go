package generate

import (
	"fmt"
	"strings"

	"github.com/jesstingley17/luna-ai/internal/content"
)

const courseSystemPrompt = `You are an expert curriculum designer. You plan engaging, well-paced learning courses for curious adults: no prior expertise assumed, no filler.`

func buildCourseUserMessage(topic string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", topic))
	b.WriteString(`
Instructions:
Design a course outline for this topic:
1. Create 3-5 modules that build on each other, from fundamentals to application.
2. Give each module 2-4 lessons. Mix lesson types: mostly "text", with an occasional "video" for visual concepts, a "quiz" at the end of a module to check understanding, and "interactive" for topics that benefit from guided step-by-step walkthroughs.
3. Lesson titles must be specific enough to generate the lesson body from the title alone.
4. Do not write any lesson content yet. Only the outline.`)

	return b.String()
}

const lessonSystemPrompt = `You are an expert teacher writing a single lesson for a self-paced course. Write clearly and concretely, with examples. The reader has completed every earlier lesson in the course.`

func buildLessonUserMessage(course content.Course, moduleTitle, lessonTitle string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Course: %s\n", course.Title))
	b.WriteString(fmt.Sprintf("Course description: %s\n", course.Description))
	b.WriteString(fmt.Sprintf("Module: %s\n", moduleTitle))
	b.WriteString(fmt.Sprintf("Lesson: %s\n", lessonTitle))

	b.WriteString("\nCourse outline so far:\n")
	for _, m := range course.Modules {
		b.WriteString(fmt.Sprintf("- %s\n", m.Title))
		for _, l := range m.Lessons {
			b.WriteString(fmt.Sprintf("  - %s (%s)\n", l.Title, l.Type))
		}
	}

	b.WriteString(`
Instructions:
Write the full body of this one lesson:
1. 400-800 words. Use HTML: <h2>/<h3> headings, <p> paragraphs, <ul>/<ol> lists, <strong> for key terms.
2. Open with why this lesson matters, then teach the material with at least one concrete example.
3. Close with a short recap list of what the reader can now do.
4. Do not repeat material from other lessons in the outline. Do not include the lesson title as a heading.`)

	return b.String()
}

const quizSystemPrompt = `You are writing a quiz for a self-paced course. Questions test understanding of ideas, not recall of exact phrasing. Some questions have more than one correct option.`

func buildQuizUserMessage(course content.Course, moduleTitle, lessonTitle string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Course: %s\n", course.Title))
	b.WriteString(fmt.Sprintf("Module: %s\n", moduleTitle))
	b.WriteString(fmt.Sprintf("Quiz lesson: %s\n", lessonTitle))

	b.WriteString("\nLessons this quiz covers:\n")
	for _, m := range course.Modules {
		if m.Title != moduleTitle {
			continue
		}
		for _, l := range m.Lessons {
			if l.Type != content.LessonQuiz {
				b.WriteString(fmt.Sprintf("- %s\n", l.Title))
			}
		}
	}

	b.WriteString(`
Instructions:
Write 4-6 multiple-choice questions covering the lessons above:
1. Each question has 3-5 options. List every correct option's zero-based index in correctAnswers, ascending.
2. Include at least one question with two or more correct options.
3. Wrong options must be plausible, not jokes.`)

	return b.String()
}

const interactiveSystemPrompt = `You are an expert teacher designing a guided, narrated lesson. The learner moves through the steps in order, seeing an illustration and hearing narration for each, then takes a short quiz.`

func buildInteractiveUserMessage(topic string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", topic))
	b.WriteString(`
Instructions:
Design a guided lesson on this topic:
1. Create 4-7 steps that build a complete understanding, each teaching exactly one idea.
2. Each step's explanation is read aloud as narration: write it in a natural spoken register, 3-5 sentences.
3. Each step's imagePrompt describes a single clear illustration for that idea. Concrete subjects, no text in the image.
4. End with a 3-5 question quiz over the steps. List every correct option's zero-based index in correctAnswers, ascending.`)

	return b.String()
}

const teaserPromptTemplate = `A short, energetic teaser for an online course titled "%s". %s Dynamic camera, vivid imagery evoking the subject, no on-screen text.`

func buildTeaserPrompt(course content.Course) string {
	return fmt.Sprintf(teaserPromptTemplate, course.Title, course.Description)
}

const thumbnailPromptTemplate = `Cover illustration for an online course titled "%s". %s Flat modern illustration style, bold shapes, no text.`

func buildThumbnailPrompt(title, description string) string {
	return fmt.Sprintf(thumbnailPromptTemplate, title, description)
}

func buildLessonVideoPrompt(course content.Course, lessonTitle string) string {
	return fmt.Sprintf(`An educational clip for the lesson "%s" in a course about %s. Clear visual demonstration of the concept, steady pacing, no on-screen text.`,
		lessonTitle, course.Title)
}

// buildNarrationText joins a step's explanation and key points into the
// text read aloud for that step.
func buildNarrationText(step content.LessonStep) string {
	var b strings.Builder
	b.WriteString(step.Explanation)
	if len(step.KeyPoints) > 0 {
		b.WriteString(" Remember: ")
		b.WriteString(strings.Join(step.KeyPoints, ". "))
		b.WriteString(".")
	}
	return b.String()
}
