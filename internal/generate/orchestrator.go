// Package generate orchestrates course and lesson generation: it turns
// topics into course outlines, fills lesson bodies on demand, and
// assembles fully narrated interactive lessons.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jesstingley17/luna-ai/internal/content"
	"github.com/jesstingley17/luna-ai/internal/llm"
	"github.com/jesstingley17/luna-ai/internal/media"
)

// ErrGenerationInFlight is returned when a lesson body is requested
// while a previous request for the same lesson is still running.
var ErrGenerationInFlight = errors.New("lesson generation already in flight")

// ErrLessonNotFound is returned when the addressed lesson does not
// exist in the course.
var ErrLessonNotFound = errors.New("lesson not found in course")

// Progress milestones for interactive lesson generation. After
// assembly, the remaining span is divided evenly across the steps.
const (
	progressStructureRequested = 10.0
	progressAssembled          = 40.0
	progressComplete           = 100.0
)

// Orchestrator coordinates the text provider and the media generator to
// produce complete content trees.
type Orchestrator struct {
	provider llm.Provider
	media    media.Generator
	cfg      Config

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New creates an Orchestrator.
func New(provider llm.Provider, gen media.Generator, cfg Config) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		media:    gen,
		cfg:      cfg,
		inflight: make(map[string]struct{}),
	}
}

type courseStructureOutput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Modules     []struct {
		Title   string `json:"title"`
		Lessons []struct {
			Title string `json:"title"`
			Type  string `json:"type"`
		} `json:"lessons"`
	} `json:"modules"`
}

// GenerateCourse produces a course outline for the topic. Every lesson
// starts ungenerated; bodies are filled on demand by
// GenerateLessonBody. A thumbnail failure leaves the course without
// one, it never fails the outline.
func (o *Orchestrator) GenerateCourse(ctx context.Context, topic string) (content.Course, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCourseStructure)

	req := llm.Request{
		System: courseSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCourseUserMessage(topic)},
		},
		Schema:      CourseStructureSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return content.Course{}, fmt.Errorf("course generation: %w", err)
	}

	var out courseStructureOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return content.Course{}, fmt.Errorf("parse course response: %w", err)
	}

	course := content.Course{
		ID:          content.NewID(),
		Title:       out.Title,
		Description: out.Description,
	}
	for _, m := range out.Modules {
		module := content.Module{ID: content.NewID(), Title: m.Title}
		for _, l := range m.Lessons {
			module.Lessons = append(module.Lessons, content.Lesson{
				ID:    content.NewID(),
				Title: l.Title,
				Type:  content.LessonType(l.Type),
			})
		}
		course.Modules = append(course.Modules, module)
	}

	if thumb, err := o.media.GenerateImage(ctx, buildThumbnailPrompt(course.Title, course.Description)); err == nil {
		course.Thumbnail = thumb
	}

	return course, nil
}

// GenerateLessonBody fills the body of one lesson and returns the
// updated course. Only one request per lesson may be in flight;
// concurrent requests for the same lesson get ErrGenerationInFlight.
// On failure the course is returned unchanged, keeping whatever body
// the lesson had before.
func (o *Orchestrator) GenerateLessonBody(ctx context.Context, course content.Course, path content.Path) (content.Course, error) {
	lesson, moduleTitle, ok := findLesson(course, path)
	if !ok {
		return course, ErrLessonNotFound
	}

	if !o.acquire(lesson.ID) {
		return course, ErrGenerationInFlight
	}
	defer o.release(lesson.ID)

	payload, err := o.generatePayload(ctx, course, moduleTitle, lesson)
	if err != nil {
		return course, err
	}

	return course.ReplaceLessonPayload(path.ModuleID, path.LessonID, payload), nil
}

func (o *Orchestrator) generatePayload(ctx context.Context, course content.Course, moduleTitle string, lesson content.Lesson) (content.Payload, error) {
	switch lesson.Type {
	case content.LessonText:
		body, err := o.generateText(ctx, course, moduleTitle, lesson.Title)
		if err != nil {
			return nil, err
		}
		return content.TextPayload{Content: body}, nil

	case content.LessonQuiz:
		questions, err := o.generateQuiz(ctx, course, moduleTitle, lesson.Title)
		if err != nil {
			return nil, err
		}
		return content.QuizPayload{Questions: questions}, nil

	case content.LessonVideo:
		url, err := o.media.GenerateVideo(ctx, buildLessonVideoPrompt(course, lesson.Title))
		if err != nil {
			return nil, fmt.Errorf("lesson video generation: %w", err)
		}
		return content.VideoPayload{URL: url}, nil

	case content.LessonInteractive:
		il, err := o.GenerateInteractive(ctx, lesson.Title, nil)
		if err != nil {
			return nil, err
		}
		return content.InteractivePayload{Lesson: il}, nil

	default:
		return nil, fmt.Errorf("unknown lesson type %q", lesson.Type)
	}
}

func (o *Orchestrator) generateText(ctx context.Context, course content.Course, moduleTitle, lessonTitle string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeLessonBody)

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(course, moduleTitle, lessonTitle)},
		},
		Schema:      LessonContentSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("lesson generation: %w", err)
	}

	var out struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse lesson response: %w", err)
	}
	return out.Content, nil
}

func (o *Orchestrator) generateQuiz(ctx context.Context, course content.Course, moduleTitle, lessonTitle string) ([]content.QuizQuestion, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	req := llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizUserMessage(course, moduleTitle, lessonTitle)},
		},
		Schema:      QuizQuestionsSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var out struct {
		Questions []content.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}
	return content.NormalizeQuestions(out.Questions), nil
}

// GenerateTeaser produces a short promotional clip for the course and
// returns the course with its teaser URL set.
func (o *Orchestrator) GenerateTeaser(ctx context.Context, course content.Course) (content.Course, error) {
	url, err := o.media.GenerateVideo(ctx, buildTeaserPrompt(course))
	if err != nil {
		return course, fmt.Errorf("teaser generation: %w", err)
	}
	course.TeaserVideoURL = url
	return course, nil
}

type interactiveOutput struct {
	Steps []struct {
		Title       string   `json:"title"`
		Explanation string   `json:"explanation"`
		KeyPoints   []string `json:"keyPoints"`
		ImagePrompt string   `json:"imagePrompt"`
	} `json:"steps"`
	Quiz []content.QuizQuestion `json:"quiz"`
}

// GenerateInteractive produces a complete guided lesson: the step
// structure, then an illustration and narration for every step, in
// order. The lesson succeeds or fails as a unit — a failed step asset
// fails the whole lesson.
//
// progress, when non-nil, is called with the percentage complete:
// once the structure request is issued, once the lesson is assembled,
// and after each step's assets finish.
func (o *Orchestrator) GenerateInteractive(ctx context.Context, topic string, progress func(float64)) (content.InteractiveLesson, error) {
	report := func(pct float64) {
		if progress != nil {
			progress(pct)
		}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeInteractiveStructure)

	req := llm.Request{
		System: interactiveSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildInteractiveUserMessage(topic)},
		},
		Schema:      InteractiveLessonSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}
	report(progressStructureRequested)

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return content.InteractiveLesson{}, fmt.Errorf("interactive lesson generation: %w", err)
	}

	var out interactiveOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return content.InteractiveLesson{}, fmt.Errorf("parse interactive lesson response: %w", err)
	}
	if len(out.Steps) == 0 {
		return content.InteractiveLesson{}, fmt.Errorf("interactive lesson has no steps")
	}

	lesson := content.InteractiveLesson{
		ID:    content.NewID(),
		Topic: topic,
		Quiz:  content.NormalizeQuestions(out.Quiz),
	}
	for _, s := range out.Steps {
		lesson.Steps = append(lesson.Steps, content.LessonStep{
			ID:          content.NewID(),
			Title:       s.Title,
			Explanation: s.Explanation,
			KeyPoints:   s.KeyPoints,
			ImagePrompt: s.ImagePrompt,
		})
	}
	report(progressAssembled)

	span := (progressComplete - progressAssembled) / float64(len(lesson.Steps))
	for i, step := range lesson.Steps {
		imageURL, err := o.media.GenerateImage(ctx, step.ImagePrompt)
		if err != nil {
			return content.InteractiveLesson{}, fmt.Errorf("step %d illustration: %w", i+1, err)
		}
		audio, err := o.media.Synthesize(ctx, buildNarrationText(step))
		if err != nil {
			return content.InteractiveLesson{}, fmt.Errorf("step %d narration: %w", i+1, err)
		}
		lesson = lesson.WithStepImage(step.ID, imageURL)
		lesson = lesson.WithStepAudio(step.ID, audio)
		report(progressAssembled + float64(i+1)*span)
	}

	return lesson, nil
}

func (o *Orchestrator) acquire(lessonID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inflight[lessonID]; busy {
		return false
	}
	o.inflight[lessonID] = struct{}{}
	return true
}

func (o *Orchestrator) release(lessonID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inflight, lessonID)
}

func findLesson(c content.Course, p content.Path) (content.Lesson, string, bool) {
	for _, m := range c.Modules {
		if m.ID != p.ModuleID {
			continue
		}
		for _, l := range m.Lessons {
			if l.ID == p.LessonID {
				return l, m.Title, true
			}
		}
	}
	return content.Lesson{}, "", false
}
