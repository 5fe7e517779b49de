package content

import "sort"

// Path addresses a node in a course tree. An empty LessonID addresses
// the module; an empty ModuleID addresses the course itself.
type Path struct {
	ModuleID string
	LessonID string
}

// Field names a scalar field addressable by SetField.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldContent     Field = "content"
	FieldVideoURL    Field = "videoUrl"
)

// Every operation below returns a new Course value and never mutates
// substructure shared with the input outside the edited path. A missing
// path is silently ignored (the tree is returned unchanged) because a
// mutation may race with a structural edit, e.g. a lesson deleted while
// its body is being generated.

// SetField replaces a scalar field at the addressed node. Setting an
// unchanged value is safe and yields an equivalent tree.
func (c Course) SetField(p Path, f Field, value string) Course {
	if p.ModuleID == "" {
		switch f {
		case FieldTitle:
			c.Title = value
		case FieldDescription:
			c.Description = value
		}
		return c
	}

	if p.LessonID == "" {
		return c.withModule(p.ModuleID, func(m Module) Module {
			if f == FieldTitle {
				m.Title = value
			}
			return m
		})
	}

	return c.withLesson(p.ModuleID, p.LessonID, func(l Lesson) Lesson {
		switch f {
		case FieldTitle:
			l.Title = value
		case FieldContent:
			if l.Type == LessonText {
				l.Payload = TextPayload{Content: value}
			}
		case FieldVideoURL:
			if l.Type == LessonVideo {
				l.Payload = VideoPayload{URL: value}
			}
		}
		return l
	})
}

// ReplaceLessonPayload installs a generated body into a lesson. A
// payload whose variant does not match the lesson type leaves the tree
// unchanged, as does a missing lesson.
func (c Course) ReplaceLessonPayload(moduleID, lessonID string, p Payload) Course {
	return c.withLesson(moduleID, lessonID, func(l Lesson) Lesson {
		if p == nil || p.payloadType() != l.Type {
			return l
		}
		l.Payload = p
		return l
	})
}

// ToggleQuizAnswer flips membership of option in the correct-answer set
// of the addressed question. Authoring-mode only; applying it twice
// restores the original set.
func (c Course) ToggleQuizAnswer(moduleID, lessonID string, question, option int) Course {
	return c.withQuestions(moduleID, lessonID, func(qs []QuizQuestion) []QuizQuestion {
		if question < 0 || question >= len(qs) {
			return qs
		}
		q := qs[question]
		if option < 0 || option >= len(q.Options) {
			return qs
		}
		out := cloneQuestions(qs)
		out[question].CorrectAnswers = toggleIndex(q.CorrectAnswers, option)
		return out
	})
}

// AddQuizQuestion appends an empty question with the minimum two options.
func (c Course) AddQuizQuestion(moduleID, lessonID string) Course {
	return c.withQuestions(moduleID, lessonID, func(qs []QuizQuestion) []QuizQuestion {
		out := cloneQuestions(qs)
		return append(out, QuizQuestion{Options: []string{"", ""}})
	})
}

// DeleteQuizQuestion removes the question at the given index.
// Out-of-range indices are a no-op.
func (c Course) DeleteQuizQuestion(moduleID, lessonID string, question int) Course {
	return c.withQuestions(moduleID, lessonID, func(qs []QuizQuestion) []QuizQuestion {
		if question < 0 || question >= len(qs) {
			return qs
		}
		out := make([]QuizQuestion, 0, len(qs)-1)
		out = append(out, qs[:question]...)
		out = append(out, qs[question+1:]...)
		return out
	})
}

// AddOption appends an empty option to the addressed question.
func (c Course) AddOption(moduleID, lessonID string, question int) Course {
	return c.withQuestions(moduleID, lessonID, func(qs []QuizQuestion) []QuizQuestion {
		if question < 0 || question >= len(qs) {
			return qs
		}
		out := cloneQuestions(qs)
		opts := make([]string, len(qs[question].Options)+1)
		copy(opts, qs[question].Options)
		out[question].Options = opts
		return out
	})
}

// SetQuestionText replaces the text of the addressed question.
func (c Course) SetQuestionText(moduleID, lessonID string, question int, text string) Course {
	return c.withQuestions(moduleID, lessonID, func(qs []QuizQuestion) []QuizQuestion {
		if question < 0 || question >= len(qs) {
			return qs
		}
		out := cloneQuestions(qs)
		out[question].Question = text
		return out
	})
}

// SetOptionText replaces the text of one option of the addressed question.
func (c Course) SetOptionText(moduleID, lessonID string, question, option int, text string) Course {
	return c.withQuestions(moduleID, lessonID, func(qs []QuizQuestion) []QuizQuestion {
		if question < 0 || question >= len(qs) {
			return qs
		}
		if option < 0 || option >= len(qs[question].Options) {
			return qs
		}
		out := cloneQuestions(qs)
		opts := make([]string, len(qs[question].Options))
		copy(opts, qs[question].Options)
		opts[option] = text
		out[question].Options = opts
		return out
	})
}

// WithStepImage returns a lesson with the illustration attached to the
// addressed step. Missing steps are ignored.
func (il InteractiveLesson) WithStepImage(stepID, imageURL string) InteractiveLesson {
	return il.withStep(stepID, func(s LessonStep) LessonStep {
		s.ImageURL = imageURL
		return s
	})
}

// WithStepAudio returns a lesson with synthesized narration attached to
// the addressed step.
func (il InteractiveLesson) WithStepAudio(stepID, audioData string) InteractiveLesson {
	return il.withStep(stepID, func(s LessonStep) LessonStep {
		s.AudioData = audioData
		return s
	})
}

func (il InteractiveLesson) withStep(stepID string, fn func(LessonStep) LessonStep) InteractiveLesson {
	for i, s := range il.Steps {
		if s.ID == stepID {
			steps := make([]LessonStep, len(il.Steps))
			copy(steps, il.Steps)
			steps[i] = fn(s)
			il.Steps = steps
			return il
		}
	}
	return il
}

func (c Course) withModule(moduleID string, fn func(Module) Module) Course {
	for i, m := range c.Modules {
		if m.ID == moduleID {
			mods := make([]Module, len(c.Modules))
			copy(mods, c.Modules)
			mods[i] = fn(m)
			c.Modules = mods
			return c
		}
	}
	return c
}

func (c Course) withLesson(moduleID, lessonID string, fn func(Lesson) Lesson) Course {
	return c.withModule(moduleID, func(m Module) Module {
		for i, l := range m.Lessons {
			if l.ID == lessonID {
				lessons := make([]Lesson, len(m.Lessons))
				copy(lessons, m.Lessons)
				lessons[i] = fn(l)
				m.Lessons = lessons
				return m
			}
		}
		return m
	})
}

// withQuestions applies fn to the question list of a quiz lesson.
// Non-quiz and un-generated lessons are left untouched.
func (c Course) withQuestions(moduleID, lessonID string, fn func([]QuizQuestion) []QuizQuestion) Course {
	return c.withLesson(moduleID, lessonID, func(l Lesson) Lesson {
		quiz, ok := l.Payload.(QuizPayload)
		if !ok {
			return l
		}
		l.Payload = QuizPayload{Questions: fn(quiz.Questions)}
		return l
	})
}

// NormalizeQuestions returns the questions with every answer key
// reduced to ascending unique option indices. The generation service
// does not guarantee key order, so responses are normalized before
// they enter a tree.
func NormalizeQuestions(qs []QuizQuestion) []QuizQuestion {
	out := cloneQuestions(qs)
	for i := range out {
		out[i].CorrectAnswers = NormalizeAnswerKey(out[i].CorrectAnswers)
	}
	return out
}

// NormalizeAnswerKey returns the answer key as sorted unique indices.
// An answer key is a set; order and duplicates are not part of its
// identity.
func NormalizeAnswerKey(set []int) []int {
	out := make([]int, 0, len(set))
	seen := make(map[int]bool, len(set))
	for _, v := range set {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func cloneQuestions(qs []QuizQuestion) []QuizQuestion {
	out := make([]QuizQuestion, len(qs))
	copy(out, qs)
	return out
}

// toggleIndex computes the symmetric difference of set and {idx},
// keeping the result in ascending order.
func toggleIndex(set []int, idx int) []int {
	out := make([]int, 0, len(set)+1)
	found := false
	for _, v := range set {
		if v == idx {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, idx)
		sort.Ints(out)
	}
	return out
}
