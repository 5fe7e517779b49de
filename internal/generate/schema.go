package generate

import "github.com/jesstingley17/luna-ai/internal/llm"

// quizQuestionsDef is shared between standalone quiz lessons and the
// trailing quiz of an interactive lesson.
var quizQuestionsDef = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-5 answer options",
			},
			"correctAnswers": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "integer"},
				"description": "Zero-based indices of every correct option, ascending",
			},
		},
		"required":             []any{"question", "options", "correctAnswers"},
		"additionalProperties": false,
	},
}

// CourseStructureSchema defines the JSON schema for course outline
// generation. Lessons come back as typed stubs without bodies.
var CourseStructureSchema = &llm.Schema{
	Name:        "course-structure",
	Description: "A course outline: modules containing typed lesson stubs",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Course title (3-8 words)",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One-paragraph course description",
			},
			"modules": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Module title",
						},
						"lessons": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"title": map[string]any{
										"type":        "string",
										"description": "Lesson title",
									},
									"type": map[string]any{
										"type": "string",
										"enum": []any{"text", "video", "quiz", "interactive"},
									},
								},
								"required":             []any{"title", "type"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"title", "lessons"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "description", "modules"},
		"additionalProperties": false,
	},
}

// LessonContentSchema defines the JSON schema for a text lesson body.
var LessonContentSchema = &llm.Schema{
	Name:        "lesson-content",
	Description: "The full written body of a single lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": "Lesson body as HTML: headings, paragraphs, lists",
			},
		},
		"required":             []any{"content"},
		"additionalProperties": false,
	},
}

// QuizQuestionsSchema defines the JSON schema for quiz generation.
var QuizQuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "Multi-select quiz questions for a lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": quizQuestionsDef,
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// InteractiveLessonSchema defines the JSON schema for a guided
// step-by-step lesson with a trailing quiz.
var InteractiveLessonSchema = &llm.Schema{
	Name:        "interactive-lesson",
	Description: "A guided lesson: ordered narrated steps followed by a quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Step title (3-8 words)",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Clear explanation of this step's concept (3-5 sentences)",
						},
						"keyPoints": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "2-4 takeaways (5-10 words each)",
						},
						"imagePrompt": map[string]any{
							"type":        "string",
							"description": "Prompt for an illustration of this step",
						},
					},
					"required":             []any{"title", "explanation", "keyPoints", "imagePrompt"},
					"additionalProperties": false,
				},
			},
			"quiz": quizQuestionsDef,
		},
		"required":             []any{"steps", "quiz"},
		"additionalProperties": false,
	},
}
