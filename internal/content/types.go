package content

import "github.com/google/uuid"

// LessonType identifies the kind of content a lesson carries.
type LessonType string

const (
	LessonText        LessonType = "text"
	LessonVideo       LessonType = "video"
	LessonQuiz        LessonType = "quiz"
	LessonInteractive LessonType = "interactive"
)

// Payload is the generated body of a lesson. Each lesson type has
// exactly one payload variant, so a payload/type mismatch cannot be
// persisted. A nil Payload means the lesson has not been generated yet.
type Payload interface {
	payloadType() LessonType
}

// TextPayload holds rendered lesson text (HTML-like markup).
type TextPayload struct {
	Content string
}

// VideoPayload holds a reference to a playable video.
type VideoPayload struct {
	URL string
}

// QuizPayload holds the ordered questions of a quiz lesson.
type QuizPayload struct {
	Questions []QuizQuestion
}

// InteractivePayload embeds a step-by-step interactive lesson.
type InteractivePayload struct {
	Lesson InteractiveLesson
}

func (TextPayload) payloadType() LessonType        { return LessonText }
func (VideoPayload) payloadType() LessonType       { return LessonVideo }
func (QuizPayload) payloadType() LessonType        { return LessonQuiz }
func (InteractivePayload) payloadType() LessonType { return LessonInteractive }

// Lesson is a single unit of content within a module.
type Lesson struct {
	ID      string
	Title   string
	Type    LessonType
	Payload Payload
}

// Generated reports whether the lesson body has been produced.
// Presence of the payload is the only signal; there is no separate
// status flag.
func (l Lesson) Generated() bool {
	return l.Payload != nil
}

// Module is a named, ordered group of lessons. Order defines the
// linear learning path.
type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Course is a top-level generated curriculum.
type Course struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Thumbnail      string   `json:"thumbnail,omitempty"`      // image reference (data URI)
	TeaserVideoURL string   `json:"teaserVideoUrl,omitempty"`
	Modules        []Module `json:"modules"`
}

// QuizQuestion is a multi-select question. CorrectAnswers holds option
// indices in ascending order; correctness of a response is exact set
// equality, never per-option partial credit.
type QuizQuestion struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
}

// LessonStep is one stage of an interactive lesson.
type LessonStep struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	KeyPoints   []string `json:"keyPoints"`
	ImagePrompt string   `json:"imagePrompt"`
	ImageURL    string   `json:"imageUrl,omitempty"`  // attached after illustration generation
	AudioData   string   `json:"audioData,omitempty"` // base64 raw mono 16-bit PCM at 24 kHz
}

// InteractiveLesson is a standalone guided lesson: ordered steps
// followed by a trailing quiz taken once all steps are viewed.
type InteractiveLesson struct {
	ID    string         `json:"id"`
	Topic string         `json:"topic"`
	Steps []LessonStep   `json:"steps"`
	Quiz  []QuizQuestion `json:"quiz"`
}

// NewID mints an opaque stable identifier for a new tree node.
// Edit operations never regenerate ids.
func NewID() string {
	return uuid.NewString()
}
