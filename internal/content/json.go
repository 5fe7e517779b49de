package content

import (
	"encoding/json"
	"fmt"
)

// lessonRecord is the persisted wire shape of a Lesson. The payload
// variant maps to exactly one of the optional fields; on load, only the
// field matching the lesson type is honored.
type lessonRecord struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Type            LessonType         `json:"type"`
	Content         string             `json:"content,omitempty"`
	VideoURL        string             `json:"videoUrl,omitempty"`
	Quiz            []QuizQuestion     `json:"quiz,omitempty"`
	InteractiveData *InteractiveLesson `json:"interactiveData,omitempty"`
}

// MarshalJSON encodes the tagged payload variant into the flat record
// shape used by the persistence layer.
func (l Lesson) MarshalJSON() ([]byte, error) {
	rec := lessonRecord{ID: l.ID, Title: l.Title, Type: l.Type}

	switch p := l.Payload.(type) {
	case nil:
		// Un-generated lesson: all payload fields stay empty.
	case TextPayload:
		rec.Content = p.Content
	case VideoPayload:
		rec.VideoURL = p.URL
	case QuizPayload:
		rec.Quiz = p.Questions
	case InteractivePayload:
		lesson := p.Lesson
		rec.InteractiveData = &lesson
	default:
		return nil, fmt.Errorf("unknown lesson payload %T", l.Payload)
	}

	return json.Marshal(rec)
}

// UnmarshalJSON rebuilds the tagged payload from the flat record shape.
// A record whose populated field does not match its type loads as an
// un-generated lesson rather than failing.
func (l *Lesson) UnmarshalJSON(data []byte) error {
	var rec lessonRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	l.ID = rec.ID
	l.Title = rec.Title
	l.Type = rec.Type
	l.Payload = nil

	switch rec.Type {
	case LessonText:
		if rec.Content != "" {
			l.Payload = TextPayload{Content: rec.Content}
		}
	case LessonVideo:
		if rec.VideoURL != "" {
			l.Payload = VideoPayload{URL: rec.VideoURL}
		}
	case LessonQuiz:
		if len(rec.Quiz) > 0 {
			l.Payload = QuizPayload{Questions: rec.Quiz}
		}
	case LessonInteractive:
		if rec.InteractiveData != nil {
			l.Payload = InteractivePayload{Lesson: *rec.InteractiveData}
		}
	default:
		return fmt.Errorf("unknown lesson type %q", rec.Type)
	}

	return nil
}
