package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jesstingley17/luna-ai/internal/content"
)

// Record keys. The whole value under a key is rewritten on every save.
const (
	KeyCourses    = "courses"
	KeyTopicDraft = "topic-draft"
)

// Adapter is the keyed-record persistence contract. Implementations
// store one JSON document per key. Load reports whether the key was
// present; Delete of an absent key is not an error.
type Adapter interface {
	Load(ctx context.Context, key string, v any) (bool, error)
	Save(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

type sqlAdapter struct {
	db *sql.DB
}

func (a *sqlAdapter) Load(ctx context.Context, key string, v any) (bool, error) {
	var raw string
	err := a.db.QueryRowContext(ctx,
		"SELECT value FROM records WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load record %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode record %q: %w", key, err)
	}
	return true, nil
}

func (a *sqlAdapter) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", key, err)
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save record %q: %w", key, err)
	}
	return nil
}

func (a *sqlAdapter) Delete(ctx context.Context, key string) error {
	_, err := a.db.ExecContext(ctx, "DELETE FROM records WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}

// MemoryAdapter is an in-memory Adapter for tests.
type MemoryAdapter struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{docs: make(map[string][]byte)}
}

func (m *MemoryAdapter) Load(ctx context.Context, key string, v any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.docs[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryAdapter) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryAdapter) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.docs, key)
	m.mu.Unlock()
	return nil
}

// Courses loads the full course collection, or an empty slice when
// nothing has been saved yet.
func Courses(ctx context.Context, a Adapter) ([]content.Course, error) {
	var courses []content.Course
	ok, err := a.Load(ctx, KeyCourses, &courses)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []content.Course{}, nil
	}
	return courses, nil
}

// SaveCourses rewrites the full course collection.
func SaveCourses(ctx context.Context, a Adapter, courses []content.Course) error {
	return a.Save(ctx, KeyCourses, courses)
}

// UpsertCourse replaces the course with a matching ID, or appends it,
// then rewrites the collection.
func UpsertCourse(ctx context.Context, a Adapter, course content.Course) error {
	courses, err := Courses(ctx, a)
	if err != nil {
		return err
	}
	replaced := false
	for i := range courses {
		if courses[i].ID == course.ID {
			courses[i] = course
			replaced = true
			break
		}
	}
	if !replaced {
		courses = append(courses, course)
	}
	return SaveCourses(ctx, a, courses)
}

// DeleteCourse removes the course with the given ID and rewrites the
// collection. Deleting an unknown ID is a no-op.
func DeleteCourse(ctx context.Context, a Adapter, id string) error {
	courses, err := Courses(ctx, a)
	if err != nil {
		return err
	}
	kept := courses[:0]
	for _, c := range courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return SaveCourses(ctx, a, kept)
}

// TopicDraft returns the saved draft topic, if any.
func TopicDraft(ctx context.Context, a Adapter) (string, bool, error) {
	var topic string
	ok, err := a.Load(ctx, KeyTopicDraft, &topic)
	if err != nil {
		return "", false, err
	}
	return topic, ok, nil
}

// SaveTopicDraft stores the in-progress topic text.
func SaveTopicDraft(ctx context.Context, a Adapter, topic string) error {
	return a.Save(ctx, KeyTopicDraft, topic)
}

// ClearTopicDraft removes the draft. Called once a draft's course
// becomes active.
func ClearTopicDraft(ctx context.Context, a Adapter) error {
	return a.Delete(ctx, KeyTopicDraft)
}
