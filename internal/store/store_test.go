package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jesstingley17/luna-ai/internal/content"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "luna.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	s := openTestStore(t)
	adapter := s.Records()
	ctx := context.Background()

	var missing string
	ok, err := adapter.Load(ctx, "absent", &missing)
	if err != nil {
		t.Fatalf("load absent key: %v", err)
	}
	if ok {
		t.Fatal("expected absent key to report not found")
	}

	if err := adapter.Save(ctx, "greeting", "hello"); err != nil {
		t.Fatalf("save: %v", err)
	}
	var got string
	ok, err = adapter.Load(ctx, "greeting", &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || got != "hello" {
		t.Fatalf("load = (%q, %v), want (\"hello\", true)", got, ok)
	}

	// Saving again rewrites the whole value.
	if err := adapter.Save(ctx, "greeting", "goodbye"); err != nil {
		t.Fatalf("resave: %v", err)
	}
	if _, err := adapter.Load(ctx, "greeting", &got); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got != "goodbye" {
		t.Errorf("after rewrite got %q, want %q", got, "goodbye")
	}

	if err := adapter.Delete(ctx, "greeting"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := adapter.Delete(ctx, "greeting"); err != nil {
		t.Fatalf("delete absent key: %v", err)
	}
	ok, _ = adapter.Load(ctx, "greeting", &got)
	if ok {
		t.Error("expected deleted key to be absent")
	}
}

func TestCoursesCollection(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	courses, err := Courses(ctx, adapter)
	if err != nil {
		t.Fatalf("load empty collection: %v", err)
	}
	if len(courses) != 0 {
		t.Fatalf("expected empty collection, got %d courses", len(courses))
	}

	a := content.Course{ID: "c1", Title: "Tides"}
	b := content.Course{ID: "c2", Title: "Orbits"}
	if err := UpsertCourse(ctx, adapter, a); err != nil {
		t.Fatalf("upsert a: %v", err)
	}
	if err := UpsertCourse(ctx, adapter, b); err != nil {
		t.Fatalf("upsert b: %v", err)
	}

	a.Title = "Tides and Currents"
	if err := UpsertCourse(ctx, adapter, a); err != nil {
		t.Fatalf("upsert replace: %v", err)
	}

	courses, err = Courses(ctx, adapter)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}
	if courses[0].Title != "Tides and Currents" {
		t.Errorf("upsert did not replace in place: %q", courses[0].Title)
	}

	if err := DeleteCourse(ctx, adapter, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := DeleteCourse(ctx, adapter, "nope"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
	courses, _ = Courses(ctx, adapter)
	if len(courses) != 1 || courses[0].ID != "c2" {
		t.Fatalf("after delete got %+v", courses)
	}
}

func TestTopicDraftLifecycle(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	_, ok, err := TopicDraft(ctx, adapter)
	if err != nil {
		t.Fatalf("load absent draft: %v", err)
	}
	if ok {
		t.Fatal("expected no draft initially")
	}

	if err := SaveTopicDraft(ctx, adapter, "photosynthesis"); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	topic, ok, err := TopicDraft(ctx, adapter)
	if err != nil || !ok || topic != "photosynthesis" {
		t.Fatalf("draft = (%q, %v, %v)", topic, ok, err)
	}

	if err := ClearTopicDraft(ctx, adapter); err != nil {
		t.Fatalf("clear draft: %v", err)
	}
	_, ok, _ = TopicDraft(ctx, adapter)
	if ok {
		t.Error("expected draft cleared")
	}
}

func TestEventRepoAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []GenerationEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "course-structure", InputTokens: 120, OutputTokens: 800, LatencyMs: 950, Success: true, RequestBody: "[user]\nplan a course\n", ResponseBody: `{"title":"Tides"}`},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "lesson-body", Success: false, ErrorMessage: "rate limited"},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "lesson-body", InputTokens: 60, OutputTokens: 400, Success: true},
	}
	for _, ev := range events {
		if err := repo.AppendGeneration(ctx, ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryGenerations(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	// Newest first.
	if all[0].Purpose != "lesson-body" || all[0].InputTokens != 60 {
		t.Errorf("unexpected newest event: %+v", all[0])
	}
	if all[0].ID <= all[1].ID {
		t.Errorf("expected descending IDs, got %d then %d", all[0].ID, all[1].ID)
	}

	filtered, err := repo.QueryGenerations(ctx, QueryOpts{Purpose: "lesson-body", Limit: 1})
	if err != nil {
		t.Fatalf("filtered query: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Purpose != "lesson-body" {
		t.Fatalf("filtered = %+v", filtered)
	}

	got, err := repo.GetGeneration(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RequestBody == "" || got.ResponseBody == "" {
		t.Error("expected request/response bodies preserved")
	}
	if !got.Success || got.LatencyMs != 950 {
		t.Errorf("unexpected event: %+v", got)
	}

	if _, err := repo.GetGeneration(ctx, 9999); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventRepoUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []GenerationEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "lesson-body", InputTokens: 100, OutputTokens: 500, LatencyMs: 800, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "lesson-body", InputTokens: 200, OutputTokens: 700, LatencyMs: 1200, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-pro", Purpose: "quiz", InputTokens: 50, OutputTokens: 300, LatencyMs: 400, Success: true},
	}
	for _, ev := range events {
		if err := repo.AppendGeneration(ctx, ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.UsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("UsageByPurpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	// Sorted by purpose: lesson-body, quiz.
	lb := byPurpose[0]
	if lb.Purpose != "lesson-body" || lb.Calls != 2 || lb.InputTokens != 300 || lb.OutputTokens != 1200 {
		t.Errorf("lesson-body usage = %+v", lb)
	}
	if lb.AvgLatencyMs != 1000 {
		t.Errorf("avg latency = %d, want 1000", lb.AvgLatencyMs)
	}

	byModel, err := repo.UsageByModel(ctx)
	if err != nil {
		t.Fatalf("UsageByModel: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("expected 2 models, got %d", len(byModel))
	}
	if byModel[0].Model != "gemini-2.0-flash" || byModel[0].Calls != 2 {
		t.Errorf("model usage = %+v", byModel[0])
	}
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom", "db.sqlite")
	t.Setenv("LUNA_DB", custom)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != custom {
		t.Errorf("path = %q, want %q", got, custom)
	}
}
