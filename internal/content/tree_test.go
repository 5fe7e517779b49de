package content

import (
	"encoding/json"
	"reflect"
	"testing"
)

func testCourse() Course {
	return Course{
		ID:          "c1",
		Title:       "Astronomy Basics",
		Description: "A tour of the night sky",
		Modules: []Module{
			{
				ID:    "m1",
				Title: "The Solar System",
				Lessons: []Lesson{
					{ID: "l1", Title: "Planets", Type: LessonText},
					{ID: "l2", Title: "Moons Quiz", Type: LessonQuiz, Payload: QuizPayload{
						Questions: []QuizQuestion{
							{
								Question:       "Which bodies orbit Jupiter?",
								Options:        []string{"Io", "Titan", "Europa"},
								CorrectAnswers: []int{0, 2},
							},
						},
					}},
				},
			},
			{
				ID:    "m2",
				Title: "Stars",
				Lessons: []Lesson{
					{ID: "l3", Title: "Stellar Lifecycles", Type: LessonVideo},
				},
			},
		},
	}
}

func TestSetField_LessonTitle(t *testing.T) {
	c := testCourse()
	got := c.SetField(Path{ModuleID: "m1", LessonID: "l1"}, FieldTitle, "Inner Planets")

	if got.Modules[0].Lessons[0].Title != "Inner Planets" {
		t.Errorf("expected updated title, got %q", got.Modules[0].Lessons[0].Title)
	}
	// Siblings are untouched.
	if !reflect.DeepEqual(got.Modules[0].Lessons[1], c.Modules[0].Lessons[1]) {
		t.Error("sibling lesson changed")
	}
	if !reflect.DeepEqual(got.Modules[1], c.Modules[1]) {
		t.Error("sibling module changed")
	}
	// Input tree is untouched.
	if c.Modules[0].Lessons[0].Title != "Planets" {
		t.Errorf("input tree mutated: %q", c.Modules[0].Lessons[0].Title)
	}
}

func TestSetField_CourseAndModule(t *testing.T) {
	c := testCourse()

	got := c.SetField(Path{}, FieldDescription, "updated")
	if got.Description != "updated" {
		t.Errorf("expected course description update, got %q", got.Description)
	}

	got = c.SetField(Path{ModuleID: "m2"}, FieldTitle, "Stars and Nebulae")
	if got.Modules[1].Title != "Stars and Nebulae" {
		t.Errorf("expected module title update, got %q", got.Modules[1].Title)
	}
}

func TestSetField_Idempotent(t *testing.T) {
	c := testCourse()
	once := c.SetField(Path{ModuleID: "m1", LessonID: "l1"}, FieldTitle, "X")
	twice := once.SetField(Path{ModuleID: "m1", LessonID: "l1"}, FieldTitle, "X")
	if !reflect.DeepEqual(once, twice) {
		t.Error("repeated SetField changed the tree")
	}
}

func TestSetField_ContentRequiresTextLesson(t *testing.T) {
	c := testCourse()

	got := c.SetField(Path{ModuleID: "m1", LessonID: "l1"}, FieldContent, "<p>hi</p>")
	if p, ok := got.Modules[0].Lessons[0].Payload.(TextPayload); !ok || p.Content != "<p>hi</p>" {
		t.Errorf("expected text payload, got %#v", got.Modules[0].Lessons[0].Payload)
	}

	// Content on a video lesson is ignored.
	got = c.SetField(Path{ModuleID: "m2", LessonID: "l3"}, FieldContent, "<p>hi</p>")
	if got.Modules[1].Lessons[0].Payload != nil {
		t.Errorf("expected video lesson untouched, got %#v", got.Modules[1].Lessons[0].Payload)
	}
}

func TestReplaceLessonPayload(t *testing.T) {
	c := testCourse()

	got := c.ReplaceLessonPayload("m1", "l1", TextPayload{Content: "<h1>Planets</h1>"})
	if !got.Modules[0].Lessons[0].Generated() {
		t.Fatal("expected lesson to be generated")
	}

	// Missing lesson: silently unchanged, never an error.
	got = c.ReplaceLessonPayload("m1", "deleted", TextPayload{Content: "x"})
	if !reflect.DeepEqual(got, c) {
		t.Error("missing path should leave tree unchanged")
	}

	// Variant mismatch leaves the tree unchanged.
	got = c.ReplaceLessonPayload("m1", "l1", VideoPayload{URL: "v.mp4"})
	if got.Modules[0].Lessons[0].Payload != nil {
		t.Errorf("mismatched payload installed: %#v", got.Modules[0].Lessons[0].Payload)
	}
}

func TestReplaceLessonPayload_FailureKeepsPriorBody(t *testing.T) {
	c := testCourse().ReplaceLessonPayload("m1", "l1", TextPayload{Content: "v1"})

	// A failed regeneration never calls ReplaceLessonPayload; confirm a
	// nil payload install also leaves the prior body alone.
	got := c.ReplaceLessonPayload("m1", "l1", nil)
	if p, ok := got.Modules[0].Lessons[0].Payload.(TextPayload); !ok || p.Content != "v1" {
		t.Errorf("prior payload lost: %#v", got.Modules[0].Lessons[0].Payload)
	}
}

func TestToggleQuizAnswer_IsItsOwnInverse(t *testing.T) {
	c := testCourse()

	once := c.ToggleQuizAnswer("m1", "l2", 0, 1)
	want := []int{0, 1, 2}
	if got := once.Modules[0].Lessons[1].Payload.(QuizPayload).Questions[0].CorrectAnswers; !reflect.DeepEqual(got, want) {
		t.Errorf("toggle add: got %v, want %v", got, want)
	}

	twice := once.ToggleQuizAnswer("m1", "l2", 0, 1)
	orig := c.Modules[0].Lessons[1].Payload.(QuizPayload).Questions[0].CorrectAnswers
	if got := twice.Modules[0].Lessons[1].Payload.(QuizPayload).Questions[0].CorrectAnswers; !reflect.DeepEqual(got, orig) {
		t.Errorf("double toggle: got %v, want original %v", got, orig)
	}
}

func TestToggleQuizAnswer_OutOfRange(t *testing.T) {
	c := testCourse()
	if got := c.ToggleQuizAnswer("m1", "l2", 7, 0); !reflect.DeepEqual(got, c) {
		t.Error("out-of-range question should be a no-op")
	}
	if got := c.ToggleQuizAnswer("m1", "l2", 0, 9); !reflect.DeepEqual(got, c) {
		t.Error("out-of-range option should be a no-op")
	}
}

func TestNormalizeQuestions(t *testing.T) {
	qs := []QuizQuestion{
		{Question: "q1", Options: []string{"a", "b", "c"}, CorrectAnswers: []int{2, 0, 2}},
		{Question: "q2", Options: []string{"a", "b"}, CorrectAnswers: []int{1}},
	}

	got := NormalizeQuestions(qs)
	if want := []int{0, 2}; !reflect.DeepEqual(got[0].CorrectAnswers, want) {
		t.Errorf("CorrectAnswers = %v, want %v", got[0].CorrectAnswers, want)
	}
	if want := []int{1}; !reflect.DeepEqual(got[1].CorrectAnswers, want) {
		t.Errorf("CorrectAnswers = %v, want %v", got[1].CorrectAnswers, want)
	}

	// The input is not mutated.
	if want := []int{2, 0, 2}; !reflect.DeepEqual(qs[0].CorrectAnswers, want) {
		t.Errorf("input mutated: %v, want %v", qs[0].CorrectAnswers, want)
	}
}

func TestQuizQuestionEditing(t *testing.T) {
	c := testCourse()

	c2 := c.AddQuizQuestion("m1", "l2")
	qs := c2.Modules[0].Lessons[1].Payload.(QuizPayload).Questions
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if len(qs[1].Options) != 2 {
		t.Errorf("new question should carry two options, got %d", len(qs[1].Options))
	}

	c3 := c2.SetQuestionText("m1", "l2", 1, "How many moons has Mars?")
	c3 = c3.AddOption("m1", "l2", 1)
	c3 = c3.SetOptionText("m1", "l2", 1, 2, "Two")
	qs = c3.Modules[0].Lessons[1].Payload.(QuizPayload).Questions
	if qs[1].Question != "How many moons has Mars?" {
		t.Errorf("question text not set: %q", qs[1].Question)
	}
	if len(qs[1].Options) != 3 || qs[1].Options[2] != "Two" {
		t.Errorf("option edit failed: %v", qs[1].Options)
	}

	c4 := c3.DeleteQuizQuestion("m1", "l2", 0)
	qs = c4.Modules[0].Lessons[1].Payload.(QuizPayload).Questions
	if len(qs) != 1 || qs[0].Question != "How many moons has Mars?" {
		t.Errorf("delete removed wrong question: %v", qs)
	}

	// Deleting out of range is a no-op.
	if got := c4.DeleteQuizQuestion("m1", "l2", 5); !reflect.DeepEqual(got, c4) {
		t.Error("out-of-range delete should be a no-op")
	}
}

func TestInteractiveStepAttachments(t *testing.T) {
	il := InteractiveLesson{
		ID:    "i1",
		Topic: "Tides",
		Steps: []LessonStep{
			{ID: "s1", Title: "Gravity"},
			{ID: "s2", Title: "The Moon"},
		},
	}

	got := il.WithStepImage("s2", "data:image/png;base64,AAAA").WithStepAudio("s2", "UElDTQ==")
	if got.Steps[1].ImageURL == "" || got.Steps[1].AudioData == "" {
		t.Errorf("assets not attached: %#v", got.Steps[1])
	}
	if il.Steps[1].ImageURL != "" {
		t.Error("input lesson mutated")
	}
	if !reflect.DeepEqual(got.Steps[0], il.Steps[0]) {
		t.Error("sibling step changed")
	}

	// Unknown step: unchanged.
	if got := il.WithStepImage("nope", "x"); !reflect.DeepEqual(got, il) {
		t.Error("missing step should be a no-op")
	}
}

func TestLessonJSONRoundTrip(t *testing.T) {
	c := testCourse().ReplaceLessonPayload("m1", "l1", TextPayload{Content: "<p>planets</p>"})

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Course
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, c) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", back, c)
	}

	// The quiz lesson keeps its variant; the video lesson stays un-generated.
	if _, ok := back.Modules[0].Lessons[1].Payload.(QuizPayload); !ok {
		t.Errorf("quiz payload lost: %#v", back.Modules[0].Lessons[1].Payload)
	}
	if back.Modules[1].Lessons[0].Generated() {
		t.Error("un-generated lesson should stay un-generated")
	}
}
