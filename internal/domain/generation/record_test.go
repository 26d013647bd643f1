package generation

import (
	"strings"
	"testing"

	"chapter-api/internal/domain/model"
)

func testModel(t *testing.T) model.ModelID {
	t.Helper()
	m, err := model.New("gemini-2.5-flash", model.ProviderGemini, nil)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return m
}

func TestNewRecordStartsPending(t *testing.T) {
	r := NewRecord(Transcript{Text: "hello"}, testModel(t), "  focus on intros  ")
	if r.Status != StatusPending {
		t.Errorf("Status = %q, want %q", r.Status, StatusPending)
	}
	if !strings.HasPrefix(r.ID, "gen_") {
		t.Errorf("ID = %q, want gen_ prefix", r.ID)
	}
	if r.Instructions != "focus on intros" {
		t.Errorf("Instructions = %q, want trimmed", r.Instructions)
	}
	if r.CompletedAt != nil {
		t.Error("CompletedAt must be nil while pending")
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt must be set")
	}
}

func TestCompleteTransition(t *testing.T) {
	r := NewRecord(Transcript{Text: "t"}, testModel(t), "")
	if err := r.Complete("00:00 Intro"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if r.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", r.Status, StatusCompleted)
	}
	if r.Chapters != "00:00 Intro" {
		t.Errorf("Chapters = %q", r.Chapters)
	}
	if r.CompletedAt == nil {
		t.Error("CompletedAt must be set on completion")
	}
}

func TestFailTransition(t *testing.T) {
	r := NewRecord(Transcript{Text: "t"}, testModel(t), "")
	if err := r.Fail("boom"); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if r.Status != StatusFailed {
		t.Errorf("Status = %q, want %q", r.Status, StatusFailed)
	}
	if r.Error != "boom" {
		t.Errorf("Error = %q", r.Error)
	}
}

func TestSingleTransitionOnly(t *testing.T) {
	tests := []struct {
		name       string
		first      func(*Record) error
		second     func(*Record) error
		wantStatus string
	}{
		{"complete then complete", func(r *Record) error { return r.Complete("c") }, func(r *Record) error { return r.Complete("c2") }, "completed"},
		{"complete then fail", func(r *Record) error { return r.Complete("c") }, func(r *Record) error { return r.Fail("e") }, "completed"},
		{"fail then fail", func(r *Record) error { return r.Fail("e") }, func(r *Record) error { return r.Fail("e2") }, "failed"},
		{"fail then complete", func(r *Record) error { return r.Fail("e") }, func(r *Record) error { return r.Complete("c") }, "failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord(Transcript{Text: "t"}, testModel(t), "")
			if err := tt.first(r); err != nil {
				t.Fatalf("first transition: %v", err)
			}
			err := tt.second(r)
			if err == nil {
				t.Fatal("second transition must fail")
			}
			if !strings.Contains(err.Error(), tt.wantStatus) {
				t.Errorf("error %q does not identify current status %q", err, tt.wantStatus)
			}
		})
	}
}

func TestSessionRoundTrip(t *testing.T) {
	m, err := model.New("deepseek/deepseek-chat-v3-0324:free", model.ProviderOpenRouter,
		&model.Pricing{Prompt: "0", Completion: "0"})
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	r := NewRecord(Transcript{
		Text:     "transcript body",
		Title:    "How To Go",
		Author:   "A Channel",
		VideoURL: "https://youtu.be/abc123",
	}, m, "short chapters")
	if err := r.Complete("00:00 Intro"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	s, err := r.ToSession()
	if err != nil {
		t.Fatalf("ToSession: %v", err)
	}
	if s.ModelValue != m.Value() {
		t.Errorf("ModelValue = %q, want %q", s.ModelValue, m.Value())
	}

	restored := RecordFromSession(s)
	if restored.ID != r.ID {
		t.Errorf("ID = %q, want %q", restored.ID, r.ID)
	}
	if restored.Transcript != r.Transcript {
		t.Errorf("Transcript = %+v, want %+v", restored.Transcript, r.Transcript)
	}
	if restored.ModelID.Value() != m.Value() || restored.ModelID.Provider() != m.Provider() {
		t.Errorf("model mismatch: %q/%q", restored.ModelID.Value(), restored.ModelID.Provider())
	}
	if restored.Status != StatusCompleted || restored.Chapters != "00:00 Intro" {
		t.Errorf("status/chapters mismatch: %q/%q", restored.Status, restored.Chapters)
	}
}

func TestSessionWithCorruptedModelFallsBack(t *testing.T) {
	s := Session{ID: "gen_x", TranscriptText: "t", Model: []byte(`{broken`), Status: StatusFailed, Error: "e"}
	restored := RecordFromSession(s)
	if restored.ModelID.Value() != model.DefaultModelValue {
		t.Errorf("corrupted model must fall back to default, got %q", restored.ModelID.Value())
	}
}
