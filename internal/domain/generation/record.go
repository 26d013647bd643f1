// Package generation holds the chapter-generation unit of work and the
// coordinator that drives it through a provider backend.
package generation

import (
	"fmt"
	"strings"
	"time"

	"chapter-api/internal/domain/model"
	"chapter-api/internal/utils/idgen"
)

// Status tracks a record's lifecycle. A record starts pending and moves to
// exactly one terminal status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Transcript is the source material for one generation attempt.
type Transcript struct {
	Text     string `json:"text"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// Record is one chapter-generation attempt. Chapters is set iff the record
// completed, Error iff it failed.
type Record struct {
	ID           string
	Transcript   Transcript
	ModelID      model.ModelID
	Instructions string
	Status       Status
	Chapters     string
	FinishReason string
	Error        string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// NewRecord creates a pending record with a fresh time-derived id.
func NewRecord(transcript Transcript, modelID model.ModelID, instructions string) *Record {
	return &Record{
		ID:           idgen.NewTimeID("gen"),
		Transcript:   transcript,
		ModelID:      modelID,
		Instructions: strings.TrimSpace(instructions),
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
}

// Complete transitions a pending record to completed with the final chapters
// text. Invoking it on a terminal record reports which terminal state the
// record is already in.
func (r *Record) Complete(chapters string) error {
	if r.Status != StatusPending {
		return r.transitionError()
	}
	now := time.Now().UTC()
	r.Status = StatusCompleted
	r.Chapters = chapters
	r.CompletedAt = &now
	return nil
}

// Fail transitions a pending record to failed with the error message.
func (r *Record) Fail(message string) error {
	if r.Status != StatusPending {
		return r.transitionError()
	}
	now := time.Now().UTC()
	r.Status = StatusFailed
	r.Error = message
	r.CompletedAt = &now
	return nil
}

func (r *Record) transitionError() error {
	return fmt.Errorf("generation %s already %s", r.ID, r.Status)
}

// IsPending reports whether the record still awaits its single transition.
func (r *Record) IsPending() bool { return r.Status == StatusPending }
