package generation

import (
	"encoding/json"
	"time"

	"chapter-api/internal/domain/model"
)

// Session is the flattened persisted form of a Record. The model is stored
// twice: the plain id for indexing and the full JSON form for faithful
// reconstruction.
type Session struct {
	ID             string          `json:"id"`
	TranscriptText string          `json:"transcriptText"`
	VideoTitle     string          `json:"videoTitle,omitempty"`
	VideoAuthor    string          `json:"videoAuthor,omitempty"`
	VideoURL       string          `json:"videoUrl,omitempty"`
	Instructions   string          `json:"customInstructions,omitempty"`
	ModelValue     string          `json:"modelId"`
	Model          json.RawMessage `json:"model"`
	Status         Status          `json:"status"`
	Chapters       string          `json:"chapters,omitempty"`
	FinishReason   string          `json:"finishReason,omitempty"`
	Error          string          `json:"error,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
}

// ToSession flattens the record for persistence.
func (r *Record) ToSession() (Session, error) {
	modelJSON, err := json.Marshal(r.ModelID)
	if err != nil {
		return Session{}, err
	}
	return Session{
		ID:             r.ID,
		TranscriptText: r.Transcript.Text,
		VideoTitle:     r.Transcript.Title,
		VideoAuthor:    r.Transcript.Author,
		VideoURL:       r.Transcript.VideoURL,
		Instructions:   r.Instructions,
		ModelValue:     r.ModelID.Value(),
		Model:          modelJSON,
		Status:         r.Status,
		Chapters:       r.Chapters,
		FinishReason:   r.FinishReason,
		Error:          r.Error,
		CreatedAt:      r.CreatedAt,
		CompletedAt:    r.CompletedAt,
	}, nil
}

// RecordFromSession rebuilds a Record from its flattened form. The model is
// reconstructed with the same default-on-malformed fallback as settings
// loading, so a corrupted session row still yields a readable record.
func RecordFromSession(s Session) *Record {
	return &Record{
		ID: s.ID,
		Transcript: Transcript{
			Text:     s.TranscriptText,
			Title:    s.VideoTitle,
			Author:   s.VideoAuthor,
			VideoURL: s.VideoURL,
		},
		ModelID:      model.FromJSON(s.Model),
		Instructions: s.Instructions,
		Status:       s.Status,
		Chapters:     s.Chapters,
		FinishReason: s.FinishReason,
		Error:        s.Error,
		CreatedAt:    s.CreatedAt,
		CompletedAt:  s.CompletedAt,
	}
}
