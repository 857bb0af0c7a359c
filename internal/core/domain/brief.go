package domain

import "time"

type BriefStatus string

const (
	StatusUploaded   BriefStatus = "uploaded"
	StatusProcessing BriefStatus = "processing"
	StatusAnalyzed   BriefStatus = "analyzed"
	StatusFailed     BriefStatus = "failed"
)

// Brief is an uploaded campaign brief and the state of its analysis.
type Brief struct {
	ID          string      `json:"id"`
	Filename    string      `json:"filename"`
	MimeType    string      `json:"mime_type"`
	StoragePath string      `json:"storage_path"`
	Status      BriefStatus `json:"status"`
	Error       string      `json:"error,omitempty"`
	Insights    *Insights   `json:"insights,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
