package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type constants keep queue producers and consumers in sync.
const (
	TypePDFExport = "pdf:export"
)

// PDFExportPayload is the minimum a worker needs to export a stored resume.
type PDFExportPayload struct {
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewPDFExportTask builds an export task for one resume.
func NewPDFExportTask(id uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PDFExportPayload{
		ResumeID:      id,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePDFExport, payload), nil
}
