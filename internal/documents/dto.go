package documents

import (
	"time"

	"propdocs-backend/internal/qahistory"
)

// PropertyRefResponse is the outward-facing property slice on a document.
type PropertyRefResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// QAEntryResponse is one question/answer exchange on a document.
type QAEntryResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID   string               `json:"documentId"`
	Name         string               `json:"name"`
	Content      string               `json:"content"`
	Analysis     string               `json:"analysis,omitempty"`
	PropertyID   string               `json:"propertyId,omitempty"`
	DocumentType string               `json:"documentType,omitempty"`
	MimeType     string               `json:"mimeType"`
	SizeBytes    int64                `json:"sizeBytes"`
	UploadedAt   time.Time            `json:"uploadedAt"`
	Property     *PropertyRefResponse `json:"property,omitempty"`
	History      []QAEntryResponse    `json:"history,omitempty"`
}

// RejectionResponse reports one file refused by the intake policy.
type RejectionResponse struct {
	FileName string   `json:"fileName"`
	Reasons  []string `json:"reasons"`
}

// UploadResponse is the result of one intake batch.
type UploadResponse struct {
	Documents []DocumentResponse  `json:"documents"`
	Rejected  []RejectionResponse `json:"rejected"`
}

func toResponse(doc Document) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:   doc.ID,
		Name:         doc.Name,
		Content:      doc.Content,
		Analysis:     doc.Analysis,
		PropertyID:   doc.PropertyID,
		DocumentType: doc.DocumentType,
		MimeType:     doc.MimeType,
		SizeBytes:    doc.SizeBytes,
		UploadedAt:   doc.CreatedAt,
	}
	if doc.Property != nil {
		resp.Property = &PropertyRefResponse{
			ID:      doc.Property.ID,
			Name:    doc.Property.Name,
			Address: doc.Property.Address,
		}
	}
	for _, e := range doc.History {
		resp.History = append(resp.History, toQAResponse(e))
	}
	return resp
}

func toQAResponse(e qahistory.Entry) QAEntryResponse {
	return QAEntryResponse{
		ID:        e.ID,
		Question:  e.Question,
		Answer:    e.Answer,
		CreatedAt: e.CreatedAt,
	}
}
