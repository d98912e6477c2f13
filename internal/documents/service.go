package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"propdocs-backend/internal/extract"
	"propdocs-backend/internal/llm"
	"propdocs-backend/internal/qahistory"
	"propdocs-backend/internal/sanitize"
	"propdocs-backend/internal/shared/metrics"
	"propdocs-backend/internal/shared/storage/object"
	"propdocs-backend/internal/shared/telemetry"
)

// Service contains the document pipeline: store the raw file, extract and
// sanitize text, persist the record, run the model analysis, and answer
// questions against stored documents.
type Service struct {
	Repo     Repo
	Store    object.ObjectStore
	History  qahistory.Repo
	Analyzer *llm.Analyzer
}

// UploadInput carries one accepted file plus its association fields.
type UploadInput struct {
	FileName     string
	PropertyID   string
	DocumentType string
}

// Upload runs the intake pipeline for a single accepted file.
func (s *Service) Upload(ctx context.Context, userId string, in UploadInput, r io.Reader) (Document, error) {
	if userId == "" {
		return Document{}, ErrUnauthenticated
	}
	if in.FileName == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("%w: unable to read file", ErrInvalidInput)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userId, in.FileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Error("documents.store_raw", map[string]any{"error": err.Error(), "file": in.FileName})
		return Document{}, ErrWriteFailed
	}

	content := ""
	if extract.Supported(mimeType, in.FileName) {
		raw, err := extract.Text(ctx, data, mimeType, in.FileName)
		if err != nil {
			// Extraction is best-effort: the document is still stored,
			// it just carries no analyzable text.
			telemetry.Error("documents.extract", map[string]any{"error": err.Error(), "file": in.FileName})
		} else {
			content = sanitize.Content(raw)
		}
	}

	doc := Document{
		ID:           uuid.NewString(),
		UserID:       userId,
		Name:         in.FileName,
		Content:      content,
		PropertyID:   in.PropertyID,
		DocumentType: in.DocumentType,
		MimeType:     mimeType,
		SizeBytes:    size,
		StorageKey:   storageKey,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		telemetry.Error("documents.create", map[string]any{"error": err.Error(), "document_id": doc.ID})
		if delErr := s.Store.Delete(ctx, storageKey); delErr != nil {
			telemetry.Error("documents.orphan_raw", map[string]any{"error": delErr.Error(), "storage_key": storageKey})
		}
		return Document{}, ErrWriteFailed
	}
	metrics.IncDocumentsUploaded()

	if doc.Content != "" && s.Analyzer != nil {
		start := time.Now()
		analysis, err := s.Analyzer.Analyze(ctx, doc.Content)
		if err != nil {
			// The document is already persisted; analysis can be retried by
			// re-asking via the question flow. Surface nothing to the caller.
			metrics.IncAnalysisFailed()
			telemetry.Error("documents.analyze", map[string]any{"error": err.Error(), "document_id": doc.ID})
			return doc, nil
		}
		metrics.IncAnalysisCompleted()
		metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

		if analysis != "" {
			if err := s.Repo.UpdateAnalysis(ctx, userId, doc.ID, analysis); err != nil {
				telemetry.Error("documents.update_analysis", map[string]any{"error": err.Error(), "document_id": doc.ID})
				return doc, nil
			}
			doc.Analysis = analysis
		}
	}

	return doc, nil
}

// List returns the caller's documents newest-first, each with its property
// reference and full question history (oldest first).
func (s *Service) List(ctx context.Context, userId string) ([]Document, error) {
	if userId == "" {
		return nil, ErrUnauthenticated
	}

	docs, err := s.Repo.ListByUser(ctx, userId)
	if err != nil {
		telemetry.Error("documents.list", map[string]any{"error": err.Error(), "user_id": userId})
		return nil, ErrUnavailable
	}
	if len(docs) == 0 {
		return docs, nil
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	histories, err := s.History.ListByDocuments(ctx, ids)
	if err != nil {
		telemetry.Error("documents.list_history", map[string]any{"error": err.Error(), "user_id": userId})
		return nil, ErrUnavailable
	}
	for i := range docs {
		docs[i].History = histories[docs[i].ID]
	}
	return docs, nil
}

// Ask answers a question against a stored document and appends the exchange
// to the document's history.
func (s *Service) Ask(ctx context.Context, userId, documentID, question string) (qahistory.Entry, error) {
	if userId == "" {
		return qahistory.Entry{}, ErrUnauthenticated
	}
	if question == "" {
		return qahistory.Entry{}, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}

	doc, err := s.Repo.GetByID(ctx, userId, documentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return qahistory.Entry{}, ErrNotFound
		}
		telemetry.Error("documents.get", map[string]any{"error": err.Error(), "document_id": documentID})
		return qahistory.Entry{}, ErrUnavailable
	}

	contextText := doc.Content
	if doc.Analysis != "" {
		contextText += "\n\nPrior analysis:\n" + doc.Analysis
	}

	answer, err := s.Analyzer.Answer(ctx, contextText, question)
	if err != nil {
		return qahistory.Entry{}, err
	}

	entry := qahistory.Entry{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Question:   question,
		Answer:     answer,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.History.Append(ctx, entry); err != nil {
		telemetry.Error("documents.append_history", map[string]any{"error": err.Error(), "document_id": doc.ID})
		return qahistory.Entry{}, qahistory.ErrWriteFailed
	}
	metrics.IncQuestionsAnswered()

	return entry, nil
}

// Delete removes a document and its stored raw file.
func (s *Service) Delete(ctx context.Context, userId, documentID string) error {
	if userId == "" {
		return ErrUnauthenticated
	}

	doc, err := s.Repo.GetByID(ctx, userId, documentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		telemetry.Error("documents.get", map[string]any{"error": err.Error(), "document_id": documentID})
		return ErrUnavailable
	}

	if err := s.Repo.Delete(ctx, userId, documentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		telemetry.Error("documents.delete", map[string]any{"error": err.Error(), "document_id": documentID})
		return ErrWriteFailed
	}

	// The PG schema cascades this delete; issuing it explicitly keeps
	// non-cascading history stores consistent. Best-effort, like the raw file.
	if err := s.History.DeleteByDocument(ctx, documentID); err != nil {
		telemetry.Error("documents.delete_history", map[string]any{"error": err.Error(), "document_id": documentID})
	}

	if doc.StorageKey != "" {
		if err := s.Store.Delete(ctx, doc.StorageKey); err != nil {
			// Raw-file cleanup is best-effort; the record is already gone.
			telemetry.Error("documents.delete_raw", map[string]any{"error": err.Error(), "storage_key": doc.StorageKey})
		}
	}
	return nil
}
