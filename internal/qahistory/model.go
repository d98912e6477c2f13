package qahistory

import "time"

// Entry is one question/answer pair recorded against a document. Entries are
// append-only and never mutated; they disappear only when their document is
// deleted (FK cascade).
type Entry struct {
	ID         string
	DocumentID string
	Question   string
	Answer     string
	CreatedAt  time.Time
}
