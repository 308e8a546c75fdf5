package lkpd

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a worksheet or submission id does not exist.
	ErrNotFound = errors.New("lkpd: not found")
	// ErrCorrupt is returned when a stored record exists but cannot be decoded.
	ErrCorrupt = errors.New("lkpd: corrupt record")
	// ErrBadPayload is returned when model output does not match the worksheet schema.
	ErrBadPayload = errors.New("lkpd: response does not match worksheet schema")
	// ErrDuplicate is returned when a submission id is created twice.
	ErrDuplicate = errors.New("lkpd: submission id already exists")
)

type ListOpts struct {
	Limit  int
	Offset int
}

// Store persists worksheets and submissions. Submissions are always keyed by
// their generated id; worksheet id and learner name are indexed attributes,
// never identity.
type Store interface {
	PutWorksheet(ctx context.Context, w Worksheet) error
	GetWorksheet(ctx context.Context, id string) (Worksheet, error)
	ListWorksheets(ctx context.Context, opts ListOpts) ([]WorksheetSummary, error)

	// PutSubmission creates a new record and never overwrites an existing one.
	PutSubmission(ctx context.Context, sub Submission) error
	GetSubmission(ctx context.Context, id string) (Submission, error)
	// UpdateSubmission loads, applies mutate, and rewrites the whole record.
	UpdateSubmission(ctx context.Context, id string, mutate func(*Submission)) (Submission, error)
	ListSubmissions(ctx context.Context, worksheetID string) ([]Submission, error)
}
