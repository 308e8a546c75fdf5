package lkpd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ruslirisal38/lms-interaktif-eduai/internal/storage"
)

const (
	nsWorksheets  = "lkpd"
	nsSubmissions = "submissions"
	nsIndexes     = "indexes"
)

// fsStore persists each record as a JSON document on disk. A per-worksheet
// index document maps the worksheet id to its submission ids, so listing never
// scans filenames.
type fsStore struct {
	docs storage.DocStore

	// serializes submission writes and their index updates
	mu sync.Mutex
}

func NewFSStore(dataDir string) (Store, error) {
	docs, err := storage.NewFSStore(dataDir)
	if err != nil {
		return nil, err
	}
	return &fsStore{docs: docs}, nil
}

func (s *fsStore) PutWorksheet(_ context.Context, w Worksheet) error {
	doc, err := json.Marshal(w)
	if err != nil {
		return err
	}
	if err := s.docs.Put(nsWorksheets, w.ID, doc); err != nil {
		return fmt.Errorf("put worksheet %s: %w", w.ID, err)
	}
	return nil
}

func (s *fsStore) GetWorksheet(_ context.Context, id string) (Worksheet, error) {
	doc, err := s.docs.Get(nsWorksheets, id)
	if errors.Is(err, storage.ErrNotExist) || errors.Is(err, storage.ErrBadKey) {
		return Worksheet{}, ErrNotFound
	}
	if err != nil {
		return Worksheet{}, err
	}
	var w Worksheet
	if err := json.Unmarshal(doc, &w); err != nil {
		return Worksheet{}, fmt.Errorf("%w: worksheet %s: %v", ErrCorrupt, id, err)
	}
	return w, nil
}

func (s *fsStore) ListWorksheets(_ context.Context, opts ListOpts) ([]WorksheetSummary, error) {
	docs, err := s.docs.List(nsWorksheets)
	if err != nil {
		return nil, err
	}
	out := make([]WorksheetSummary, 0, len(docs))
	for _, doc := range docs {
		var w Worksheet
		if err := json.Unmarshal(doc, &w); err != nil {
			// One unreadable file must not take the whole listing down.
			continue
		}
		out = append(out, w.summary())
	}
	sortSummaries(out)
	return paginate(out, opts), nil
}

func (s *fsStore) PutSubmission(_ context.Context, sub Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.docs.Get(nsSubmissions, sub.ID); err == nil {
		return ErrDuplicate
	}
	doc, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	if err := s.docs.Put(nsSubmissions, sub.ID, doc); err != nil {
		return fmt.Errorf("put submission %s: %w", sub.ID, err)
	}
	return s.indexAdd(sub.WorksheetID, sub.ID)
}

func (s *fsStore) GetSubmission(_ context.Context, id string) (Submission, error) {
	doc, err := s.docs.Get(nsSubmissions, id)
	if errors.Is(err, storage.ErrNotExist) || errors.Is(err, storage.ErrBadKey) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, err
	}
	var sub Submission
	if err := json.Unmarshal(doc, &sub); err != nil {
		return Submission{}, fmt.Errorf("%w: submission %s: %v", ErrCorrupt, id, err)
	}
	return sub, nil
}

func (s *fsStore) UpdateSubmission(ctx context.Context, id string, mutate func(*Submission)) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, err := s.GetSubmission(ctx, id)
	if err != nil {
		return Submission{}, err
	}
	mutate(&sub)
	doc, err := json.Marshal(sub)
	if err != nil {
		return Submission{}, err
	}
	if err := s.docs.Put(nsSubmissions, id, doc); err != nil {
		return Submission{}, fmt.Errorf("rewrite submission %s: %w", id, err)
	}
	return sub, nil
}

func (s *fsStore) ListSubmissions(ctx context.Context, worksheetID string) ([]Submission, error) {
	ids, err := s.indexGet(worksheetID)
	if err != nil {
		return nil, err
	}
	out := make([]Submission, 0, len(ids))
	for _, id := range ids {
		sub, err := s.GetSubmission(ctx, id)
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorrupt) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

// indexAdd appends a submission id to the worksheet's index document.
// Callers hold s.mu.
func (s *fsStore) indexAdd(worksheetID, submissionID string) error {
	ids, err := s.indexGet(worksheetID)
	if err != nil {
		return err
	}
	ids = append(ids, submissionID)
	doc, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.docs.Put(nsIndexes, worksheetID, doc)
}

func (s *fsStore) indexGet(worksheetID string) ([]string, error) {
	doc, err := s.docs.Get(nsIndexes, worksheetID)
	if errors.Is(err, storage.ErrNotExist) || errors.Is(err, storage.ErrBadKey) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(doc, &ids); err != nil {
		return nil, fmt.Errorf("%w: index %s: %v", ErrCorrupt, worksheetID, err)
	}
	return ids, nil
}

// sortSummaries orders newest first, id as tiebreak.
func sortSummaries(out []WorksheetSummary) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
}
