package lkpd

import (
	"context"
	"sync"
)

// memoryStore keeps everything in process memory. Useful for tests and for
// single-session deployments that tolerate loss on restart.
type memoryStore struct {
	mu          sync.RWMutex
	worksheets  map[string]Worksheet
	submissions map[string]Submission
	byWorksheet map[string][]string // worksheet id -> submission ids, insertion order
}

func NewMemoryStore() Store {
	return &memoryStore{
		worksheets:  map[string]Worksheet{},
		submissions: map[string]Submission{},
		byWorksheet: map[string][]string{},
	}
}

func (m *memoryStore) PutWorksheet(_ context.Context, w Worksheet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worksheets[w.ID] = w
	return nil
}

func (m *memoryStore) GetWorksheet(_ context.Context, id string) (Worksheet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.worksheets[id]
	if !ok {
		return Worksheet{}, ErrNotFound
	}
	return w, nil
}

func (m *memoryStore) ListWorksheets(_ context.Context, opts ListOpts) ([]WorksheetSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]WorksheetSummary, 0, len(m.worksheets))
	for _, w := range m.worksheets {
		out = append(out, w.summary())
	}
	sortSummaries(out)
	return paginate(out, opts), nil
}

func (m *memoryStore) PutSubmission(_ context.Context, sub Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.submissions[sub.ID]; exists {
		return ErrDuplicate
	}
	m.submissions[sub.ID] = cloneSubmission(sub)
	m.byWorksheet[sub.WorksheetID] = append(m.byWorksheet[sub.WorksheetID], sub.ID)
	return nil
}

func (m *memoryStore) GetSubmission(_ context.Context, id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.submissions[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return cloneSubmission(sub), nil
}

func (m *memoryStore) UpdateSubmission(_ context.Context, id string, mutate func(*Submission)) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.submissions[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	sub = cloneSubmission(sub)
	mutate(&sub)
	m.submissions[id] = sub
	return cloneSubmission(sub), nil
}

func (m *memoryStore) ListSubmissions(_ context.Context, worksheetID string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.byWorksheet[worksheetID]
	out := make([]Submission, 0, len(ids))
	for _, id := range ids {
		if sub, ok := m.submissions[id]; ok {
			out = append(out, cloneSubmission(sub))
		}
	}
	return out, nil
}

// cloneSubmission detaches the answers map so callers cannot mutate stored
// state through a returned value.
func cloneSubmission(sub Submission) Submission {
	if sub.Answers != nil {
		copied := make(map[string]string, len(sub.Answers))
		for k, v := range sub.Answers {
			copied[k] = v
		}
		sub.Answers = copied
	}
	return sub
}

func paginate(in []WorksheetSummary, opts ListOpts) []WorksheetSummary {
	if opts.Offset > 0 {
		if opts.Offset >= len(in) {
			return nil
		}
		in = in[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(in) {
		in = in[:opts.Limit]
	}
	return in
}
