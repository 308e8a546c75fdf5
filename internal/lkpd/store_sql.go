package lkpd

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLStore backs the store with sqlite or postgres. The full record is kept as
// a JSON document; worksheet id and learner name are also stored as indexed
// columns for lookups.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutWorksheet(ctx context.Context, w Worksheet) error {
	doc, err := json.Marshal(w)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO lkpd (id, title, doc, created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, doc=EXCLUDED.doc`,
		w.ID, w.Title, string(doc), w.CreatedAt)
	return err
}

func (s *SQLStore) GetWorksheet(ctx context.Context, id string) (Worksheet, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM lkpd WHERE id=$1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return Worksheet{}, ErrNotFound
	}
	if err != nil {
		return Worksheet{}, err
	}
	var w Worksheet
	if err := json.Unmarshal([]byte(doc), &w); err != nil {
		return Worksheet{}, fmt.Errorf("%w: worksheet %s: %v", ErrCorrupt, id, err)
	}
	return w, nil
}

func (s *SQLStore) ListWorksheets(ctx context.Context, opts ListOpts) ([]WorksheetSummary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM lkpd ORDER BY created_at DESC, id ASC LIMIT $1 OFFSET $2`,
		limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []WorksheetSummary
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var w Worksheet
		if err := json.Unmarshal([]byte(doc), &w); err != nil {
			continue
		}
		out = append(out, w.summary())
	}
	return out, rows.Err()
}

func (s *SQLStore) PutSubmission(ctx context.Context, sub Submission) error {
	doc, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	// plain INSERT: the primary key rejects an accidental rewrite
	_, err = s.db.ExecContext(ctx, `INSERT INTO submissions (id, lkpd_id, learner_name, doc, submitted_at)
		VALUES ($1,$2,$3,$4,$5)`,
		sub.ID, sub.WorksheetID, sub.LearnerName, string(doc), sub.SubmittedAt)
	return err
}

func (s *SQLStore) GetSubmission(ctx context.Context, id string) (Submission, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM submissions WHERE id=$1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, err
	}
	var sub Submission
	if err := json.Unmarshal([]byte(doc), &sub); err != nil {
		return Submission{}, fmt.Errorf("%w: submission %s: %v", ErrCorrupt, id, err)
	}
	return sub, nil
}

func (s *SQLStore) UpdateSubmission(ctx context.Context, id string, mutate func(*Submission)) (Submission, error) {
	sub, err := s.GetSubmission(ctx, id)
	if err != nil {
		return Submission{}, err
	}
	mutate(&sub)
	doc, err := json.Marshal(sub)
	if err != nil {
		return Submission{}, err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE submissions SET doc=$1 WHERE id=$2`, string(doc), id)
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) ListSubmissions(ctx context.Context, worksheetID string) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM submissions WHERE lkpd_id=$1 ORDER BY submitted_at ASC, id ASC`,
		worksheetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var sub Submission
		if err := json.Unmarshal([]byte(doc), &sub); err != nil {
			continue
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
