package lkpd_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ruslirisal38/lms-interaktif-eduai/internal/db"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/lkpd"
)

func newSQLStore(t *testing.T) *lkpd.SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return lkpd.NewSQLStore(conn)
}

func TestSQLStore_WorksheetRoundTrip(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	want := sampleWorksheet("w1", 100)
	if err := store.PutWorksheet(ctx, want); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.GetWorksheet(ctx, "w1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != want.Title || len(got.Activities) != 1 || got.CreatedAt != 100 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, err := store.GetWorksheet(ctx, "abc123"); !errors.Is(err, lkpd.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSQLStore_PutWorksheetUpserts(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	if err := store.PutWorksheet(ctx, sampleWorksheet("w1", 100)); err != nil {
		t.Fatalf("put: %v", err)
	}
	next := sampleWorksheet("w1", 100)
	next.Title = "Tata Surya (revisi)"
	if err := store.PutWorksheet(ctx, next); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _ := store.GetWorksheet(ctx, "w1")
	if got.Title != "Tata Surya (revisi)" {
		t.Fatalf("upsert lost: %+v", got)
	}
}

func TestSQLStore_ListWorksheetsNewestFirst(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	for _, w := range []lkpd.Worksheet{
		sampleWorksheet("w1", 100),
		sampleWorksheet("w3", 300),
		sampleWorksheet("w2", 200),
	} {
		if err := store.PutWorksheet(ctx, w); err != nil {
			t.Fatalf("put %s: %v", w.ID, err)
		}
	}
	out, err := store.ListWorksheets(ctx, lkpd.ListOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 || out[0].ID != "w3" || out[2].ID != "w1" {
		t.Fatalf("want newest first, got %+v", out)
	}
	if out[0].ActivityCount != 1 {
		t.Fatalf("summary mismatch: %+v", out[0])
	}

	page, err := store.ListWorksheets(ctx, lkpd.ListOpts{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page) != 1 || page[0].ID != "w2" {
		t.Fatalf("pagination: %+v", page)
	}
}

func TestSQLStore_SubmissionLifecycle(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	sub := lkpd.Submission{
		ID:          "s1",
		WorksheetID: "w1",
		LearnerName: "Ana",
		Answers:     map[string]string{"ans_0_0": "jawaban"},
		SubmittedAt: 10,
	}
	if err := store.PutSubmission(ctx, sub); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.PutSubmission(ctx, sub); err == nil {
		t.Fatal("duplicate id must be rejected by the primary key")
	}

	got, err := store.GetSubmission(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LearnerName != "Ana" || got.Answers["ans_0_0"] != "jawaban" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	updated, err := store.UpdateSubmission(ctx, "s1", func(s *lkpd.Submission) {
		s.Score = 85
		s.Feedback = "Bagus."
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Score != 85 {
		t.Fatalf("update return: %+v", updated)
	}
	got, _ = store.GetSubmission(ctx, "s1")
	if got.Score != 85 || got.Feedback != "Bagus." || got.Answers["ans_0_0"] != "jawaban" {
		t.Fatalf("rewrite lost data: %+v", got)
	}

	if _, err := store.UpdateSubmission(ctx, "missing", func(*lkpd.Submission) {}); !errors.Is(err, lkpd.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSQLStore_ListSubmissionsByWorksheet(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	subs := []lkpd.Submission{
		{ID: "s2", WorksheetID: "w1", LearnerName: "Budi", SubmittedAt: 20},
		{ID: "s1", WorksheetID: "w1", LearnerName: "Ana", SubmittedAt: 10},
		{ID: "s3", WorksheetID: "other", LearnerName: "Cici", SubmittedAt: 30},
	}
	for _, sub := range subs {
		if err := store.PutSubmission(ctx, sub); err != nil {
			t.Fatalf("put %s: %v", sub.ID, err)
		}
	}
	got, err := store.ListSubmissions(ctx, "w1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "s1" || got[1].ID != "s2" {
		t.Fatalf("want s1,s2 by submit time, got %+v", got)
	}
}
