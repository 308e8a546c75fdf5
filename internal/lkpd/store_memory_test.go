package lkpd_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ruslirisal38/lms-interaktif-eduai/internal/lkpd"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := lkpd.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.GetWorksheet(ctx, "abc123"); !errors.Is(err, lkpd.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := store.PutWorksheet(ctx, sampleWorksheet("w1", 100)); err != nil {
		t.Fatalf("put worksheet: %v", err)
	}

	subs := []lkpd.Submission{
		{ID: "s1", WorksheetID: "w1", LearnerName: "Ana", SubmittedAt: 10},
		{ID: "s2", WorksheetID: "w1", LearnerName: "Budi", SubmittedAt: 20},
	}
	for _, sub := range subs {
		if err := store.PutSubmission(ctx, sub); err != nil {
			t.Fatalf("put %s: %v", sub.ID, err)
		}
	}
	if err := store.PutSubmission(ctx, subs[0]); !errors.Is(err, lkpd.ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}

	got, err := store.ListSubmissions(ctx, "w1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "s1" || got[1].ID != "s2" {
		t.Fatalf("insertion order lost: %+v", got)
	}

	if _, err := store.UpdateSubmission(ctx, "s1", func(s *lkpd.Submission) { s.Score = 75 }); err != nil {
		t.Fatalf("update: %v", err)
	}
	sub, _ := store.GetSubmission(ctx, "s1")
	if sub.Score != 75 {
		t.Fatalf("update lost: %+v", sub)
	}
	if _, err := store.UpdateSubmission(ctx, "missing", func(*lkpd.Submission) {}); !errors.Is(err, lkpd.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := lkpd.NewMemoryStore()
	ctx := context.Background()

	sub := lkpd.Submission{ID: "s1", WorksheetID: "w1", LearnerName: "Ana",
		Answers: map[string]string{"ans_0_0": "asli"}, SubmittedAt: 10}
	if err := store.PutSubmission(ctx, sub); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, _ := store.GetSubmission(ctx, "s1")
	got.Answers["ans_0_0"] = "diubah"

	again, _ := store.GetSubmission(ctx, "s1")
	if again.Answers["ans_0_0"] != "asli" {
		t.Fatal("callers must not be able to mutate stored state")
	}
}
