package lkpd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ruslirisal38/lms-interaktif-eduai/internal/grading"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/ident"
)

// TextGenerator is the text-generation service boundary.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// AnswerScorer evaluates one answer against the rubric.
type AnswerScorer interface {
	ScoreAnswer(ctx context.Context, question, answer string) (grading.Result, error)
}

// EventSink records lifecycle events. Appends are best-effort.
type EventSink interface {
	Append(ctx context.Context, typ, key string, data any) error
}

// Lifecycle event types emitted by the service.
const (
	EventLkpdGenerated     = "LkpdGenerated"
	EventSubmissionCreated = "SubmissionCreated"
	EventSubmissionScored  = "SubmissionScored"
)

var (
	ErrTopicRequired   = errors.New("lkpd: topic is required")
	ErrLearnerRequired = errors.New("lkpd: learner name is required")
)

// Service sequences the user-facing flows: create worksheet, submit answers,
// and batch scoring.
type Service struct {
	store  Store
	gen    TextGenerator
	scorer AnswerScorer
	events EventSink

	newID func() string
	now   func() time.Time
}

type Option func(*Service)

// WithEvents attaches a lifecycle event sink.
func WithEvents(sink EventSink) Option { return func(s *Service) { s.events = sink } }

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithIDFunc overrides id generation, for tests.
func WithIDFunc(f func() string) Option { return func(s *Service) { s.newID = f } }

func NewService(store Store, gen TextGenerator, scorer AnswerScorer, opts ...Option) *Service {
	s := &Service{
		store:  store,
		gen:    gen,
		scorer: scorer,
		newID:  ident.New,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateWorksheet generates a worksheet for the topic and persists it. On any
// failure nothing is stored and no partial document is returned.
func (s *Service) CreateWorksheet(ctx context.Context, topic string, opts GenerateOptions) (Worksheet, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Worksheet{}, ErrTopicRequired
	}
	raw, err := s.gen.GenerateText(ctx, worksheetSystemPrompt, BuildWorksheetPrompt(topic, opts))
	if err != nil {
		return Worksheet{}, fmt.Errorf("generate worksheet: %w", err)
	}
	w, err := DecodeWorksheet(raw)
	if err != nil {
		return Worksheet{}, err
	}
	w.ID = s.newID()
	w.CreatedAt = s.now().Unix()
	if err := s.store.PutWorksheet(ctx, w); err != nil {
		return Worksheet{}, fmt.Errorf("store worksheet: %w", err)
	}
	s.emit(ctx, EventLkpdGenerated, w.ID, map[string]string{"topic": topic, "title": w.Title})
	return w, nil
}

func (s *Service) GetWorksheet(ctx context.Context, id string) (Worksheet, error) {
	return s.store.GetWorksheet(ctx, strings.TrimSpace(id))
}

func (s *Service) ListWorksheets(ctx context.Context, opts ListOpts) ([]WorksheetSummary, error) {
	return s.store.ListWorksheets(ctx, opts)
}

// SubmitAnswers records a learner's answer set for an existing worksheet and
// returns the stored submission with its generated id.
func (s *Service) SubmitAnswers(ctx context.Context, worksheetID, learnerName string, answers map[string]string) (Submission, error) {
	learnerName = strings.TrimSpace(learnerName)
	if learnerName == "" {
		return Submission{}, ErrLearnerRequired
	}
	if _, err := s.store.GetWorksheet(ctx, worksheetID); err != nil {
		return Submission{}, err
	}
	copied := make(map[string]string, len(answers))
	for k, v := range answers {
		copied[k] = v
	}
	sub := Submission{
		ID:          s.newID(),
		WorksheetID: worksheetID,
		LearnerName: learnerName,
		Answers:     copied,
		SubmittedAt: s.now().Unix(),
	}
	if err := s.store.PutSubmission(ctx, sub); err != nil {
		return Submission{}, fmt.Errorf("store submission: %w", err)
	}
	s.emit(ctx, EventSubmissionCreated, sub.ID, map[string]string{"lkpd_id": worksheetID, "learner": learnerName})
	return sub, nil
}

func (s *Service) GetSubmission(ctx context.Context, id string) (Submission, error) {
	return s.store.GetSubmission(ctx, strings.TrimSpace(id))
}

func (s *Service) ListSubmissions(ctx context.Context, worksheetID string) ([]Submission, error) {
	if _, err := s.store.GetWorksheet(ctx, worksheetID); err != nil {
		return nil, err
	}
	return s.store.ListSubmissions(ctx, worksheetID)
}

// ScoreAll evaluates every non-empty answer of every submission for the
// worksheet and rewrites each submission with its aggregate score and
// feedback. Re-running overwrites the previous pass. A submission with no
// non-empty answers is left untouched. Returns the number of submissions
// rewritten.
func (s *Service) ScoreAll(ctx context.Context, worksheetID string) (int, error) {
	w, err := s.store.GetWorksheet(ctx, worksheetID)
	if err != nil {
		return 0, err
	}
	subs, err := s.store.ListSubmissions(ctx, worksheetID)
	if err != nil {
		return 0, err
	}

	scored := 0
	for _, sub := range subs {
		total, answered := 0, 0
		var feedback []string
		for i, act := range w.Activities {
			for j, q := range act.PromptQuestions {
				answer := strings.TrimSpace(sub.Answers[AnswerKey(i, j)])
				if answer == "" {
					continue
				}
				res, err := s.scorer.ScoreAnswer(ctx, q.Text, answer)
				if err != nil {
					// non-fatal: count as zero so one bad verdict does not
					// abort the batch
					res = grading.Result{Feedback: "Evaluasi otomatis gagal untuk jawaban ini."}
				}
				total += res.Score
				answered++
				if len(feedback) < 2 && res.Feedback != "" {
					feedback = append(feedback, res.Feedback)
				}
			}
		}
		if answered == 0 {
			continue
		}
		mean := total / max(answered, 1)
		joined := strings.Join(feedback, " ")
		if _, err := s.store.UpdateSubmission(ctx, sub.ID, func(x *Submission) {
			x.Score = mean
			x.Feedback = joined
		}); err != nil {
			return scored, fmt.Errorf("rewrite submission %s: %w", sub.ID, err)
		}
		scored++
		s.emit(ctx, EventSubmissionScored, sub.ID, map[string]int{"score": mean, "answers": answered})
	}
	return scored, nil
}

func (s *Service) emit(ctx context.Context, typ, key string, data any) {
	if s.events == nil {
		return
	}
	_ = s.events.Append(ctx, typ, key, data)
}
