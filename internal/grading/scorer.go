package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ruslirisal38/lms-interaktif-eduai/internal/genai"
)

// ErrBadVerdict is returned when model output does not match the verdict
// schema. It is non-fatal; callers substitute a neutral default.
var ErrBadVerdict = errors.New("grading: response does not match verdict schema")

// Result is the structured verdict for a single answer.
type Result struct {
	Score        int      `json:"score"` // 0..100
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// TextGenerator is the slice of the genai client the scorer needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// Scorer evaluates free-text answers against the rubric via the
// text-generation service, one answer per round trip.
type Scorer struct {
	gen    TextGenerator
	rubric Rubric
}

func NewScorer(gen TextGenerator) *Scorer {
	return &Scorer{gen: gen, rubric: DefaultRubric}
}

const scorerSystemPrompt = "Anda adalah guru yang menilai jawaban siswa secara objektif " +
	"dan memberikan umpan balik yang membangun dalam bahasa Indonesia. " +
	"Balas hanya dengan satu dokumen JSON, tanpa teks lain."

func (s *Scorer) buildPrompt(question, answer string) string {
	var b strings.Builder
	b.WriteString("Nilai jawaban siswa berikut berdasarkan rubrik berbobot: ")
	b.WriteString(s.rubric.describe())
	b.WriteString(".\n\n")
	fmt.Fprintf(&b, "Pertanyaan: %s\n", question)
	fmt.Fprintf(&b, "Jawaban siswa: %s\n\n", answer)
	fmt.Fprintf(&b, "Kembalikan JSON dengan struktur persis berikut:\n"+
		`{"score": 0-%d, "feedback": "string", "strengths": ["string"], "improvements": ["string"]}`,
		s.rubric.Max)
	return b.String()
}

// ScoreAnswer evaluates one answer. A transport failure surfaces as a
// genai.ErrService; a malformed verdict surfaces as ErrBadVerdict.
func (s *Scorer) ScoreAnswer(ctx context.Context, question, answer string) (Result, error) {
	raw, err := s.gen.GenerateText(ctx, scorerSystemPrompt, s.buildPrompt(question, answer))
	if err != nil {
		return Result{}, fmt.Errorf("score answer: %w", err)
	}
	return s.decode(raw)
}

func (s *Scorer) decode(raw string) (Result, error) {
	var res Result
	if err := json.Unmarshal([]byte(genai.StripFences(raw)), &res); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrBadVerdict, err)
	}
	if res.Score < 0 {
		res.Score = 0
	}
	if res.Score > s.rubric.Max {
		res.Score = s.rubric.Max
	}
	return res, nil
}
