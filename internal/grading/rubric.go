package grading

import (
	"fmt"
	"strings"
)

// Criterion is one weighted dimension of the scoring rubric.
type Criterion struct {
	Key    string `json:"key"`
	Desc   string `json:"desc"`
	Weight int    `json:"weight"` // percentage points out of 100
}

type Rubric struct {
	Criteria []Criterion `json:"criteria"`
	Max      int         `json:"max_score"`
}

// DefaultRubric is the fixed rubric applied to free-text answers.
var DefaultRubric = Rubric{
	Criteria: []Criterion{
		{Key: "concept", Desc: "pemahaman konsep", Weight: 40},
		{Key: "clarity", Desc: "kejelasan penjelasan", Weight: 30},
		{Key: "examples", Desc: "penggunaan contoh", Weight: 20},
		{Key: "language", Desc: "penggunaan bahasa", Weight: 10},
	},
	Max: 100,
}

func (r Rubric) describe() string {
	parts := make([]string, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		parts = append(parts, fmt.Sprintf("%s (%d%%)", c.Desc, c.Weight))
	}
	return strings.Join(parts, ", ")
}
