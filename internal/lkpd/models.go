package lkpd

import "fmt"

// Question is a single prompt question inside an activity.
type Question struct {
	Text string `json:"text"`
}

// Activity is one block of student work inside a worksheet.
type Activity struct {
	Name             string     `json:"name"`
	Instructions     string     `json:"instructions"`
	InteractiveTasks []string   `json:"interactive_tasks"`
	PromptQuestions  []Question `json:"prompt_questions"`
}

// Worksheet is a generated LKPD document. It is immutable once stored.
type Worksheet struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	LearningObjectives []string   `json:"learning_objectives"`
	Summary            string     `json:"summary"`
	Activities         []Activity `json:"activities"`
	CreatedAt          int64      `json:"created_at,omitempty"`
}

// WorksheetSummary is the listing view served to teachers.
type WorksheetSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ActivityCount int    `json:"activity_count"`
	CreatedAt     int64  `json:"created_at"`
}

// Submission is one learner's answer set for a worksheet. The core fields are
// written once; Score and Feedback are the only fields a later scoring pass may
// overwrite, and only as a whole-record rewrite.
type Submission struct {
	ID          string            `json:"id"`
	WorksheetID string            `json:"worksheet_id"`
	LearnerName string            `json:"learner_name"`
	Answers     map[string]string `json:"answers"`
	SubmittedAt int64             `json:"submitted_at"`
	Score       int               `json:"score"`
	Feedback    string            `json:"feedback,omitempty"`
}

// AnswerKey derives the answer-map key for a question from its activity index
// and question index within that activity.
func AnswerKey(activity, question int) string {
	return fmt.Sprintf("ans_%d_%d", activity, question)
}

func (w Worksheet) summary() WorksheetSummary {
	return WorksheetSummary{
		ID:            w.ID,
		Title:         w.Title,
		ActivityCount: len(w.Activities),
		CreatedAt:     w.CreatedAt,
	}
}
