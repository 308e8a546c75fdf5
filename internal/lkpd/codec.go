package lkpd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ruslirisal38/lms-interaktif-eduai/internal/genai"
)

// DecodeWorksheet parses raw model output into a Worksheet. The output may be
// wrapped in a Markdown code fence. A document missing any of the required
// top-level fields is rejected; the caller never sees a partial worksheet.
func DecodeWorksheet(raw string) (Worksheet, error) {
	var w Worksheet
	if err := json.Unmarshal([]byte(genai.StripFences(raw)), &w); err != nil {
		return Worksheet{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	var missing []string
	if strings.TrimSpace(w.Title) == "" {
		missing = append(missing, "title")
	}
	if len(w.LearningObjectives) == 0 {
		missing = append(missing, "learning_objectives")
	}
	if strings.TrimSpace(w.Summary) == "" {
		missing = append(missing, "summary")
	}
	if len(w.Activities) == 0 {
		missing = append(missing, "activities")
	}
	if len(missing) > 0 {
		return Worksheet{}, fmt.Errorf("%w: missing %s", ErrBadPayload, strings.Join(missing, ", "))
	}
	return w, nil
}
