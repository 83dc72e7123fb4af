package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Gauri-theanalyst/quick-insight-pulse/store"
)

// ExportCSV serializes a survey's raw responses: a header row of
// "Response ID", "Submitted At" and the question titles, then one row per
// response in collection order. Every cell is double-quote-wrapped;
// embedded quotes are not escaped, matching the historical export format.
// encoding/csv is deliberately not used, it cannot emit this layout.
// An unknown survey or one with zero responses exports as an empty string.
func (e *Engine) ExportCSV(ctx context.Context, surveyID string) (string, error) {
	survey, err := e.store.Survey(ctx, surveyID)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	responses := e.store.SurveyResponses(ctx, surveyID)
	if len(responses) == 0 {
		return "", nil
	}

	var b strings.Builder

	header := []string{"Response ID", "Submitted At"}
	for _, q := range survey.Questions {
		header = append(header, q.Title)
	}
	writeRow(&b, header)

	for _, response := range responses {
		row := []string{response.ID, response.SubmittedAt.Format(time.RFC3339)}
		for _, q := range survey.Questions {
			if answer, ok := response.Answer(q.ID); ok {
				row = append(row, answer.String())
			} else {
				row = append(row, "")
			}
		}
		b.WriteByte('\n')
		writeRow(&b, row)
	}

	return b.String(), nil
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(cell)
		b.WriteByte('"')
	}
}
