package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/Gauri-theanalyst/quick-insight-pulse/model"
)

func TestExportCSV(t *testing.T) {
	engine, st := newEngine(t)
	saveSurvey(t, st, model.Survey{
		ID: "s1",
		Questions: []model.Question{
			{ID: "q1", Type: model.Text, Title: "Name"},
			{ID: "q2", Type: model.MultipleChoice, Title: "Liked?", Options: []string{"Yes", "Maybe", "No"}},
		},
	})
	saveAnswers(t, st, "s1", "r1",
		answer("q1", model.TextAnswer("Sam")),
		answer("q2", model.ListAnswer("Yes", "Maybe")),
	)

	got, err := engine.ExportCSV(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	submitted := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC).Format(time.RFC3339)
	want := `"Response ID","Submitted At","Name","Liked?"` + "\n" +
		`"r1","` + submitted + `","Sam","Yes, Maybe"`
	if got != want {
		t.Errorf("ExportCSV =\n%s\nwant\n%s", got, want)
	}
}

func TestExportCSVUnansweredCellIsEmpty(t *testing.T) {
	engine, st := newEngine(t)
	saveSurvey(t, st, model.Survey{
		ID: "s1",
		Questions: []model.Question{
			{ID: "q1", Type: model.Text, Title: "Name"},
			{ID: "q2", Type: model.Rating, Title: "Score"},
		},
	})
	saveAnswers(t, st, "s1", "r1", answer("q2", model.NumberAnswer(7)))

	got, err := engine.ExportCSV(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	submitted := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC).Format(time.RFC3339)
	want := `"Response ID","Submitted At","Name","Score"` + "\n" +
		`"r1","` + submitted + `","","7"`
	if got != want {
		t.Errorf("ExportCSV =\n%s\nwant\n%s", got, want)
	}
}

func TestExportCSVEmptyCases(t *testing.T) {
	engine, st := newEngine(t)

	if got, err := engine.ExportCSV(context.Background(), "missing"); err != nil || got != "" {
		t.Errorf("unknown survey: got (%q, %v), want empty string", got, err)
	}

	saveSurvey(t, st, model.Survey{
		ID:        "s1",
		Questions: []model.Question{{ID: "q1", Type: model.Text, Title: "Name"}},
	})
	if got, err := engine.ExportCSV(context.Background(), "s1"); err != nil || got != "" {
		t.Errorf("zero responses: got (%q, %v), want empty string", got, err)
	}
}
