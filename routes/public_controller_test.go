package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Gauri-theanalyst/quick-insight-pulse/model"
	"github.com/Gauri-theanalyst/quick-insight-pulse/routes"
)

// mounts the public handlers without the surrounding middleware stack
func publicRouter(t *testing.T) (http.Handler, func(model.Survey)) {
	t.Helper()

	app := newTestApp(t)
	r := chi.NewRouter()
	r.Get("/api/surveys/{id}", routes.PublicGetSurvey(app))
	r.Post("/api/surveys/{id}/responses", routes.PublicSubmitSurvey(app))

	seed := func(survey model.Survey) {
		if err := app.SaveSurvey(context.Background(), survey); err != nil {
			t.Fatalf("SaveSurvey: %v", err)
		}
	}
	return r, seed
}

func activeSurvey() model.Survey {
	return model.Survey{
		ID:    "s1",
		Title: "Feedback",
		Questions: []model.Question{
			{ID: "q1", Type: model.Rating, Title: "Rate us", Required: true},
			{ID: "q2", Type: model.Text, Title: "Comments"},
		},
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
}

func TestPublicGetSurvey(t *testing.T) {
	handler, seed := publicRouter(t)
	seed(activeSurvey())

	w := doJSON(t, handler, "GET", "/api/surveys/s1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var survey model.Survey
	if err := json.NewDecoder(w.Body).Decode(&survey); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if survey.ID != "s1" || len(survey.Questions) != 2 {
		t.Errorf("survey = %+v", survey)
	}
}

func TestPublicGetSurveyNotFound(t *testing.T) {
	handler, _ := publicRouter(t)

	w := doJSON(t, handler, "GET", "/api/surveys/missing", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSubmitAssignsServerSideFields(t *testing.T) {
	handler, seed := publicRouter(t)
	seed(activeSurvey())

	w := doJSON(t, handler, "POST", "/api/surveys/s1/responses", "", map[string]any{
		"id":       "spoofed",
		"surveyId": "other",
		"answers":  []map[string]any{{"questionId": "q1", "answer": 5}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if created.ID == "" || created.ID == "spoofed" {
		t.Errorf("id = %q, want a freshly generated one", created.ID)
	}
}

func TestSubmitRejectsMissingRequired(t *testing.T) {
	handler, seed := publicRouter(t)
	seed(activeSurvey())

	w := doJSON(t, handler, "POST", "/api/surveys/s1/responses", "", map[string]any{
		"answers": []map[string]any{{"questionId": "q2", "answer": "only optional"}},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSubmitRejectsUnknownQuestion(t *testing.T) {
	handler, seed := publicRouter(t)
	seed(activeSurvey())

	w := doJSON(t, handler, "POST", "/api/surveys/s1/responses", "", map[string]any{
		"answers": []map[string]any{
			{"questionId": "q1", "answer": 5},
			{"questionId": "q99", "answer": "bogus"},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
