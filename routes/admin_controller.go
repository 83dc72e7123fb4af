package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/pkg/errors"

	"github.com/Gauri-theanalyst/quick-insight-pulse/app"
	"github.com/Gauri-theanalyst/quick-insight-pulse/httpx"
	"github.com/Gauri-theanalyst/quick-insight-pulse/log"
	"github.com/Gauri-theanalyst/quick-insight-pulse/model"
	"github.com/Gauri-theanalyst/quick-insight-pulse/store"
)

// CreateSurvey publishes a survey: it gets a fresh id, a creation
// timestamp, its share URL, and starts out active.
func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey := model.Survey{}
		err := render.DecodeJSON(r.Body, &survey)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if survey.Title == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel,
				"create_survey.validate", "missing survey title")
			return
		}
		if err := validateQuestions(survey); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel,
				"create_survey.validate", "%s", err)
			return
		}

		survey.ID = store.GenerateID()
		survey.CreatedAt = time.Now().UTC()
		survey.IsActive = true
		survey.ShareURL = app.ShareURL(survey.ID)

		err = app.SaveSurvey(r.Context(), survey)
		if err != nil {
			httpx.LogInternalError(w, "store.save_survey", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":       survey.ID,
			"shareUrl": survey.ShareURL,
		})
	}
}

func validateQuestions(survey model.Survey) error {
	seen := map[string]bool{}
	for _, q := range survey.Questions {
		if q.ID == "" {
			return errors.New("missing question id")
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id: %s", q.ID)
		}
		seen[q.ID] = true

		switch q.Type {
		case model.MultipleChoice:
			if len(q.Options) == 0 {
				return fmt.Errorf("question %s: multiple-choice without options", q.ID)
			}
		case model.Text, model.Rating, model.YesNo, model.NPS:
			// no options expected
		default:
			return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
		}
	}
	return nil
}

func ListSurveys(app app.App) http.HandlerFunc {
	type surveyListItem struct {
		model.Survey
		ResponseCount int `json:"responseCount"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		counts := map[string]int{}
		for _, response := range app.AllResponses(r.Context()) {
			counts[response.SurveyID]++
		}

		surveys := []surveyListItem{}
		for _, survey := range app.AllSurveys(r.Context()) {
			surveys = append(surveys, surveyListItem{survey, counts[survey.ID]})
		}

		render.JSON(w, r, map[string]any{
			"surveys": surveys,
		})
	}
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		survey, err := app.Survey(r.Context(), surveyId)
		if err != nil {
			httpx.LogNotFound(w, "get_survey", surveyId)
			return
		}

		render.JSON(w, r, survey)
	}
}

// UpdateSurvey replaces title, description and questions. Identity and
// publication metadata are kept from the stored survey.
func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		existing, err := app.Survey(r.Context(), surveyId)
		if err != nil {
			httpx.LogNotFound(w, "update_survey", surveyId)
			return
		}

		survey := model.Survey{}
		err = render.DecodeJSON(r.Body, &survey)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if err := validateQuestions(survey); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel,
				"update_survey.validate", "%s", err)
			return
		}

		survey.ID = existing.ID
		survey.CreatedAt = existing.CreatedAt
		survey.IsActive = existing.IsActive
		survey.ShareURL = existing.ShareURL

		err = app.SaveSurvey(r.Context(), survey)
		if err != nil {
			httpx.LogInternalError(w, "store.save_survey", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// SetSurveyActive toggles whether the survey accepts new responses.
func SetSurveyActive(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		survey, err := app.Survey(r.Context(), surveyId)
		if err != nil {
			httpx.LogNotFound(w, "set_survey_active", surveyId)
			return
		}

		var body struct {
			IsActive bool `json:"isActive"`
		}
		err = render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		survey.IsActive = body.IsActive
		err = app.SaveSurvey(r.Context(), survey)
		if err != nil {
			httpx.LogInternalError(w, "store.save_survey", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		err := app.Store.DeleteSurvey(r.Context(), surveyId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "delete_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "store.delete_survey", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		if _, err := app.Survey(r.Context(), surveyId); err != nil {
			httpx.LogNotFound(w, "get_responses", surveyId)
			return
		}

		render.JSON(w, r, map[string]any{
			"responses": app.SurveyResponses(r.Context(), surveyId),
		})
	}
}

func GetSurveyAnalytics(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		analytics, err := app.SurveyAnalytics(r.Context(), surveyId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_analytics", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "analytics.aggregate", err)
			return
		}

		render.JSON(w, r, analytics)
	}
}

func ExportSurveyCSV(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		survey, err := app.Survey(r.Context(), surveyId)
		if err != nil {
			httpx.LogNotFound(w, "export_csv", surveyId)
			return
		}

		csv, err := app.ExportCSV(r.Context(), surveyId)
		if err != nil {
			httpx.LogInternalError(w, "analytics.export_csv", err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", survey.Title+"-responses.csv"))
		w.Write([]byte(csv))
	}
}
