package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Gauri-theanalyst/quick-insight-pulse/app"
	"github.com/Gauri-theanalyst/quick-insight-pulse/httpx"
	"github.com/Gauri-theanalyst/quick-insight-pulse/log"
	"github.com/Gauri-theanalyst/quick-insight-pulse/model"
	"github.com/Gauri-theanalyst/quick-insight-pulse/store"
)

// PublicGetSurvey serves a survey for response collection. An inactive
// survey behaves exactly like a missing one.
func PublicGetSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		survey, err := app.Survey(r.Context(), surveyId)
		if err != nil || !survey.IsActive {
			httpx.LogNotFound(w, "get_survey", surveyId)
			return
		}

		render.JSON(w, r, survey)
	}
}

func PublicSubmitSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		survey, err := app.Survey(r.Context(), surveyId)
		if err != nil || !survey.IsActive {
			httpx.LogNotFound(w, "submit_survey", surveyId)
			return
		}

		submission := model.SurveyResponse{}
		err = render.DecodeJSON(r.Body, &submission)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		for _, a := range submission.Answers {
			if _, ok := survey.Question(a.QuestionID); !ok {
				httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel,
					"submit_survey.validate", "unknown question id: %s", a.QuestionID)
				return
			}
		}

		if missing := missingRequired(survey, submission); len(missing) > 0 {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel,
				"submit_survey.validate", "missing required answers: %s", strings.Join(missing, ", "))
			return
		}

		response := model.SurveyResponse{
			ID:          store.GenerateID(),
			SurveyID:    survey.ID,
			Answers:     submission.Answers,
			SubmittedAt: time.Now().UTC(),
			UserAgent:   r.UserAgent(),
		}

		err = app.SaveResponse(r.Context(), response)
		if err != nil {
			httpx.LogInternalError(w, "store.save_response", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": response.ID,
		})
	}
}

func missingRequired(survey model.Survey, response model.SurveyResponse) (missing []string) {
	for _, q := range survey.Questions {
		if !q.Required {
			continue
		}
		if _, ok := response.Answer(q.ID); !ok {
			missing = append(missing, q.ID)
		}
	}
	return
}
