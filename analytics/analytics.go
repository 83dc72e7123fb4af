package analytics

import (
	"context"

	"github.com/Gauri-theanalyst/quick-insight-pulse/model"
	"github.com/Gauri-theanalyst/quick-insight-pulse/store"
)

// QuestionAnalytic is the derived per-question statistic. Which fields are
// populated depends on the question type: Answers tallies for
// multiple-choice, text and yes-no; AverageRating for rating and nps;
// NPSScore for nps only.
type QuestionAnalytic struct {
	QuestionID    string             `json:"questionId"`
	QuestionTitle string             `json:"questionTitle"`
	QuestionType  model.QuestionType `json:"questionType"`
	Responses     int                `json:"responses"`
	Answers       map[string]int     `json:"answers"`
	AverageRating float64            `json:"averageRating"`
	NPSScore      float64            `json:"npsScore"`
}

type SurveyAnalytics struct {
	TotalResponses    int                `json:"totalResponses"`
	CompletionRate    float64            `json:"completionRate"`
	QuestionAnalytics []QuestionAnalytic `json:"questionAnalytics"`
}

// Engine computes derived statistics over the store. Nothing is cached:
// every call recomputes from the full response collection.
type Engine struct {
	store *store.Store
}

func New(st *store.Store) *Engine {
	return &Engine{store: st}
}

// SurveyAnalytics aggregates all responses of a survey into per-question
// statistics plus totals. Returns store.ErrNotFound for an unknown survey
// id; a known survey with zero responses yields a zero-valued result.
func (e *Engine) SurveyAnalytics(ctx context.Context, surveyID string) (*SurveyAnalytics, error) {
	survey, err := e.store.Survey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	responses := e.store.SurveyResponses(ctx, surveyID)

	analytics := &SurveyAnalytics{
		TotalResponses:    len(responses),
		QuestionAnalytics: make([]QuestionAnalytic, len(survey.Questions)),
	}
	byQuestion := make(map[string]*QuestionAnalytic, len(survey.Questions))
	for i, q := range survey.Questions {
		analytics.QuestionAnalytics[i] = QuestionAnalytic{
			QuestionID:    q.ID,
			QuestionTitle: q.Title,
			QuestionType:  q.Type,
			Answers:       map[string]int{},
		}
		byQuestion[q.ID] = &analytics.QuestionAnalytics[i]
	}

	for _, response := range responses {
		for _, answer := range response.Answers {
			qa, ok := byQuestion[answer.QuestionID]
			if !ok {
				// stale or foreign question id
				continue
			}
			qa.fold(answer.Answer)
		}
	}

	completed := 0
	for _, response := range responses {
		if answeredAllRequired(survey, response) {
			completed++
		}
	}
	if len(responses) > 0 {
		analytics.CompletionRate = float64(completed) / float64(len(responses)) * 100
	}

	return analytics, nil
}

// fold adds a single answer to the running statistics. The response count
// is incremented exactly once per answer, before any type-specific
// handling; a rating/nps answer that fails numeric coercion therefore
// still counts toward Responses without moving the averages.
func (qa *QuestionAnalytic) fold(value model.AnswerValue) {
	qa.Responses++

	switch qa.QuestionType {
	case model.Rating, model.NPS:
		rating, ok := value.Numeric()
		if !ok {
			return
		}
		n := float64(qa.Responses)
		qa.AverageRating = (qa.AverageRating*(n-1) + rating) / n

		if qa.QuestionType == model.NPS {
			// promoters (9-10) score +1, detractors (0-6) score -1
			score := 0.0
			switch {
			case rating >= 9:
				score = 1
			case rating <= 6:
				score = -1
			}
			qa.NPSScore = (qa.NPSScore*(n-1) + score) / n
		}

	case model.MultipleChoice:
		for _, choice := range value.Selections() {
			qa.Answers[choice]++
		}

	default:
		qa.Answers[value.String()]++
	}
}

func answeredAllRequired(survey model.Survey, response model.SurveyResponse) bool {
	for _, q := range survey.Questions {
		if !q.Required {
			continue
		}
		if _, ok := response.Answer(q.ID); !ok {
			return false
		}
	}
	return true
}
