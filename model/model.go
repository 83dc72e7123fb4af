package model

import "time"

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	Text           QuestionType = "text"
	Rating         QuestionType = "rating"
	YesNo          QuestionType = "yes-no"
	NPS            QuestionType = "nps"
)

type Question struct {
	ID       string       `json:"id"`
	Type     QuestionType `json:"type"`
	Title    string       `json:"title"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required"`
}

type Survey struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
	IsActive    bool       `json:"isActive"`
	ShareURL    string     `json:"shareUrl,omitempty"`
}

// Question returns the survey question with the given id, if any.
func (s Survey) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

type Answer struct {
	QuestionID string      `json:"questionId"`
	Answer     AnswerValue `json:"answer"`
}

type SurveyResponse struct {
	ID          string    `json:"id"`
	SurveyID    string    `json:"surveyId"`
	Answers     []Answer  `json:"answers"`
	SubmittedAt time.Time `json:"submittedAt"`
	UserAgent   string    `json:"userAgent,omitempty"`
}

// Answer returns the answer value for the given question id.
// Absence of an entry means the question was not answered.
func (r SurveyResponse) Answer(questionID string) (AnswerValue, bool) {
	for _, a := range r.Answers {
		if a.QuestionID == questionID {
			return a.Answer, true
		}
	}
	return AnswerValue{}, false
}
