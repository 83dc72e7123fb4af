package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/Gauri-theanalyst/quick-insight-pulse/log"
	"github.com/Gauri-theanalyst/quick-insight-pulse/model"
)

// The whole state lives under two fixed keys in the key/value table,
// each holding one JSON-serialized collection.
const (
	surveysKey   = "surveys"
	responsesKey = "responses"
)

var ErrNotFound = errors.New("not found")

// Store persists surveys and responses in a local key/value blob table.
// Reads never fail: a missing or corrupt blob reads as an empty collection.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbtx interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func readCollection[T any](ctx context.Context, q dbtx, key string) []T {
	var blob []byte
	err := q.
		QueryRowContext(ctx, "SELECT value FROM store WHERE key = ?", key).
		Scan(&blob)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return []T{}
	case err != nil:
		log.Warnf("store.read.%s: %s", key, err)
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		log.Warnf("store.read.%s.unmarshal: %s", key, err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func writeCollection[T any](ctx context.Context, q dbtx, key string, items []T) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", key)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO store (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, blob,
	)
	return errors.Wrapf(err, "write %s", key)
}

// SaveSurvey upserts by id: an existing survey is replaced in place,
// a new one is appended.
func (s *Store) SaveSurvey(ctx context.Context, survey model.Survey) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "save survey: begin tx")
	}
	defer tx.Rollback()

	surveys := readCollection[model.Survey](ctx, tx, surveysKey)

	replaced := false
	for i := range surveys {
		if surveys[i].ID == survey.ID {
			surveys[i] = survey
			replaced = true
			break
		}
	}
	if !replaced {
		surveys = append(surveys, survey)
	}

	if err := writeCollection(ctx, tx, surveysKey, surveys); err != nil {
		return errors.Wrap(err, "save survey")
	}
	return errors.Wrap(tx.Commit(), "save survey: commit")
}

func (s *Store) AllSurveys(ctx context.Context) []model.Survey {
	return readCollection[model.Survey](ctx, s.db, surveysKey)
}

func (s *Store) Survey(ctx context.Context, id string) (model.Survey, error) {
	for _, survey := range s.AllSurveys(ctx) {
		if survey.ID == id {
			return survey, nil
		}
	}
	return model.Survey{}, ErrNotFound
}

// DeleteSurvey removes the survey and every response that references it.
// Both collections are rewritten in one transaction, so no response ever
// outlives its survey.
func (s *Store) DeleteSurvey(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "delete survey: begin tx")
	}
	defer tx.Rollback()

	surveys := readCollection[model.Survey](ctx, tx, surveysKey)
	kept := surveys[:0]
	for _, survey := range surveys {
		if survey.ID != id {
			kept = append(kept, survey)
		}
	}
	if len(kept) == len(surveys) {
		return ErrNotFound
	}
	if err := writeCollection(ctx, tx, surveysKey, kept); err != nil {
		return errors.Wrap(err, "delete survey")
	}

	responses := readCollection[model.SurveyResponse](ctx, tx, responsesKey)
	keptResponses := responses[:0]
	for _, r := range responses {
		if r.SurveyID != id {
			keptResponses = append(keptResponses, r)
		}
	}
	if err := writeCollection(ctx, tx, responsesKey, keptResponses); err != nil {
		return errors.Wrap(err, "delete survey: responses")
	}

	return errors.Wrap(tx.Commit(), "delete survey: commit")
}

// SaveResponse appends: every submission is a new entry, never an upsert.
func (s *Store) SaveResponse(ctx context.Context, response model.SurveyResponse) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "save response: begin tx")
	}
	defer tx.Rollback()

	responses := readCollection[model.SurveyResponse](ctx, tx, responsesKey)
	responses = append(responses, response)

	if err := writeCollection(ctx, tx, responsesKey, responses); err != nil {
		return errors.Wrap(err, "save response")
	}
	return errors.Wrap(tx.Commit(), "save response: commit")
}

func (s *Store) AllResponses(ctx context.Context) []model.SurveyResponse {
	return readCollection[model.SurveyResponse](ctx, s.db, responsesKey)
}

func (s *Store) SurveyResponses(ctx context.Context, surveyID string) []model.SurveyResponse {
	all := s.AllResponses(ctx)
	matching := []model.SurveyResponse{}
	for _, r := range all {
		if r.SurveyID == surveyID {
			matching = append(matching, r)
		}
	}
	return matching
}

// GenerateID produces an identifier unique with overwhelming probability:
// a base-36 millisecond timestamp plus a random suffix. There is no
// coordination or collision detection.
func GenerateID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	random := uuid.Must(uuid.NewV4())
	return ts + random.String()[:8]
}
