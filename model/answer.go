package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type ValueKind int

const (
	TextValue ValueKind = iota
	NumberValue
	ListValue
)

// AnswerValue is the value of a single answer. On the wire it is one of
// a JSON string, a JSON number, or a JSON array of strings; in memory it
// is a tagged union so callers can switch on Kind instead of type-asserting.
type AnswerValue struct {
	Kind   ValueKind
	Text   string
	Number float64
	List   []string
}

func TextAnswer(s string) AnswerValue {
	return AnswerValue{Kind: TextValue, Text: s}
}

func NumberAnswer(n float64) AnswerValue {
	return AnswerValue{Kind: NumberValue, Number: n}
}

func ListAnswer(items ...string) AnswerValue {
	return AnswerValue{Kind: ListValue, List: items}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case NumberValue:
		return json.Marshal(v.Number)
	case ListValue:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	default:
		return json.Marshal(v.Text)
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty answer value")
	}

	switch data[0] {
	case '"':
		v.Kind = TextValue
		return json.Unmarshal(data, &v.Text)
	case '[':
		v.Kind = ListValue
		return json.Unmarshal(data, &v.List)
	default:
		v.Kind = NumberValue
		return json.Unmarshal(data, &v.Number)
	}
}

// String renders the value the way it appears in CSV cells and answer
// tallies: numbers without trailing zeros, lists joined with ", ".
func (v AnswerValue) String() string {
	switch v.Kind {
	case NumberValue:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ListValue:
		return strings.Join(v.List, ", ")
	default:
		return v.Text
	}
}

// Numeric coerces the value to a number. Number values pass through, text
// values are parsed, a one-element list coerces through its element.
// Everything else fails coercion.
func (v AnswerValue) Numeric() (float64, bool) {
	switch v.Kind {
	case NumberValue:
		return v.Number, true
	case TextValue:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		return n, err == nil
	case ListValue:
		if len(v.List) == 1 {
			n, err := strconv.ParseFloat(strings.TrimSpace(v.List[0]), 64)
			return n, err == nil
		}
	}
	return 0, false
}

// Selections returns the value as a list of selected options. A scalar
// answer counts as a single selection.
func (v AnswerValue) Selections() []string {
	if v.Kind == ListValue {
		return v.List
	}
	return []string{v.String()}
}
