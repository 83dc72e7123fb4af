package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnswerValueUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want AnswerValue
	}{
		{"text", `"hello"`, TextAnswer("hello")},
		{"number", `7.5`, NumberAnswer(7.5)},
		{"integer", `8`, NumberAnswer(8)},
		{"list", `["A","B"]`, ListAnswer("A", "B")},
		{"empty list", `[]`, ListAnswer()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AnswerValue
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.json, err)
			}
			if got.Kind != tt.want.Kind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.want.Kind)
			}
			if got.Text != tt.want.Text || got.Number != tt.want.Number || !sameList(got.List, tt.want.List) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func sameList(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

func TestAnswerValueMarshal(t *testing.T) {
	tests := []struct {
		value AnswerValue
		want  string
	}{
		{TextAnswer("yes"), `"yes"`},
		{NumberAnswer(8), `8`},
		{NumberAnswer(7.5), `7.5`},
		{ListAnswer("A", "B"), `["A","B"]`},
		{ListAnswer(), `[]`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.value)
		if err != nil {
			t.Fatalf("Marshal(%+v): %v", tt.value, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%+v) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestAnswerValueString(t *testing.T) {
	tests := []struct {
		value AnswerValue
		want  string
	}{
		{TextAnswer("Sam"), "Sam"},
		{NumberAnswer(8), "8"},
		{NumberAnswer(7.5), "7.5"},
		{ListAnswer("Yes", "Maybe"), "Yes, Maybe"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String(%+v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestAnswerValueNumeric(t *testing.T) {
	tests := []struct {
		name  string
		value AnswerValue
		want  float64
		ok    bool
	}{
		{"number", NumberAnswer(9), 9, true},
		{"numeric text", TextAnswer("7"), 7, true},
		{"padded numeric text", TextAnswer(" 4.5 "), 4.5, true},
		{"non-numeric text", TextAnswer("n/a"), 0, false},
		{"empty text", TextAnswer(""), 0, false},
		{"one-element list", ListAnswer("5"), 5, true},
		{"multi-element list", ListAnswer("5", "6"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.Numeric()
			if ok != tt.ok || got != tt.want {
				t.Errorf("Numeric(%+v) = (%v, %v), want (%v, %v)", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAnswerLookupAbsence(t *testing.T) {
	response := SurveyResponse{
		Answers: []Answer{
			{QuestionID: "q1", Answer: TextAnswer("yes")},
		},
	}

	if _, ok := response.Answer("q1"); !ok {
		t.Error("expected answer for q1")
	}
	if _, ok := response.Answer("q2"); ok {
		t.Error("expected no answer for q2")
	}
}
