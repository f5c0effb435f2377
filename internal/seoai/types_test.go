package seoai

import (
	"testing"
	"time"
)

func TestEnvelope_Err(t *testing.T) {
	if err := okEnvelope().Err(); err != nil {
		t.Fatalf("Err on success = %v, want nil", err)
	}

	err := Envelope{Result: false, Message: "bad", MessageEN: "bad en"}.Err()
	if err == nil {
		t.Fatalf("Err on rejection = nil, want *APIError")
	}
	if err.Error() != "bad" {
		t.Fatalf("Error() = %q, want bad", err.Error())
	}
}

func TestAPIError_LocalizedFallbacks(t *testing.T) {
	cases := []struct {
		name string
		err  APIError
		lang string
		want string
	}{
		{"exact ru", APIError{MessageRU: "ошибка", Message: "err"}, "ru", "ошибка"},
		{"exact kk", APIError{MessageKK: "қате", Message: "err"}, "kk", "қате"},
		{"case insensitive", APIError{MessageEN: "oops"}, "EN", "oops"},
		{"missing lang falls back to plain", APIError{Message: "plain"}, "kk", "plain"},
		{"plain missing falls back to en", APIError{MessageEN: "english"}, "ru", "english"},
		{"all empty", APIError{}, "ru", "request rejected"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Localized(tc.lang); got != tc.want {
				t.Fatalf("Localized(%q) = %q, want %q", tc.lang, got, tc.want)
			}
		})
	}
}

func TestParseTime_Layouts(t *testing.T) {
	if got := parseTime(""); !got.IsZero() {
		t.Fatalf("parseTime empty = %v, want zero", got)
	}
	if got := parseTime("2026-02-01T10:30:00Z"); got.IsZero() {
		t.Fatalf("parseTime RFC3339 = zero, want parsed")
	}
	got := parseTime("2026-02-01 10:30:00")
	want := time.Date(2026, 2, 1, 10, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("parseTime local layout = %v, want %v", got, want)
	}
	if got := parseTime("garbage"); !got.IsZero() {
		t.Fatalf("parseTime garbage = %v, want zero", got)
	}
}
