package seoai

import "strings"

// APIError is a structured rejection returned by the API envelope
// (result=false). The message variants carry per-language text.
type APIError struct {
	Message   string
	MessageRU string
	MessageKK string
	MessageEN string
}

// Error returns the default message, preferring the plain variant.
func (e *APIError) Error() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return e.Localized("en")
}

// Localized picks the message for the given language code (ru, kk, en),
// falling back to the plain message, then English, then any non-empty
// variant.
func (e *APIError) Localized(lang string) string {
	var preferred string
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "ru":
		preferred = e.MessageRU
	case "kk":
		preferred = e.MessageKK
	case "en":
		preferred = e.MessageEN
	}
	for _, msg := range []string{preferred, e.Message, e.MessageEN, e.MessageRU, e.MessageKK} {
		if trimmed := strings.TrimSpace(msg); trimmed != "" {
			return trimmed
		}
	}
	return "request rejected"
}
