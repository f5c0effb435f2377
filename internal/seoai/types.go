package seoai

import "time"

const seoaiTimestampLayout = "2006-01-02 15:04:05"

// Envelope is the common wrapper every SEO-AI endpoint returns alongside its
// payload. Result=false means the request was rejected with a localized
// message.
type Envelope struct {
	Result    bool   `json:"result"`
	Message   string `json:"message"`
	MessageRU string `json:"message_ru"`
	MessageKK string `json:"message_kk"`
	MessageEN string `json:"message_en"`
}

// Err converts a rejection envelope into an *APIError. A successful envelope
// returns nil.
func (e Envelope) Err() error {
	if e.Result {
		return nil
	}
	return &APIError{
		Message:   e.Message,
		MessageRU: e.MessageRU,
		MessageKK: e.MessageKK,
		MessageEN: e.MessageEN,
	}
}

// Payload carries the product metadata the API attaches to cards, jobs and
// archive entries. It is cached client-side so views can render without a
// further fetch.
type Payload struct {
	Name    string   `json:"name"`
	Article string   `json:"article"`
	Images  []string `json:"images"`
}

// Card mirrors the server-side record created for one submitted SKU pair.
type Card struct {
	ID            int64  `json:"id"`
	SKU           string `json:"sku"`
	CompetitorSKU string `json:"competitor_sku"`
	Payload
}

// CreateCardRequest is the body for POST /api/v1/static-card.
type CreateCardRequest struct {
	SKU           string `json:"sku"`
	CompetitorSKU string `json:"competitor_sku,omitempty"`
}

// CreateCardResponse mirrors POST /api/v1/static-card.
type CreateCardResponse struct {
	Envelope
	Card Card `json:"card"`
}

// ProcessJob describes one in-flight job from /api/v1/process-list.
type ProcessJob struct {
	CardID    int64  `json:"card_id"`
	Kind      string `json:"kind"` // analysis, description or both
	SKU       string `json:"sku"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	Payload
}

// ProcessListResponse mirrors GET /api/v1/process-list.
type ProcessListResponse struct {
	Envelope
	Items []ProcessJob `json:"items"`
}

// ArchiveItem describes one completed job from /api/v1/archive.
type ArchiveItem struct {
	CardID      int64  `json:"card_id"`
	Kind        string `json:"kind"`
	SKU         string `json:"sku"`
	Analysis    string `json:"analysis"`
	Description string `json:"description"`
	CompletedAt string `json:"completed_at"`
	Payload
}

// ArchiveResponse mirrors GET /api/v1/archive.
type ArchiveResponse struct {
	Envelope
	Items []ArchiveItem `json:"items"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (j ProcessJob) ParsedCreatedAt() time.Time {
	return parseTime(j.CreatedAt)
}

// ParsedCompletedAt returns the parsed CompletedAt timestamp.
func (a ArchiveItem) ParsedCompletedAt() time.Time {
	return parseTime(a.CompletedAt)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(seoaiTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
