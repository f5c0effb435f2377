// Package seoai implements the HTTP client for the SEO-AI REST API.
//
// # Overview
//
// The dashboard is a thin presentation layer: every piece of business logic
// (analysis computation, description generation, billing) lives behind this
// API. The client covers the five calls the dashboard consumes:
//
//   - CreateCard: POST /api/v1/static-card, submits a SKU pair
//   - StartAnalysis: PUT /api/v1/analyse-card/{id}
//   - StartDescription: PUT /api/v1/description-card/{id}
//   - FetchProcessList: GET /api/v1/process-list, polled every 5s
//   - FetchArchive: GET /api/v1/archive, polled every 10s
//
// # Envelope Contract
//
// Every endpoint wraps its payload in a common envelope:
//
//	{ "result": bool, "message": "...", "message_ru": "...",
//	  "message_kk": "...", "message_en": "..." }
//
// result=false means the request was rejected. Rejections surface as
// *APIError values carrying all message variants; callers pick the text for
// the configured language via Localized. Transport failures and undecodable
// bodies surface as wrapped plain errors.
//
// # Testing
//
// The API interface mirrors the client's method set so UI code and tests can
// substitute a stub without a network. *Client satisfies it by construction.
package seoai
