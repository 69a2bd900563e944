// Package http provides the HTTP client shared by the catalog gateway
// and the download manager.
//
// The client adds a configured User-Agent, a request timeout, non-200
// status handling, JSON request/response helpers and an optional
// token-bucket rate limit:
//
//	api := httpx.NewClient(httpx.WithRateLimit(4))   // catalog calls
//	cdn := httpx.NewClient()                         // media downloads
//
// All methods take a context.Context and respect cancellation.
package http
