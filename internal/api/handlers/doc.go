// Package handlers implements the ebay-seller-metrics HTTP API.
//
// Probes are plain echo routes so they stay outside the OpenAPI document.
// Everything else is a huma operation:
//
//	GET  /api/v1/snapshot        latest snapshot
//	GET  /api/v1/sensors         sensor catalog with current values
//	GET  /api/v1/sensors/{key}   one sensor
//	POST /api/v1/poll            poll now, throttled
//	GET  /api/v1/polls           poll run history
//	GET  /api/v1/snapshots       stored snapshot history
//	GET  /api/v1/auth            token status
//	GET  /oauth/authorize        redirect to eBay consent
//	GET  /oauth/callback         finish the authorization-code flow
package handlers

// StatusResponse is the /healthz body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
