// Package api implements the HTTP transport layer: request decoding and
// validation, error-to-status mapping with sanitized messages, and thin
// handlers delegating to the service layer.
package api
