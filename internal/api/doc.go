// Package api exposes the solver over HTTP. Handlers decode and validate JSON
// requests, call into the suggestion service and translate its errors into
// sanitized responses that carry the request's trace ID.
package api
