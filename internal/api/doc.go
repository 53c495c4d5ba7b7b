// Package api provides the HTTP client for the finance backend.
//
// Every request goes to <BaseURL>/api/v1 with a JSON content type. Two
// interceptors run around each call:
//   - before sending, the persisted bearer token (if any) is attached
//   - after a 401, persisted credentials are cleared and the registered
//     session-expired handler runs once, then the error is returned
//
// Non-2xx statuses come back as *ResponseError carrying the backend's
// detail message. Transport failures are wrapped as domain network errors.
// Nothing is retried.
package api
