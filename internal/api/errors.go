package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"nexus/internal/domain"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// FieldError is one entry of a FastAPI validation detail list.
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type,omitempty"`
}

// Field returns the dotted location without the request-part prefix
// ("body", "query", "path").
func (f FieldError) Field() string {
	parts := make([]string, 0, len(f.Loc))
	for i, p := range f.Loc {
		s := fmt.Sprint(p)
		if i == 0 && (s == "body" || s == "query" || s == "path") {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ".")
}

func (f FieldError) String() string {
	if field := f.Field(); field != "" {
		return field + ": " + f.Msg
	}
	return f.Msg
}

// ResponseError is a non-2xx answer from the backend.
type ResponseError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
	Fields     []FieldError
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("api %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if m := e.Messages(); len(m) > 0 {
		msg += ": " + strings.Join(m, "; ")
	}
	return msg
}

// HTTPStatus returns the response status code.
func (e *ResponseError) HTTPStatus() int { return e.StatusCode }

// Messages returns the human-readable problems reported by the backend.
func (e *ResponseError) Messages() []string {
	if len(e.Fields) > 0 {
		out := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			out = append(out, f.String())
		}
		return out
	}
	if e.Detail != "" {
		return []string{e.Detail}
	}
	return nil
}

// Is reports a 401 as domain.ErrSessionExpired.
func (e *ResponseError) Is(target error) bool {
	return target == domain.ErrSessionExpired && e.StatusCode == http.StatusUnauthorized
}

// readResponseError decodes the FastAPI error body, {"detail": "..."} or
// {"detail": [{"loc": [...], "msg": "..."}]}, falling back to the raw text.
func readResponseError(method, path string, resp *http.Response) *ResponseError {
	rerr := &ResponseError{Method: method, Path: path, StatusCode: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(body) == 0 {
		return rerr
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		rerr.Detail = strings.TrimSpace(string(body))
		return rerr
	}
	if err := json.Unmarshal(payload.Detail, &rerr.Detail); err == nil {
		return rerr
	}
	if err := json.Unmarshal(payload.Detail, &rerr.Fields); err == nil {
		return rerr
	}
	rerr.Detail = string(payload.Detail)
	return rerr
}
