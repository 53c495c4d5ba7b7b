// Package mockapi is an in-memory stand-in for the finance backend, served
// with gin. It speaks the same /api/v1 contract as the real service: JSON
// bodies for register and login, query parameters for creates, bearer tokens
// signed with HS256, and FastAPI-style error bodies ({"detail": "..."} or a
// list of field errors on 422).
//
// State is lost on exit. RevokeTokens invalidates every issued token so that
// clients can be driven through session expiry.
package mockapi
