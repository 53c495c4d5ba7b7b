// Package session owns the client-side authentication lifecycle.
//
// A Manager starts Initializing, moves to Authenticated or Unauthenticated
// once persisted credentials were read, and is updated by login, register,
// logout and backend-reported expiry. Route guards decide from a state
// snapshot whether a view may render.
package session
