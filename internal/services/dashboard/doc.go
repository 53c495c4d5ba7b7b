// Package dashboard loads the independent widgets of the overview screen
// concurrently.
package dashboard
