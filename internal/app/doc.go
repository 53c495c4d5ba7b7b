// Package app wires application dependencies for the CLI.
//
// It builds the credential store, the API client, the session manager and
// the dashboard and import services from Config, exposing them via the Wire
// struct for commands to use.
package app
