// Package cli implements the interactive terminal client for profilehub.
//
// The client talks to the backend over its JSON REST API, keeps the token
// pair in memory for the duration of the session, and exposes commands for
// account management and the public user directory.
package cli
