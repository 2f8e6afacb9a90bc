// Package cli implements the interactive Leish client.
//
// App wires configuration, the on-device store, the API client, the auth
// service, and the session/settings stores, then drives a small REPL:
//
//	Not signed in:  login, signup, status, theme, language, exit
//	Signed in:      whoami, status, theme, language, pref, get, logout, exit
//
// Command handlers print their own messages; the REPL loop only dispatches.
package cli
