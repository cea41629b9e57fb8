// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, client services, and the background session
// refresh job into a single process lifecycle.
package client
