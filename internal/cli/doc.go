// Package cli implements the command-line interface for teetime-scanner.
//
// The cli package provides the Cobra-based CLI: "serve" runs the HTTP API,
// "scan" runs a one-off scan and prints the results (text/JSON, sorted by time
// or price), and "courses" manages the registered course list. It wires
// configuration, storage, adapters, the scan service and the notifier together.
package cli
