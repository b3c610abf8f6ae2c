// Package server holds the HTTP server configuration used by serve mode.
//
// The Config struct defines the listen port, the optional API key and the
// timeout applied to the reconciliation pass behind each request.
package server
