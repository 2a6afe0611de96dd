// Package server holds configuration for the record lookup server.
//
// The server itself lives in the serve command; this package only defines the
// configuration section so core/config can bind it alongside the other
// partial configurations.
package server
