// Package config loads application configuration from environment variables
// and an optional .env file.
//
// Defaults come from `default` struct tags discovered by reflection, and any
// value can be overridden through the environment using upper-cased keys with
// underscores (SERVER_PORT -> server.port). The compile/verify/diff commands
// only touch the log section; serve and the bucket-backed compile paths pull
// in the server and storage sections.
package config
