package server

// Config holds configuration for the lookup server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// Table is the compiled table served when no path is given on the CLI.
	Table string `mapstructure:"table" default:"romdat.dat"`
}
