package main

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Map     string `short:"m" default:"assets/ddex-map.json" help:"Tag map to update"`
	Out     string `short:"o" default:"assets/ddex-map.updated.json" help:"Where to write the updated map"`
	DB      string `name:"db" env:"DDEXMAP_DB" help:"SQLite database for the run audit trail (disabled when empty)"`
	Verbose bool   `short:"v" help:"Log every fetch and liveness check to stderr"`
}
