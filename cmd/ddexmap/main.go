package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/musictechlab/ddexmap"
	"github.com/musictechlab/ddexmap/reconcile"
	"github.com/musictechlab/ddexmap/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional .env file supplying DDEXMAP_DB.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Crawl settings. Set before calling Run().
	Config ddexmap.Config

	// ProbeRate is the per-domain liveness probe rate in requests per
	// second. Zero disables pacing.
	ProbeRate float64

	// SQLite database for the run audit trail. Only opened when --db is set.
	DB *sqlite.DB

	// Services for end-to-end testing. Nil values are replaced by the
	// HTTP and file implementations.
	Fetcher  ddexmap.Fetcher
	Checker  ddexmap.LivenessChecker
	MapStore ddexmap.MapStore

	// Sleep overrides the pause between crawled pages.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Config:    ddexmap.DefaultConfig(),
		ProbeRate: reconcile.DefaultProbeRate,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ddexmap"),
		kong.Description("Crawl the DDEX documentation sites and refresh a tag to URL map."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	for _, arg := range args {
		if arg == "help" || arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	defer m.Close()

	return m.update(ctx, cli, stdout, stderr)
}
