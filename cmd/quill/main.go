package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/api"
	"github.com/quillhq/quill/internal/cmd"
	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "quill",
		Short: "Quill - API spec editor",
		Long:  "Quill: sketch an API as a living outline of endpoints and notes, synced as you type.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd(baseURL))
	root.AddCommand(cmd.SignupCmd(baseURL))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")

	// Local overrides, e.g. QUILL_BASE_URL against a dev server
	_ = godotenv.Load()
}

// baseURL resolves the server address: env var first, then the saved
// config, then the default.
func baseURL() string {
	if url := os.Getenv("QUILL_BASE_URL"); url != "" {
		return url
	}
	if cfg, err := config.Load(); err == nil && cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return api.DefaultBaseURL
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("not logged in. run 'quill login' first.")
			return err
		}
		return err
	}

	log, closeLog := openLogger()
	defer closeLog()

	client := api.NewClient(baseURL(), cfg.Token).WithLogger(log)
	app := ui.NewApp(client, cfg.UserID).WithLogger(log)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// openLogger writes structured logs next to the config file, since stdout
// belongs to the TUI.
func openLogger() (zerolog.Logger, func()) {
	path := filepath.Join(filepath.Dir(config.Path()), "quill.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return zerolog.Nop(), func() {}
	}
	return zerolog.New(f).With().Timestamp().Logger(), func() { _ = f.Close() }
}
