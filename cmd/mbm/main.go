package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/mbm/internal/browser"
	"github.com/nikbrunner/mbm/internal/config"
	"github.com/nikbrunner/mbm/internal/logger"
	"github.com/nikbrunner/mbm/internal/model"
	"github.com/nikbrunner/mbm/internal/storage"
	"github.com/nikbrunner/mbm/internal/tui"
)

var (
	cfgFile     string
	logLevel    string
	pageTimeout = 15

	cfg      *config.Config
	log      zerolog.Logger
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:   "mbm",
	Short: "mbm - mobile-style bookmark browser for the terminal",
	Long: `mbm is a small terminal browser with a mobile bookmarks manager.

Open a URL, save it as a bookmark, and organize bookmarks in folders under
the mobile root. Without a subcommand mbm starts the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			_ = closeLog()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default ~/.config/mbm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level override (debug, info, warn, error)")
	rootCmd.Flags().IntVar(&pageTimeout, "page-timeout", pageTimeout,
		"page load timeout in seconds")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig loads the config file and sets up logging.
func initConfig() error {
	path := cfgFile
	if path == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return fmt.Errorf("config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}
	cfg = loaded

	log, closeLog = logger.Setup(cfg.Logging)
	log.Debug().Str("config", path).Str("storage", cfg.Storage).Msg("config loaded")
	return nil
}

// openStore opens the configured storage and loads the store.
func openStore() (storage.Storage, *model.Store, error) {
	db, err := storage.Open(cfg.Storage, cfg.DataDir, log)
	if err != nil {
		return nil, nil, err
	}
	store, err := db.Load()
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("load bookmarks: %w", err)
	}
	return db, store, nil
}

// runTUI runs the full interactive TUI.
func runTUI() error {
	db, store, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	app := tui.NewApp(tui.AppParams{
		Store:            store,
		Storage:          db,
		Loader:           browser.NewHTTPLoader(secondsToDuration(pageTimeout), log),
		Sharer:           browser.ClipboardSharer{},
		Opener:           browser.OpenExternal,
		Logger:           log,
		SnackbarDuration: cfg.SnackbarDuration(),
	})

	log.Info().Int("bookmarks", len(store.Bookmarks)).Int("folders", len(store.Folders)).Msg("starting tui")
	p := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	finalApp := finalModel.(tui.App)
	if err := db.Save(finalApp.Store()); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}
