package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/logandonley/fontlist/internal/config"
	"github.com/logandonley/fontlist/internal/geometry"
	"github.com/logandonley/fontlist/internal/gui"
	"github.com/logandonley/fontlist/internal/logging"
	"github.com/logandonley/fontlist/internal/platform"
	"github.com/logandonley/fontlist/internal/shell"
	"github.com/logandonley/fontlist/internal/tui"
	"github.com/logandonley/fontlist/pkg/fm"
)

// Set up by the root command's PersistentPreRunE. The logger travels on
// the command's context.
var (
	cfg      *config.Config
	database *fm.Database
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fontlist",
	Short: "fontlist shows the font families installed on this system",
	Long: `A small font browser for Linux and macOS.

Running fontlist without a subcommand opens a window listing every installed
font family. Press "click me" to (re)build the list. The window's size and
position are remembered between runs.

Examples:
  # Open the window
  fontlist

  # Browse fonts in the terminal
  fontlist tui

  # Print the catalog
  fontlist list --ids`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		runtime := newRuntime(ctx)
		window := gui.New(ctx, runtime, logging.WithComponent(*logging.FromContext(ctx), "gui"))

		stopWatch, err := watchFonts(ctx, func() { window.Notify(shell.FontsChanged{}) })
		if err != nil {
			return err
		}
		defer stopWatch()

		stopClose := shell.CloseOnDone(ctx, window.Close)
		defer stopClose()

		window.ShowAndRun()
		return nil
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse installed fonts in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		program := tui.NewProgram(cmd.Context(), newRuntime(cmd.Context()))

		stopWatch, err := watchFonts(cmd.Context(), func() { tui.Notify(program, shell.FontsChanged{}) })
		if err != nil {
			return err
		}
		defer stopWatch()

		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running terminal ui: %w", err)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print installed font families",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := fm.NewCatalog(database)
		if err := catalog.Rebuild(cmd.Context()); err != nil {
			if errors.Is(err, fm.ErrCatalogUnavailable) {
				return fmt.Errorf("catalog unavailable: %w", err)
			}
			return fmt.Errorf("listing fonts: %w", err)
		}

		entries := catalog.Entries()
		if len(entries) == 0 {
			fmt.Println("No fonts found")
			return nil
		}

		showIDs, _ := cmd.Flags().GetBool("ids")
		fmt.Println("Installed font families:")
		for _, entry := range entries {
			if showIDs {
				fmt.Printf("  - %s (%s)\n", entry.Name, entry.ID)
			} else {
				fmt.Printf("  - %s\n", entry.Name)
			}
		}
		fmt.Printf("\n%d families from %d faces\n", len(entries), database.Len())
		return nil
	},
}

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Show or reset the saved window geometry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reset, _ := cmd.Flags().GetBool("reset"); reset {
			if err := geometry.Reset(cfg.GeometryFile); err != nil {
				return fmt.Errorf("resetting geometry: %w", err)
			}
			logging.FromContext(cmd.Context()).Info().Str("path", cfg.GeometryFile).Msg("window geometry reset")
		}

		placement := geometry.Load(cfg.GeometryFile)
		fmt.Printf("File:      %s\n", cfg.GeometryFile)
		fmt.Printf("Placement: %s\n", placement)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(geometryCmd)

	rootCmd.PersistentFlags().String("config", "", "Read configuration from this file")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level")
	listCmd.Flags().Bool("ids", false, "Show the face each family was taken from")
	geometryCmd.Flags().Bool("reset", false, "Overwrite the saved geometry with the defaults")
}

func setup(cmd *cobra.Command, args []string) error {
	platformMgr := platform.New()

	configDir, err := platformMgr.ConfigDir()
	if err != nil {
		return fmt.Errorf("locating config directory: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	loader := config.NewLoader(configDir, configPath)
	cfg, err = loader.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	log, err := logging.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	cmd.SetContext(logging.WithContext(cmd.Context(), log))

	dirs, err := fontDirs(platformMgr)
	if err != nil {
		return err
	}
	database = fm.NewDatabase(dirs,
		fm.WithLogger(logging.WithComponent(log, "fontdb")),
		fm.WithConcurrency(cfg.ScanConcurrency),
	)

	log.Debug().
		Str("config_dir", configDir).
		Str("config_file", loader.Used()).
		Strs("font_dirs", dirs).
		Msg("fontlist configured")
	return nil
}

func fontDirs(platformMgr platform.Manager) ([]string, error) {
	dirs := append([]string(nil), cfg.FontDirs...)
	if !cfg.IncludeSystemDirs {
		return dirs, nil
	}

	paths, err := platformMgr.GetFontPaths()
	if err != nil {
		return nil, fmt.Errorf("getting font paths: %w", err)
	}
	return append(dirs, paths.All()...), nil
}

func newRuntime(ctx context.Context) *shell.Runtime {
	return shell.NewRuntime(
		geometry.Load(cfg.GeometryFile),
		fm.NewCatalog(database),
		shell.FileGeometryWriter(cfg.GeometryFile),
		logging.WithComponent(*logging.FromContext(ctx), "shell"),
	)
}

// watchFonts invalidates the database and calls notify whenever a font
// directory changes. It is a no-op when watching is disabled.
func watchFonts(ctx context.Context, notify func()) (func(), error) {
	if !cfg.Watch {
		return func() {}, nil
	}

	watcher, err := fm.NewWatcher(database.Dirs(), func() {
		database.Invalidate()
		notify()
	}, fm.WithWatchLogger(logging.WithComponent(*logging.FromContext(ctx), "watcher")))
	if err != nil {
		return nil, fmt.Errorf("watching font directories: %w", err)
	}

	watcher.Start(ctx)
	return func() { _ = watcher.Close() }, nil
}
