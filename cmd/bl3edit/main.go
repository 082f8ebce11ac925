package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studiowebux/bl3edit/internal/codec"
	"github.com/studiowebux/bl3edit/internal/config"
	"github.com/studiowebux/bl3edit/internal/history"
	"github.com/studiowebux/bl3edit/internal/keybinds"
	"github.com/studiowebux/bl3edit/internal/logging"
	"github.com/studiowebux/bl3edit/internal/persist"
	"github.com/studiowebux/bl3edit/internal/registry"
	"github.com/studiowebux/bl3edit/internal/tui"
	bl3version "github.com/studiowebux/bl3edit/internal/version"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bl3edit",
	Short: "Borderlands 3 save and profile editor",
	Long: `bl3edit edits Borderlands 3 save and profile files in an interactive TUI.

Every commit backs up the file it replaces. Settings are stored in the
config directory together with the log, the commit history and the
optional keybinds.jsonc override.

Examples:
  bl3edit                          # Start the editor
  bl3edit scan ~/saves             # List the files the editor would load
  bl3edit history 1.sav            # Show past commits of 1.sav`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Parse every save and profile in a directory",
	Long: `Parse every save and profile in a directory and list them in the order
the editor shows them. Without an argument the configured saves directory
is scanned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd, args)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [file]",
	Short: "Show committed writes and their backups",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory(cmd, args)
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Validate the keybinds.jsonc override",
	Long: `Apply keybinds.jsonc over the default bindings and report unknown
contexts and actions, screens left without a required key, and keys that
shadow global bindings. With --defaults the default bindings are printed in
the keybinds.jsonc format instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeybinds(cmd)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer release is published",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd)
	},
}

// Global flags
var (
	flagConfigDir string
	flagLogLevel  string
)

// Flags for history
var (
	historyLimit int
)

// Flags for keybinds
var (
	keybindsDefaults bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Config directory (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug/info/warn/error)")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	keybindsCmd.Flags().BoolVar(&keybindsDefaults, "defaults", false, "Print the default bindings as keybinds.jsonc")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads the config and starts file logging
func loadConfig() (*config.Config, error) {
	dir := flagConfigDir
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logging.Init(logging.Config{Level: flagLogLevel, Format: "json", OutputPath: cfg.LogPath()}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runTUI starts the interactive editor
func runTUI(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logging.Sync()
	logger := logging.L()

	binds, err := keybinds.LoadOrDefault(cfg.KeybindsPath())
	if err != nil {
		logger.Warn("keybinds override not fully applied", zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	bin := codec.NewBinary()
	opts := []persist.Option{persist.WithLogger(logger)}

	var queries tui.QueryStore
	ledger, err := history.NewManager(cfg.DatabasePath())
	if err != nil {
		logger.Warn("commit history disabled", zap.Error(err))
	} else {
		defer ledger.Close()
		opts = append(opts, persist.WithRecorder(ledger))
		queries = ledger
	}

	logger.Info("starting", zap.String("version", version), zap.String("config_dir", cfg.ConfigDir))
	return tui.Run(tui.Options{
		Config:   cfg,
		Keybinds: binds,
		Pipeline: persist.New(bin, opts...),
		Scanner:  registry.NewScanner(bin, registry.Options{}),
		Queries:  queries,
		Logger:   logger,
		Version:  version,
	})
}

// runScan parses a directory with a progress bar
func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logging.Sync()

	dir := cfg.SavesDir
	if len(args) > 0 {
		if dir, err = config.ExpandPath(args[0]); err != nil {
			return err
		}
	}
	if dir == "" {
		return fmt.Errorf("no saves directory configured, pass one as an argument")
	}

	scanner := registry.NewScanner(codec.NewBinary(), registry.Options{})
	total, err := scanner.Count(dir)
	if err != nil {
		return err
	}

	bar := pb.New(total).SetWriter(cmd.ErrOrStderr()).SetTemplate(pb.Simple)
	bar.Start()
	scanner = registry.NewScanner(codec.NewBinary(), registry.Options{
		OnParsed: func(string, int, int) { bar.Increment() },
	})
	result, err := scanner.Load(context.Background(), dir)
	bar.Finish()
	if err != nil {
		return err
	}

	r := registry.New()
	r.Replace(result.Files)

	out := cmd.OutOrStdout()
	for _, f := range r.Files() {
		fmt.Fprintln(out, f.Label())
	}
	for _, s := range result.Skipped {
		logging.Warn("skipped unreadable file", zap.String("file", s.Name), zap.Error(s.Err))
		fmt.Fprintf(out, "skipped %s: %v\n", s.Name, s.Err)
	}
	fmt.Fprintf(out, "%d file(s) loaded, %d skipped\n", r.Len(), len(result.Skipped))
	return nil
}

// runHistory prints the commit ledger
func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logging.Sync()

	ledger, err := history.NewManager(cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer ledger.Close()

	var entries []history.Entry
	if len(args) > 0 {
		entries, err = ledger.ListForFile(args[0])
	} else {
		entries, err = ledger.List(historyLimit)
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No commits recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tFILE\tKIND\tSIZE\tBACKUPS")
	for _, e := range entries {
		backups := strings.Join(e.Backups, ", ")
		if e.GuardianInjection {
			backups += " (guardian rank copied)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.FileName, e.Kind, e.Size, backups)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(args) > 0 {
		return nil
	}

	total, err := ledger.GetCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d commit(s) shown\n", len(entries), total)
	return nil
}

// runKeybinds reports problems in the keybinds override
func runKeybinds(cmd *cobra.Command) error {
	if keybindsDefaults {
		data, err := json.MarshalIndent(keybinds.ExportDefaults(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logging.Sync()

	result, err := keybinds.NewValidator().ValidateFile(cfg.KeybindsPath())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(result.String(), "\n"))
	if result.HasErrors() {
		return fmt.Errorf("%s has errors", cfg.KeybindsPath())
	}
	return nil
}

// runUpdate reports the latest release without downloading it
func runUpdate(cmd *cobra.Command) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	release, newer, err := bl3version.CheckForUpdate(ctx, version)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !newer {
		fmt.Fprintf(cmd.OutOrStdout(), "bl3edit %s is up to date\n", version)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Version %s is available: %s\n", release.Version(), release.HTMLURL)
	return nil
}
