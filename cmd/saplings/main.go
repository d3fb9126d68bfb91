package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.hasen.dev/saplings"
	"go.hasen.dev/saplings/internal/backup"
	"go.hasen.dev/saplings/internal/config"
	"go.hasen.dev/saplings/internal/history"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "saplings",
	Short:        "Inspect and maintain saplings save files",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "saplings %s (%s), save format v%d\n", version, commit, saplings.FormatVersion)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv(config.EnvPath), "path to saplings.yaml")

	inspectCmd.Flags().BoolVar(&inspectSummary, "summary", false, "print counts only")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of saves to list")

	rootCmd.AddCommand(inspectCmd, verifyCmd, backupsCmd, restoreCmd, historyCmd, versionCmd)
}

// env is what every command needs: the loaded config and a logger.
type env struct {
	cfg config.Config
	log *slog.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return &env{cfg: cfg, log: log}, nil
}

// openStore builds a Store with backups and history wired in as configured.
// The returned func releases the history database.
func (e *env) openStore() (*saplings.Store, func(), error) {
	opts := []saplings.Option{
		saplings.WithCodec(e.cfg.Codec()),
		saplings.WithLogger(e.log),
	}
	if e.cfg.Backups.Enabled {
		opts = append(opts, saplings.WithArchiver(backup.New(e.cfg.BackupDir(), e.cfg.Backups.Keep)))
	}
	closeFn := func() {}
	if e.cfg.History.Enabled {
		j, err := history.Open(e.cfg.HistoryPath())
		if err != nil {
			return nil, nil, fmt.Errorf("open history: %w", err)
		}
		opts = append(opts, saplings.WithJournal(j))
		closeFn = func() {
			if err := j.Close(); err != nil {
				e.log.Warn("close history", "err", err)
			}
		}
	}
	return saplings.NewStore(e.cfg.SavePath(), opts...), closeFn, nil
}

func (e *env) savePathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return e.cfg.SavePath()
}
