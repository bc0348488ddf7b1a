// Package cli implements the command-line surface of the account switcher.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bd2switch/internal/factory"
	"bd2switch/internal/i18n"
	"bd2switch/internal/services/accountinfo"
	redisstore "bd2switch/internal/store/redis"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "bd2switch",
		Short: "Save, switch and restore BrownDust II login sessions",
		Long: `bd2switch saves the login session the BrownDust II client keeps in the
Windows registry, and restores it later, so several accounts can share one
machine without re-entering credentials.

Saved sessions live in clear text in accounts.json next to the executable.
Do not share that file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			fcfg := factory.Config{
				DataPath:  cfg.DataPath,
				StoreType: cfg.StoreType,
				Logger:    logger,
			}
			if cfg.StoreType == factory.StoreTypeRedis {
				redisCfg := redisstore.DefaultConfig()
				if cfg.RedisURL != "" {
					redisCfg.URL = cfg.RedisURL
				}
				fcfg.RedisConfig = &redisCfg
			}

			a, err := factory.New(fcfg)
			if err != nil {
				return err
			}
			app = a

			if app.StoreWarning != nil {
				fmt.Fprintln(cmd.ErrOrStderr(),
					i18n.T(i18n.Parse(cfg.Lang), "data_corrupted", app.StoreWarning))
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.DataPath, "data", cfg.DataPath, "Path to accounts.json (env: BD2SWITCH_DATA)")
	rootCmd.PersistentFlags().StringVar(&cfg.StoreType, "store", cfg.StoreType, "Account store backend: file, redis (env: BD2SWITCH_STORE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis store (env: BD2SWITCH_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Lang, "lang", cfg.Lang, "Output language override: en, zh")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Yes, "yes", "y", cfg.Yes, "Skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCurrentCmd())
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newOverwriteCmd())
	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newRenameCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newLangCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// outputLang resolves the effective output language: the --lang override,
// else the persisted preference, else English.
func outputLang(ctx context.Context) i18n.Lang {
	if cfg.Lang != "" {
		return i18n.Parse(cfg.Lang)
	}
	lang, err := app.Switcher.Language(ctx)
	if err != nil {
		return i18n.EN
	}
	return lang
}

// confirm asks the user before a destructive action; --yes skips the prompt.
func confirm(cmd *cobra.Command, message string) bool {
	if cfg.Yes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", message)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}

// displayLine renders one account for display: name, platform, country,
// registration date and token age, pipe-separated.
func displayLine(name string, info accountinfo.Info, lang i18n.Lang) string {
	parts := []string{name}
	if info.Platform != "" {
		parts = append(parts, info.Platform)
	}
	if info.RegNation != "" {
		parts = append(parts, info.RegNation)
	}
	if info.CreateDate != "" {
		parts = append(parts, i18n.T(lang, "registered")+": "+info.CreateDate)
	}
	if info.TokenAge != "" {
		parts = append(parts, i18n.T(lang, "token")+": "+info.TokenAge)
	}
	return strings.Join(parts, "  |  ")
}
