package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meigma/rpa"
)

// app carries configuration shared by every subcommand of one command tree.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

// Execute runs the rpa command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds a fresh rpa command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "rpa",
		Short:         "RPAK archive tool",
		Long:          "Pack directories into single-file RPAK archives, optionally obfuscating the index with a key, and unpack them again.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default: ~/.config/rpa/config.yaml)")
	root.PersistentFlags().String("key", "", "obfuscation key, decimal or 0x-prefixed hex (empty: no key)")
	root.PersistentFlags().Int("concurrency", 0, "parallel file operations (0: GOMAXPROCS)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	a.v.BindPFlag("key", root.PersistentFlags().Lookup("key"))
	a.v.BindPFlag("concurrency", root.PersistentFlags().Lookup("concurrency"))
	a.v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(
		newPackCmd(a),
		newUnpackCmd(a),
		newListCmd(a),
		newInspectCmd(a),
	)
	return root
}

// init loads configuration and sets up logging before any subcommand runs.
func (a *app) init(cmd *cobra.Command) error {
	explicit := cmd.Flag("config").Value.String()
	if explicit != "" {
		a.v.SetConfigFile(explicit)
	} else {
		a.v.AddConfigPath(configDir())
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("RPA")
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	level := slog.LevelInfo
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// key returns the configured obfuscation key.
func (a *app) key() (rpa.Key, error) {
	return parseKey(a.v.GetString("key"))
}

// archive returns a codec wired to the command's logger.
func (a *app) archive() *rpa.Archive {
	return rpa.New(rpa.WithLogger(a.logger))
}

// parseKey parses a decimal or 0x-prefixed hex key. Empty means no key.
func parseKey(s string) (rpa.Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return rpa.NoKey, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return rpa.NoKey, fmt.Errorf("invalid key %q: %w", s, err)
	}
	return rpa.NewKey(v), nil
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rpa")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "rpa")
	}
	return ".rpa"
}
