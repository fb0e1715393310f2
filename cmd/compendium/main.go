// Package main is the entry point for the compendium command
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/steel-compendium/cmd/compendium/client"
	"github.com/KirkDiggler/steel-compendium/internal/config"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/parser"
)

var (
	cfg *config.Env

	logLevel       string
	vocabularyFile string
)

var rootCmd = &cobra.Command{
	Use:   "compendium",
	Short: "Draw Steel rules compendium",
	Long: `Compendium parses Draw Steel rules markdown into structured ability and
feature records, stores them and serves them over gRPC.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&vocabularyFile, "vocabulary", "", "YAML vocabulary overlay")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

// setup loads the environment, applies flag overrides and installs the logger
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.LogLevel = strings.ToLower(logLevel)
	}
	if flags.Changed("vocabulary") {
		loaded.VocabularyFile = vocabularyFile
	}
	if flags.Lookup("store") != nil && flags.Changed("store") {
		loaded.Store = storeFlag
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		loaded.Workers = workersFlag
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		loaded.GRPCPort = portFlag
	}
	if flags.Lookup("http-port") != nil && flags.Changed("http-port") {
		loaded.HTTPPort = httpPortFlag
	}

	if err := loaded.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}
	cfg = loaded

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	return nil
}

// newParser builds a parser with the configured vocabulary
func newParser() (*parser.Parser, error) {
	vocab, err := config.LoadVocabulary(cfg.VocabularyFile)
	if err != nil {
		return nil, err
	}
	return parser.New(&parser.Config{Vocabulary: vocab})
}
