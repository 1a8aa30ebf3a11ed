package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/server"
)

var (
	servePort         int
	serveSettingsPath string
	serveProvider     string
	serveVerbose      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for editing the resume document, previewing templates and running AI optimization.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveSettingsPath, "settings", defaultSettingsPath(), "Path to the settings JSON file (empty disables persistence)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", string(llm.ProviderOpenAI), "Model provider: openai or gemini")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := newLogger(serveVerbose)

	provider := llm.Provider(serveProvider)
	switch provider {
	case llm.ProviderOpenAI, llm.ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q", serveProvider)
	}

	srv, err := server.New(server.Config{
		Port:         servePort,
		SettingsPath: serveSettingsPath,
		Provider:     provider,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "settings.json"
	}
	return home + "/.resume-studio/settings.json"
}
