// Package cli provides the docqa command line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options carries the persistent flags needed to build the services.
type Options struct {
	// ConfigDir overrides the settings directory (default ~/.docqa).
	ConfigDir string

	// APIURL overrides backend.url for this invocation.
	APIURL string
}

// Services bundles the driving ports used by the commands.
type Services struct {
	Query       driving.QueryPipeline
	Upload      driving.UploadOrchestrator
	Document    driving.DocumentService
	Session     driving.SessionService
	Credentials driving.CredentialsService
	Settings    driving.SettingsService
}

// ServiceFactory builds the services once flags have been parsed.
type ServiceFactory func(opts Options) (*Services, error)

// Services used by commands.
var (
	queryPipeline      driving.QueryPipeline
	uploadOrchestrator driving.UploadOrchestrator
	documentService    driving.DocumentService
	sessionService     driving.SessionService
	credentialsService driving.CredentialsService
	settingsService    driving.SettingsService

	serviceFactory ServiceFactory
)

// Persistent flags.
var (
	verbose   bool
	configDir string
	apiURL    string
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Ask questions about your documents",
	Long: `docqa uploads text documents to a document QA server and answers
questions about them.

Upload .txt files, then ask questions from the command line, the interactive
chat, or any MCP-compatible assistant.

Examples:
  docqa login
  docqa upload notes/ report.txt
  docqa ask "What did the Q3 report conclude?"
  docqa chat`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Settings directory (default ~/.docqa)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides backend.url)")
}

// SetServiceFactory registers the function that wires the services.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// SetServices sets the services used by commands directly.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	queryPipeline = s.Query
	uploadOrchestrator = s.Upload
	documentService = s.Document
	sessionService = s.Session
	credentialsService = s.Credentials
	settingsService = s.Settings
}

// Execute runs the root command. Long-running commands stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if serviceFactory == nil {
		return nil
	}
	services, err := serviceFactory(Options{
		ConfigDir: configDir,
		APIURL:    apiURL,
	})
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

// Errors returned when a command runs without its service.
var (
	errNoQueryPipeline      = errors.New("query pipeline not configured")
	errNoUploadOrchestrator = errors.New("upload orchestrator not configured")
	errNoDocumentService    = errors.New("document service not configured")
	errNoSessionService     = errors.New("session service not configured")
	errNoCredentialsService = errors.New("credentials service not configured")
	errNoSettingsService    = errors.New("settings service not configured")
)
