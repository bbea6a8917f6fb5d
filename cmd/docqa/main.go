// Command docqa is the document question-answering client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/backend"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/services"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetServiceFactory(buildServices)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// buildServices wires the session, its stores and the backend client.
func buildServices(opts cli.Options) (*cli.Services, error) {
	var store driven.SettingsStore
	fileStore, err := file.NewSettingsStore(opts.ConfigDir)
	if err != nil {
		logger.Warn("Settings will not be saved: %v", err)
		store = memory.NewSettingsStore()
	} else {
		warnUnknownKeys(fileStore)
		store = fileStore
	}

	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if opts.APIURL != "" {
		settings.BackendURL = strings.TrimRight(opts.APIURL, "/")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", store.Path(), err)
	}

	logger.Debug("Backend: %s (topK=%d, authenticated=%t)",
		settings.BackendURL, settings.TopK, settings.Authenticated())

	client := backend.New(backend.ConfigFromSettings(settings))

	metrics := services.NewMetricsAggregator()
	session := services.NewSession(
		memory.NewDocumentRegistry(),
		memory.NewConversationLog(),
		metrics,
	)

	return &cli.Services{
		Query:       services.NewQueryPipeline(session, client, settings.TopK),
		Upload:      services.NewUploadOrchestrator(session, client),
		Document:    services.NewDocumentService(session, client),
		Session:     session,
		Credentials: services.NewCredentialsService(client, store),
		Settings:    services.NewSettingsService(store),
	}, nil
}

// warnUnknownKeys logs settings-file keys docqa does not read, usually typos.
func warnUnknownKeys(store *file.SettingsStore) {
	_, keys, err := store.Values()
	if err != nil {
		return
	}
	known := make(map[string]struct{}, len(domain.SettingKeys))
	for _, k := range domain.SettingKeys {
		known[k] = struct{}{}
	}
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			logger.Warn("Ignoring unknown setting %q in %s", k, store.Path())
		}
	}
}
