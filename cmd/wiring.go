package cmd

import (
	"context"
	"fmt"

	"streambot/config"
	"streambot/database"
	"streambot/domain/interfaces"
	"streambot/infrastructure"
	"streambot/repository"

	log "github.com/sirupsen/logrus"
)

// ledgerStores are the three stores behind the points ledger. db is only
// set for the postgres backend.
type ledgerStores struct {
	links    interfaces.AccountLinkRepository
	profiles interfaces.ProfilePointsRepository
	local    interfaces.LocalPointsRepository
	db       *database.DB
}

func openLedgerStores(ctx context.Context, cfg *config.Config) (*ledgerStores, error) {
	links, err := repository.NewLinkRepository(cfg.DiscordLinksPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open account links: %w", err)
	}

	stores := &ledgerStores{
		links:    links,
		profiles: repository.NewProfilePointsRepository(cfg.UsersJSONPath),
	}

	if !cfg.UsesPostgresLedger() {
		local, err := repository.NewLocalPointsRepository(cfg.DiscordUsersPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local points: %w", err)
		}
		stores.local = local
		log.WithField("path", cfg.DiscordUsersPath).Info("Using JSON file for local points")
		return stores, nil
	}

	databaseURL := cfg.GetDatabaseURL()
	log.Info("Running database migrations...")
	if err := database.RunMigrationsWithURL(databaseURL); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	stores.db = db
	stores.local = repository.NewPostgresPointsRepository(db)
	log.Info("Using Postgres for local points")
	return stores, nil
}

func (s *ledgerStores) Close() {
	if s.db != nil {
		log.Info("Closing database connection...")
		s.db.Close()
	}
}

// eventBackbone is the in-process bus, optionally mirrored to NATS JetStream
type eventBackbone struct {
	bus        *infrastructure.EventBus
	publisher  interfaces.EventPublisher
	subscriber interfaces.EventSubscriber
	nats       *infrastructure.NATSClient
}

func openEventBackbone(ctx context.Context, cfg *config.Config) (*eventBackbone, error) {
	bus := infrastructure.NewEventBus()
	backbone := &eventBackbone{bus: bus, publisher: bus, subscriber: bus}

	if cfg.NATSServers == "" {
		log.Info("NATS_SERVERS not set, events stay in process")
		return backbone, nil
	}

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureStream(infrastructure.StreamName, mapper.GetAllSubjects()); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ensure event stream: %w", err)
	}

	publisher := infrastructure.NewNATSEventPublisher(bus, client, mapper)
	backbone.publisher = publisher
	backbone.subscriber = publisher
	backbone.nats = client
	return backbone, nil
}

func (b *eventBackbone) Close() {
	if b.nats == nil {
		return
	}
	log.Info("Closing NATS connection...")
	if err := b.nats.Close(); err != nil {
		log.WithError(err).Error("Error closing NATS connection")
	}
}
