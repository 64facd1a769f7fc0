package cmd

import (
	"context"
	"fmt"
	"time"

	"streambot/application"
	"streambot/bot"
	"streambot/bot/features/ssp"
	"streambot/config"
	"streambot/domain/entities"
	"streambot/domain/services"
	"streambot/infrastructure"
	"streambot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	battleReportMaxElapsed = 30 * time.Second
	shutdownTimeout        = 10 * time.Second
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and serve duels until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), cfg)
		},
	}
}

// duelSettings converts the SSP_* configuration into manager settings
func duelSettings(cfg *config.Config) services.DuelSettings {
	return services.DuelSettings{
		ConfigureTimeout: cfg.SSPConfigureTimeout,
		AcceptTimeout:    cfg.SSPAcceptTimeout,
		WeaponTimeout:    cfg.SSPWeaponTimeout,
		Tiers:            entities.WagerTiers{Step: cfg.SSPWagerStep, Max: cfg.SSPWagerMax},
	}
}

// Run initializes and starts the application, blocking until ctx is cancelled
func Run(ctx context.Context, cfg *config.Config) error {
	log.WithField("environment", cfg.Environment).Info("Starting streambot...")

	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	// Ledger stores
	stores, err := openLedgerStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	// Event bus
	log.Info("Initializing event bus...")
	backbone, err := openEventBackbone(ctx, cfg)
	if err != nil {
		return err
	}
	defer backbone.Close()

	// Metrics
	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Error shutting down metrics provider")
		}
	}()

	// Visualizer API
	visualizer := infrastructure.NewVisualizerClient(cfg.APIURL, cfg.APIKey, cfg.APITimeout)
	modes := infrastructure.NewModeDetector(visualizer, cfg.ModeCheckInterval)
	reporter := infrastructure.NewVisualizerBattleReporter(visualizer, modes, battleReportMaxElapsed)

	// Points ledger
	ledger := services.NewPointsLedger(stores.links, stores.profiles, stores.local, backbone.publisher)

	// Application event handlers
	battleLog := application.NewBattleLogHandler(ledger, reporter)
	metricsHandler := application.NewDuelMetricsHandler(metrics)
	if err := application.RegisterApplicationSubscriptions(backbone.subscriber, battleLog, metricsHandler); err != nil {
		return fmt.Errorf("failed to register event subscriptions: %w", err)
	}
	defer battleLog.Wait()

	// Discord session and duel manager
	session, err := bot.NewSession(cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	presenter := ssp.NewPresenter(session, cfg.BattleChannelID, cfg.SSPAcceptTimeout)
	duels := services.NewDuelManager(ledger, presenter, services.NewWallClockScheduler(), backbone.publisher, duelSettings(cfg))
	defer duels.Shutdown()

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:         cfg.DiscordToken,
		GuildID:       cfg.GuildID,
		ApplicationID: cfg.DiscordClientID,
	}, session, duels, ledger)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	defer func() {
		log.Info("Closing Discord connection...")
		if err := discordBot.Close(); err != nil {
			log.WithError(err).Error("Error closing Discord bot")
		}
	}()

	// Debug API
	if cfg.DebugPort > 0 {
		debugAPI := bot.NewDebugAPI(duels, ledger, modes)
		if err := debugAPI.Start(cfg.DebugPort); err != nil {
			return fmt.Errorf("failed to start debug API: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := debugAPI.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Error("Error shutting down debug API")
			}
		}()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return modes.Run(gctx)
	})

	log.Info("Bot is running, press Ctrl+C to stop")
	err = g.Wait()

	// Deferred cleanup runs in reverse: debug API, Discord, duels,
	// battle log, metrics, NATS, database
	log.Info("Shutting down...")
	return err
}
