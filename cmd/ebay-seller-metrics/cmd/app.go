package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/ebay-seller-metrics/internal/config"
	"github.com/donaldgifford/ebay-seller-metrics/internal/ebay"
	"github.com/donaldgifford/ebay-seller-metrics/internal/notify"
	"github.com/donaldgifford/ebay-seller-metrics/internal/store"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/logger"
)

// app holds the components built from the service config.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	oauth   *ebay.OAuthClient
	state   *ebay.JWTStateCodec
	session *ebay.Session
}

func loadApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	scopes, err := cfg.Ebay.ResolvedScopes()
	if err != nil {
		return nil, err
	}

	state := ebay.NewJWTStateCodec([]byte(cfg.Ebay.StateSecret))
	oauth := ebay.NewOAuthClient(
		cfg.Ebay.Credentials(),
		ebay.WithScopes(scopes),
		ebay.WithStateCodec(state),
		ebay.WithHTTPClient(ebay.NewTracedClient(cfg.Ebay.Timeout)),
	)

	sessionOpts := []ebay.SessionOption{ebay.WithSessionLogger(log)}
	if cfg.Ebay.RefreshToken != "" {
		sessionOpts = append(sessionOpts, ebay.WithInitialToken(ebay.Token{
			"refresh_token": cfg.Ebay.RefreshToken,
		}))
	}

	return &app{
		cfg:     cfg,
		log:     log,
		oauth:   oauth,
		state:   state,
		session: ebay.NewSession(oauth, sessionOpts...),
	}, nil
}

func (a *app) collector() *ebay.Collector {
	return ebay.NewCollector(
		ebay.WithCollectorHTTPClient(ebay.NewTracedClient(a.cfg.Ebay.Timeout)),
		ebay.WithAPIURL(a.cfg.Ebay.APIURL),
		ebay.WithAPIZURL(a.cfg.Ebay.APIZURL),
		ebay.WithCollectorMarketplace(a.cfg.Ebay.Marketplace),
		ebay.WithFeatures(ebay.FeaturesFromScopes(a.oauth.Scopes())),
		ebay.WithCollectorLogger(a.log),
	)
}

func (a *app) notifier() notify.Notifier {
	if a.cfg.Notifications.Discord.Enabled {
		d := a.cfg.Notifications.Discord
		return notify.NewDiscordNotifier(d.WebhookURL,
			notify.WithUsername(d.Username),
			notify.WithHTTPClient(ebay.NewTracedClient(10*time.Second)),
		)
	}
	return notify.NewNoOpNotifier(a.log)
}

// openStore returns the configured store and a func that releases it.
// With the database disabled, history lives in memory.
func (a *app) openStore(ctx context.Context) (store.Store, func(), error) {
	if !a.cfg.Database.Enabled {
		a.log.Info("database disabled, keeping history in memory")
		return store.NewMemoryStore(), func() {}, nil
	}

	pg, err := store.NewPostgresStore(
		ctx,
		a.cfg.Database.DSN(),
		store.WithPoolSize(a.cfg.Database.PoolSize),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	a.log.Info("connected to database", "host", a.cfg.Database.Host)
	return pg, pg.Close, nil
}
