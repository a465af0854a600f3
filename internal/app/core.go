package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/notify"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
)

// Core is the storefront state engine shared by the HTTP server and the CLI.
type Core struct {
	Catalog  *catalog.Catalog
	Cart     *service.CartStore
	Wishlist *service.WishlistStore
	Checkout *service.CheckoutService
	Health   *health.Handler

	storage  *storage
	producer *pkgkafka.Producer
	logger   *slog.Logger
}

// NewCore loads the catalog, opens storage and builds the stores.
func NewCore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Core, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", slog.Int("products", cat.Len()))

	st, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}

	healthHandler := health.NewHandler()
	healthHandler.Register("storage", st.ping)

	var (
		publisher event.Publisher
		producer  *pkgkafka.Producer
	)
	if cfg.EventsEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			BatchSize:    1,
			BatchTimeout: 10 * time.Millisecond,
		}, logger)
		publisher = producer
		healthHandler.RegisterOptional("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	events := event.NewProducer(publisher, logger)
	notifier := notify.New(logger)
	cart := service.NewCartStore(ctx, st, events, logger)
	wishlist := service.NewWishlistStore(ctx, st, notifier, events, logger)

	return &Core{
		Catalog:  cat,
		Cart:     cart,
		Wishlist: wishlist,
		Checkout: service.NewCheckoutService(cart, notifier, events, logger, cfg.CheckoutDelay),
		Health:   healthHandler,
		storage:  st,
		producer: producer,
		logger:   logger,
	}, nil
}

// Close releases the storage backend and the Kafka producer.
func (c *Core) Close() error {
	var errs []error
	if c.producer != nil {
		if err := c.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kafka producer: %w", err))
		}
	}
	if err := c.storage.close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}
