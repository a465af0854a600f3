package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/app"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/notify"
	pkgconfig "github.com/utafrali/storefront/pkg/config"
	"github.com/utafrali/storefront/pkg/logger"
)

// cli holds the global flags and, while a command runs, the open core.
type cli struct {
	storage    string
	sqlitePath string
	logLevel   string

	cfg       *config.Config
	core      *app.Core
	collector *notify.Collector
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Browse the catalog and manage the cart, wishlist and checkout",
		Long: `storefront works on the same persisted cart and wishlist as the HTTP
server. Storage is chosen by STORAGE_DRIVER (default sqlite) or --storage.

Available commands:
  categories - List catalog categories
  products   - Search and filter the catalog
  product    - Show one product
  cart       - Show and edit the cart
  wishlist   - Show and edit the wishlist
  checkout   - Price the cart and place an order`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.storage, "storage", "", "storage driver: sqlite, memory, redis or postgres")
	flags.StringVar(&c.sqlitePath, "sqlite-path", "", "sqlite database file")
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level for diagnostics written to stderr")

	root.AddCommand(
		c.categoriesCmd(),
		c.productsCmd(),
		c.productCmd(),
		c.cartCmd(),
		c.wishlistCmd(),
		c.checkoutCmd(),
	)
	return root
}

// run wraps a command body: it opens the core, collects notifications raised
// while fn runs, prints them, and closes the core even when fn fails.
func (c *cli) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := c.open(cmd); err != nil {
			return err
		}
		defer func() {
			if cerr := c.core.Close(); cerr != nil {
				err = errors.Join(err, cerr)
			}
			c.core = nil
		}()

		c.collector = notify.NewCollector()
		cmd.SetContext(notify.WithCollector(cmd.Context(), c.collector))

		err = fn(cmd, args)
		printNotices(cmd.OutOrStdout(), c.collector)
		return err
	}
}

func (c *cli) open(cmd *cobra.Command) error {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.storage != "" {
		cfg.StorageDriver = c.storage
	}
	if c.sqlitePath != "" {
		cfg.SQLitePath = c.sqlitePath
	}

	log := logger.NewText(config.ServiceName, c.logLevel, cmd.ErrOrStderr())
	core, err := app.NewCore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.core = core
	return nil
}

func printNotices(w io.Writer, c *notify.Collector) {
	for _, n := range c.Notices() {
		fmt.Fprintf(w, "[%s] %s\n", n.Kind, n.Message)
	}
}
