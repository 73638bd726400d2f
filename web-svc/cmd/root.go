package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"eatery-frontend/config"
	httpapi "eatery-frontend/web-svc/internal/api/http"
	"eatery-frontend/web-svc/internal/auth"
	"eatery-frontend/web-svc/internal/cart"
	"eatery-frontend/web-svc/internal/client"
	"eatery-frontend/web-svc/internal/metrics"
	"eatery-frontend/web-svc/internal/service"
	"eatery-frontend/web-svc/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "web-svc",
		Short: "Backend for the restaurant ordering web frontend",
		Long: `web-svc serves the storefront (restaurant menu, per-session cart, order summary)
and the restaurant owner dashboard (restaurant form, orders, order status) on top
of the external restaurant API.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags := rootCmd.Flags()
	flags.String("http-addr", ":8080", "Address to listen on")
	flags.String("api-base-url", "", "Base URL of the restaurant API")
	flags.String("cart-store", config.CartStoreRedis, "Cart storage backend (redis or postgres)")
	flags.String("log-level", "info", "Log level")

	for key, flag := range map[string]string{
		"http_addr":    "http-addr",
		"api_base_url": "api-base-url",
		"cart_store":   "cart-store",
		"log_level":    "log-level",
	} {
		v.BindPFlag(key, flags.Lookup(flag))
	}

	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	m := metrics.New()

	cartStorage, closeStorage, err := newCartStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	notifiers := service.MultiNotifier{m, storage.LogNotifier{Logger: logger}}
	if cfg.KafkaBroker != "" {
		writer := config.NewKafkaWriter(cfg)
		defer writer.Close()
		notifiers = append(notifiers, storage.NewKafkaNotifier(writer, logger))
	}

	api := client.NewRestaurantAPI(
		client.Config{BaseURL: cfg.APIBaseURL},
		&http.Client{Timeout: cfg.UpstreamTimeout},
		auth.ContextTokenSource{},
		m,
	)

	storefront := service.NewStorefront(api, cart.NewStore(cartStorage), logger)
	dashboard := service.NewDashboard(api, notifiers, service.DefaultQRGenerator{BaseURL: cfg.TrackingBaseURL}, logger)
	handler := httpapi.NewHandler(storefront, dashboard, logger)

	logger.Info("configuration loaded",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("cart_store", cfg.CartStore),
		zap.Bool("kafka", cfg.KafkaBroker != ""))

	return httpapi.StartServer(ctx, cfg.HTTPAddr, httpapi.NewRouter(handler, m, cfg.AllowedOrigins), logger)
}

func newCartStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cart.Storage, func(), error) {
	switch cfg.CartStore {
	case config.CartStorePostgres:
		db := config.MustInitPostgres(cfg, logger)
		pg := storage.NewPostgresCartStorage(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure cart schema: %w", err)
		}
		return pg, func() { db.Close() }, nil
	default:
		rdb := config.MustInitRedis(cfg, logger)
		return storage.NewRedisCartStorage(rdb), func() { rdb.Close() }, nil
	}
}
