package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mudrex/mudrex-go/api"
	"github.com/mudrex/mudrex-go/internal/config"
	"github.com/mudrex/mudrex-go/pkg/models"
	"github.com/mudrex/mudrex-go/pkg/mudrex"
	"github.com/mudrex/mudrex-go/pkg/tools"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	logger  *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mudrex",
		Short: "Mudrex futures trading client",
		Long:  `Client for the Mudrex futures API: wallet, markets, orders and positions, plus an agent tool server`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the agent tool server",
			Run:   runServe,
		},
		&cobra.Command{
			Use:   "assets [query]",
			Short: "List or search tradable futures markets",
			Run:   runAssets,
		},
		&cobra.Command{
			Use:   "balance",
			Short: "Show spot and futures balances",
			Run:   runBalance,
		},
		&cobra.Command{
			Use:   "positions",
			Short: "Show open positions with live PnL",
			Run:   runPositions,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *mudrex.Client) {
	// A local .env is convenient during development; absence is fine.
	_ = godotenv.Load()

	logger = logrus.New()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.WithError(err).Error("Invalid log level, using INFO")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Mudrex.APISecret == "" {
		logger.Fatal("MUDREX_API_SECRET is required (env, config file, or GCP secret)")
	}

	client := mudrex.New(cfg.Mudrex.APISecret,
		mudrex.WithBaseURL(cfg.Mudrex.BaseURL),
		mudrex.WithLogger(logger),
		mudrex.WithRateLimit(cfg.Mudrex.RateLimit),
	)
	return cfg, client
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, client := setup()

	registry := tools.NewRegistry(client)
	server := api.NewServer(registry, logger, fmt.Sprintf("%d", cfg.Server.Port))

	logger.Infof("Tool server ready with %d tools", len(registry.List()))
	if err := server.Start(); err != nil {
		logger.WithError(err).Fatal("Tool server stopped")
	}
}

func runAssets(cmd *cobra.Command, args []string) {
	_, client := setup()
	ctx := context.Background()

	var (
		assets []models.Asset
		err    error
	)
	if len(args) > 0 {
		assets, err = client.Assets.Search(ctx, args[0])
	} else {
		assets, err = client.Assets.ListAll(ctx, mudrex.ListOptions{SortBy: "symbol"})
	}
	if err != nil {
		logger.WithError(err).Fatal("Failed to fetch assets")
	}

	for _, a := range assets {
		fmt.Printf("%-14s leverage %s-%sx  step %s  price %s\n",
			a.Symbol, a.MinLeverage, a.MaxLeverage, a.QuantityStep, a.Price)
	}
	fmt.Printf("%d markets\n", len(assets))
}

func runBalance(cmd *cobra.Command, args []string) {
	_, client := setup()
	ctx := context.Background()

	spot, err := client.Wallet.SpotBalance(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Failed to fetch spot balance")
	}
	futures, err := client.Wallet.FuturesBalance(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Failed to fetch futures balance")
	}

	fmt.Printf("Spot:    total %s, available %s %s\n", spot.Total, spot.Available(), spot.Currency)
	fmt.Printf("Futures: balance %s, locked %s, available %s, uPnL %s\n",
		futures.Balance, futures.LockedAmount, futures.Available(), futures.UnrealizedPnL)
}

func runPositions(cmd *cobra.Command, args []string) {
	_, client := setup()
	ctx := context.Background()

	positions, err := client.Positions.ListOpen(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Failed to fetch positions")
	}

	for _, p := range positions {
		fmt.Printf("%-14s %-5s qty %s @ %s  mark %s  uPnL %s (%.2f%%)  exposure %s\n",
			p.Symbol, p.Side, p.Quantity, p.EntryPrice, p.MarkPrice,
			p.UnrealizedPnL, p.PnLPercentage(), p.Exposure())
	}

	summary, err := client.Positions.TotalPnL(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Failed to aggregate PnL")
	}
	fmt.Printf("%d positions, total uPnL %s on margin %s (%.2f%%)\n",
		summary.PositionCount, summary.TotalUnrealizedPnL, summary.TotalMargin, summary.PnLPercentage)
}
