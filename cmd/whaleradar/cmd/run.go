package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TradeAdvisor/whale-radar-main/api"
	"github.com/TradeAdvisor/whale-radar-main/config"
	"github.com/TradeAdvisor/whale-radar-main/feed"
	"github.com/TradeAdvisor/whale-radar-main/journal"
	"github.com/TradeAdvisor/whale-radar-main/logger"
	"github.com/TradeAdvisor/whale-radar-main/paper"
	"github.com/TradeAdvisor/whale-radar-main/snapshot"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the paper-trading desk from a config file",
	Long: `Run the desk using settings from a configuration file.

The config selects the starting balance, the websocket feed and pairs, the
journal backend, the snapshot path and the HTTP listen address.

Example:
  whaleradar run --config configs/desk.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Log)

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	acct, err := loadAccount(cfg)
	if err != nil {
		// A legacy snapshot without fee_pct/notional must never load with
		// defaults silently; refuse to start instead.
		return fmt.Errorf("load account snapshot: %w", err)
	}

	writer := snapshot.NewWriter(cfg.Snapshot.Path, log)
	defer writer.Close()

	engine := paper.NewEngine(acct, j, writer, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Feed.URL != "" {
		client := feed.NewClient(cfg.Feed.URL, cfg.Feed.Pairs, engine, log)
		go func() {
			if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("price feed stopped")
			}
		}()
	}

	server := api.NewServer(cfg.Server.Addr, engine, cfg.Trading, log)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.TradesFile, cfg.EquityFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return journal.Nop{}, nil
	}
}

func loadAccount(cfg *config.Config) (*paper.AccountState, error) {
	acct, err := snapshot.Load(cfg.Snapshot.Path, cfg.Snapshot.MigrateLegacy)
	if err == nil {
		return acct, nil
	}
	if os.IsNotExist(err) {
		return paper.NewAccountState(cfg.Account.InitialBalance, time.Now()), nil
	}
	return nil, err
}
