package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/mymmrac/telego"
	"golang.org/x/sync/errgroup"

	"vend_kiosk/internal/config"
	"vend_kiosk/internal/domain/service/kiosk"
	"vend_kiosk/internal/infrastructure/inventory"
	"vend_kiosk/internal/infrastructure/journal"
	"vend_kiosk/internal/infrastructure/notifier"
	"vend_kiosk/internal/infrastructure/persistence"
	"vend_kiosk/internal/infrastructure/sales"
	"vend_kiosk/internal/server"
	"vend_kiosk/internal/transport/bot"
	"vend_kiosk/internal/transport/bot/handler"
	"vend_kiosk/internal/worker"
	"vend_kiosk/pkg/application/connectors"
	"vend_kiosk/pkg/application/modules"
	"vend_kiosk/pkg/contextx"
	"vend_kiosk/pkg/logx"
)

const httpServerReadHeaderTimeout = 5 * time.Second

// Run wires the kiosk and blocks until ctx is done or a module fails.
func Run(ctx context.Context, cfg config.Config) error {
	log := contextx.LoggerFromContextOrDefault(ctx).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	ctx = contextx.WithLogger(ctx, log)

	inventoryClient, err := inventory.NewClient(inventory.Config{
		BaseURL:        cfg.Inventory.BaseURL,
		Token:          cfg.Inventory.Token,
		Timeout:        cfg.Inventory.Timeout,
		LogFieldMaxLen: cfg.Inventory.LogFieldMaxLen,
	})
	if err != nil {
		return fmt.Errorf("inventory.NewClient: %w", err)
	}

	var telegramBot *telego.Bot

	notifiers := []notifier.Target{notifier.NewLog()}

	if cfg.Bot.Enabled() {
		telegramBot, err = telego.NewBot(cfg.Bot.Token, telego.WithDiscardLogger())
		if err != nil {
			return fmt.Errorf("telego.NewBot: %w", err)
		}

		notifiers = append(notifiers, notifier.NewTelegramBot(telegramBot, cfg.Bot.ChatID))
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	defer pg.Close(ctx)

	rdb := &connectors.Redis{
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		Address:            cfg.Redis.Address,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	defer rdb.Close(ctx)

	var receiptJournal kiosk.ReceiptJournal = journal.Nop{}

	if cfg.Journal.Enabled {
		if err = pg.Ping(ctx); err != nil {
			return fmt.Errorf("postgres.Ping: %w", err)
		}

		if err = rdb.Ping(ctx); err != nil {
			return fmt.Errorf("redis.Ping: %w", err)
		}

		asynqClient := asynq.NewClient(rdb.AsynqOpt())
		defer asynqClient.Close()

		receiptJournal = journal.NewQueue(asynqClient, journal.Config{
			Queue:     cfg.Journal.Queue,
			MaxRetry:  cfg.Journal.MaxRetry,
			Retention: cfg.Journal.Retention,
		})
	}

	controller := kiosk.NewController(inventoryClient, notifier.NewMulti(notifiers...), receiptJournal).
		WithClearSelectionOnSuccess(cfg.Kiosk.ClearSelectionOnSuccess)

	if err = controller.LoadCatalog(ctx); err != nil {
		log.Warn("initial catalog load failed, kiosk stays not ready", logx.Error(err))
	}

	var (
		receiptServer *server.ReceiptServer
		recorder      *worker.ReceiptRecorder
	)

	if cfg.Journal.Enabled {
		receiptRepo := persistence.NewReceiptRepository(pg.Client(ctx))
		tally := sales.NewTally(rdb.Client(ctx), cfg.Journal.TallyRetention)

		receiptServer = server.NewReceiptServer(receiptRepo, tally)
		recorder = worker.NewReceiptRecorder(receiptRepo, tally)
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr: cfg.HTTP.ListenAddress,
		Handler: server.NewRouter(
			server.NewServer(server.NewKioskServer(controller, cfg.Kiosk.Denominations), receiptServer),
			cfg.HTTP.LogFieldMaxLen,
		),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	})

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsAddress,
	}.Run(ctx, g)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeAddress,
		Ready:         controller.Ready,
	}.Run(ctx, g)

	if recorder != nil {
		modules.AsynqServer{
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisAddress:  cfg.Redis.Address,
			RedisDB:       cfg.Redis.DatabaseNumber,
			Concurrency:   cfg.Journal.Concurrency,
		}.Run(ctx, g, modules.AsynqQueues{cfg.Journal.Queue: 1}, modules.AsynqHandler{
			Pattern: journal.TypeRecordReceipt,
			Handle:  recorder.Handle,
		})
	}

	if telegramBot != nil {
		kioskBot := bot.New(telegramBot, handler.New(controller, cfg.Kiosk.Denominations), cfg.Bot.ChatID)

		g.Go(func() error {
			if err := kioskBot.Run(ctx); err != nil {
				return fmt.Errorf("kioskBot.Run: %w", err)
			}

			return nil
		})
	}

	if cfg.Kiosk.CatalogRefreshInterval > 0 {
		refresher := worker.NewCatalogRefresher(controller, cfg.Kiosk.CatalogRefreshInterval)

		if err = refresher.Start(ctx); err != nil {
			return fmt.Errorf("refresher.Start: %w", err)
		}

		g.Go(func() error {
			<-ctx.Done()

			refresher.Stop()

			return nil
		})
	}

	log.Info("kiosk started",
		slog.Int(logx.FieldItemsCount, len(controller.Catalog())),
		slog.Bool("journal", cfg.Journal.Enabled),
		slog.Bool("bot", telegramBot != nil),
	)

	if err = g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	log.Info("kiosk stopped")

	return nil
}
