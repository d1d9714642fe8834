package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/adapter/memory"
	"github.com/YelzhanWeb/ordersystem/internal/adapter/metrics"
	"github.com/YelzhanWeb/ordersystem/internal/adapter/postgres"
	"github.com/YelzhanWeb/ordersystem/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/ordersystem/internal/app/item"
	"github.com/YelzhanWeb/ordersystem/internal/app/member"
	"github.com/YelzhanWeb/ordersystem/internal/app/order"
	"github.com/YelzhanWeb/ordersystem/internal/config"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"

	amqpAdapter "github.com/YelzhanWeb/ordersystem/internal/adapter/amqp"
	httpAdapter "github.com/YelzhanWeb/ordersystem/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "api", "Service mode: api, notification-subscriber")
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	port := flag.Int("port", 0, "HTTP port, overrides the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lgr := logger.New(*mode)

	switch *mode {
	case "api":
		err = runAPI(ctx, cfg, lgr)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, lgr)
	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
	if err != nil {
		lgr.Error("service_failed", "Service stopped with error", "shutdown", nil, err)
		os.Exit(1)
	}
}

// storage is the set of repositories behind one driver.
type storage struct {
	tx      interfaces.Transactor
	members interfaces.MemberRepository
	items   interfaces.ItemRepository
	orders  interfaces.OrderRepository
	queries interfaces.OrderQueryRepository
	close   func()
}

func openStorage(ctx context.Context, cfg *config.Config, m *metrics.Metrics, lgr logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		store := memory.New(m)
		lgr.Info("storage_ready", "Using in-memory storage", "startup", nil)
		return &storage{
			tx:      store,
			members: memory.NewMemberRepository(store),
			items:   memory.NewItemRepository(store),
			orders:  memory.NewOrderRepository(store),
			queries: memory.NewOrderQueryRepository(store),
			close:   func() {},
		}, nil
	}

	pool, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	db := postgres.NewCountingDB(pool, m)
	return &storage{
		tx:      postgres.NewTransactor(db),
		members: postgres.NewMemberRepository(db),
		items:   postgres.NewItemRepository(db),
		orders:  postgres.NewOrderRepository(db),
		queries: postgres.NewOrderQueryRepository(db),
		close:   pool.Close,
	}, nil
}

func openPublisher(cfg *config.Config, lgr logger.Logger) (interfaces.MessagePublisher, func(), error) {
	if cfg.RabbitMQ.Host == "" {
		lgr.Info("rabbitmq_disabled", "No RabbitMQ host configured, events are dropped", "startup", nil)
		return rabbitmq.NoopPublisher{}, func() {}, nil
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		return nil, nil, err
	}
	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})
	return rabbitmq.NewPublisher(conn), func() { _ = conn.Close() }, nil
}

func runAPI(ctx context.Context, cfg *config.Config, lgr logger.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, err := openStorage(ctx, cfg, m, lgr)
	if err != nil {
		return err
	}
	defer store.close()

	publisher, closePublisher, err := openPublisher(cfg, lgr)
	if err != nil {
		return err
	}
	defer closePublisher()

	strategy, err := interfaces.ParseListStrategy(cfg.Orders.ListStrategy)
	if err != nil {
		return err
	}

	services := httpAdapter.Services{
		Members: member.NewService(store.tx, store.members, publisher, m, lgr),
		Items:   item.NewService(store.tx, store.items, lgr),
		Orders: order.NewService(store.tx, order.Repositories{
			Orders:  store.orders,
			Queries: store.queries,
			Members: store.members,
			Items:   store.items,
		}, publisher, m, lgr, strategy),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      httpAdapter.NewRouter(services, m, reg, lgr),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lgr.Info("service_started", fmt.Sprintf("Order API started on port %d", cfg.HTTP.Port), "startup", map[string]interface{}{
			"port":          cfg.HTTP.Port,
			"storage":       cfg.Storage.Driver,
			"list_strategy": strategy,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lgr.Info("shutdown_initiated", "Shutting down Order API", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger) error {
	if cfg.RabbitMQ.Host == "" {
		return errors.New("notification-subscriber requires rabbitmq.host")
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer conn.Close()

	consumer := rabbitmq.NewConsumer(conn, lgr)
	handler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", nil)

	err = consumer.ConsumeEvents(ctx, handler.HandleEvent)
	if errors.Is(err, context.Canceled) {
		lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
		return nil
	}
	return err
}
