package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type closer interface {
	Close()
}

type App struct {
	ctx      context.Context
	cfg      config.Config
	store    closer
	events   *kafka.CatalogEventsProducer
	catalog  service.CatalogService
	auth     service.AuthGate
	sessions port.Sessions

	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initEventsProducer()
	app.initCatalog()
	app.initAuth()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	if !app.cfg.EventsEnabled() {
		slog.Info("catalog events are disabled", "op", op)
		return
	}

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.CatalogEvents + "-value"
	eventSerde, err := schema.NewSerdeCatalogEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewCatalogEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.CatalogEvents,
		),
		kafka.ProducerEncoderOpt(eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.events = &producer
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"

	kv, cl, err := newCatalogStore(app.ctx, app.cfg)
	if err != nil {
		app.fallDown(op, err)
	}
	app.store = cl

	repo := storage.NewCatalogRepository(kv, app.cfg.Catalog.ProductsPath)

	var events port.CatalogEventsProducer
	if app.events != nil {
		events = *app.events
	}
	app.catalog = service.New(repo, events)
}

func (app *App) initAuth() {
	allowList := make([]domain.Credential, 0, len(app.cfg.Auth.Credentials))
	for _, c := range app.cfg.Auth.Credentials {
		allowList = append(allowList, domain.Credential{
			Username:     c.Username,
			PasswordHash: c.PasswordHash,
		})
	}
	app.auth = service.NewAuthGate(allowList)
	app.sessions = service.NewSessionProvider()
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.catalog, app.catalog, app.sessions)
	httphandler.RegisterAuth(mux, app.auth, app.sessions)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.events != nil {
		app.events.Close()
	}
	if app.store != nil {
		app.store.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
