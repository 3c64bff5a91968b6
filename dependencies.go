package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	prometheusSDK "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/go-arrower/catalog/alog"
	"github.com/go-arrower/catalog/app"
	"github.com/go-arrower/catalog/postgres"
	"github.com/go-arrower/catalog/product"
	"github.com/go-arrower/catalog/repository"
)

var (
	ErrMissingDependency = errors.New("missing dependency")
	ErrUnknownStore      = errors.New("unknown store")
)

// Container holds all dependencies of the catalog, so a cli or a test can
// call the product use cases without knowing how they are set up.
type Container struct {
	Logger        alog.Logger
	MeterProvider *metric.MeterProvider
	TraceProvider *trace.TracerProvider
	// MetricsRegistry collects the metrics of MeterProvider.
	MetricsRegistry *prometheusSDK.Registry

	Config *Config
	PG     *postgres.Handler

	Repository repository.Repository[product.Product, product.ID]
	Service    *product.Service

	GetAllProducts app.Query[product.GetAllProductsQuery, []product.View]
	GetProduct     app.Query[product.GetProductQuery, product.View]
	AddProduct     app.Request[product.AddProductRequest, product.Product]
	UpdateProduct  app.Request[product.UpdateProductRequest, product.View]
	DeleteProduct  app.Request[product.DeleteProductRequest, string]
	RemoveProduct  app.Command[product.RemoveProductCommand]

	closeDB func() error
}

// InitialiseDefaultDependencies sets up observability, the repository selected by conf.Store
// and the instrumented product use cases.
func InitialiseDefaultDependencies(ctx context.Context, conf *Config) (*Container, error) {
	if conf == nil {
		return nil, fmt.Errorf("%w: config not found", ErrMissingDependency)
	}

	dc := &Container{
		Config:  conf,
		closeDB: func() error { return nil },
	}

	{ // observability
		resource := resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("catalog"),
			attribute.String("environment", string(conf.Environment)),
		)

		{ // traces
			opts := []trace.TracerProviderOption{
				trace.WithResource(resource),
				trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(0.6))), //nolint:mnd
			}

			if conf.Environment == LocalEnv {
				opts = append(opts, trace.WithSampler(trace.AlwaysSample()))
			}

			if conf.OTEL.Host != "" {
				exporterOpts := []otlptracegrpc.Option{
					otlptracegrpc.WithEndpoint(fmt.Sprintf("%s:%d", conf.OTEL.Host, conf.OTEL.Port)),
					otlptracegrpc.WithInsecure(),
				}

				if conf.Environment == TestEnv {
					// no collector is running while testing, and the shutdown would block until the ctx expires.
					exporterOpts = append(exporterOpts, otlptracegrpc.WithTimeout(10*time.Millisecond)) //nolint:mnd
				}

				traceExporter, err := otlptracegrpc.New(ctx, exporterOpts...)
				if err != nil {
					return nil, fmt.Errorf("could not connect to trace exporter: %w", err)
				}

				opts = append(opts, trace.WithBatcher(traceExporter))
			}

			dc.TraceProvider = trace.NewTracerProvider(opts...)
		}

		{ // metrics
			registry := prometheusSDK.NewRegistry()

			exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
			if err != nil {
				return nil, errors.Join(
					fmt.Errorf("could not create to prometheus exporter: %w", err),
					dc.shutdownTelemetry(ctx),
				)
			}

			dc.MetricsRegistry = registry
			dc.MeterProvider = metric.NewMeterProvider(
				metric.WithResource(resource),
				metric.WithReader(exporter),
			)
		}
	}

	{ // logger
		level, err := conf.Log.SlogLevel()
		if err != nil {
			return nil, errors.Join(err, dc.shutdownTelemetry(ctx))
		}

		logger := alog.New(alog.WithLevel(level))
		if conf.Environment == LocalEnv {
			logger = alog.NewDevelopment()
		}

		dc.Logger = logger.With(
			slog.String("git_hash", gitHash()),
			slog.String("environment", string(conf.Environment)),
		)
	}

	{ // repository
		repo, err := dc.newRepository(ctx)
		if err != nil {
			return nil, errors.Join(err, dc.shutdownTelemetry(ctx))
		}

		dc.Repository = repo
	}

	{ // use cases
		dc.Service = product.NewService(dc.Repository)

		dc.GetAllProducts = app.NewInstrumentedQuery(dc.TraceProvider, dc.MeterProvider, dc.Logger,
			product.NewGetAllProductsQueryHandler(dc.Service))
		dc.GetProduct = app.NewInstrumentedQuery(dc.TraceProvider, dc.MeterProvider, dc.Logger,
			product.NewGetProductQueryHandler(dc.Service))
		dc.AddProduct = app.NewInstrumentedRequest(dc.TraceProvider, dc.MeterProvider, dc.Logger,
			product.NewAddProductRequestHandler(dc.Service))
		dc.UpdateProduct = app.NewInstrumentedRequest(dc.TraceProvider, dc.MeterProvider, dc.Logger,
			product.NewUpdateProductRequestHandler(dc.Service))
		dc.DeleteProduct = app.NewInstrumentedRequest(dc.TraceProvider, dc.MeterProvider, dc.Logger,
			product.NewDeleteProductRequestHandler(dc.Service))
		dc.RemoveProduct = app.NewInstrumentedCommand(dc.TraceProvider, dc.MeterProvider, dc.Logger,
			product.NewRemoveProductCommandHandler(dc.Service))
	}

	return dc, nil
}

func (c *Container) newRepository(ctx context.Context) (repository.Repository[product.Product, product.ID], error) { //nolint:ireturn,lll // the store decides on the implementation
	switch c.Config.Store.Kind {
	case "", StoreMemory:
		opts := []repository.Option{repository.WithStoreName("products.json")}

		if c.Config.Store.Dir != "" {
			store, err := repository.NewJSONStore(c.Config.Store.Dir)
			if err != nil {
				return nil, fmt.Errorf("could not open store: %w", err)
			}

			opts = append(opts, repository.WithStore(store))
		}

		repo, err := repository.NewMemoryRepository[product.Product, product.ID](opts...)
		if err != nil {
			return nil, fmt.Errorf("could not create memory repository: %w", err)
		}

		return repo, nil
	case StorePostgres:
		conn, err := c.connectPostgres(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not connect to postgres: %w", err)
		}

		return product.NewRepository(conn), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, c.Config.Store.Kind)
	}
}

func (c *Container) connectPostgres(ctx context.Context) (repository.Conn, error) { //nolint:ireturn // depends on driver
	conf := c.Config.Postgres.Config()

	if c.Config.Postgres.Driver == DriverPQ {
		db, err := postgres.OpenSQL(ctx, conf)
		if err != nil {
			return nil, err //nolint:wrapcheck // wrapped by caller
		}

		if err = postgres.Migrate(db.DB, conf); err != nil {
			_ = db.Close()

			return nil, err //nolint:wrapcheck // wrapped by caller
		}

		c.closeDB = db.Close

		return postgres.NewSQLConn(db), nil
	}

	pg, err := postgres.ConnectAndMigrate(ctx, conf, c.TraceProvider)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}

	c.PG = pg
	c.closeDB = func() error { return pg.Shutdown(ctx) }

	return pg.Conn(), nil
}

// Shutdown closes the database connections and flushes traces and metrics.
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.DebugContext(ctx, "shutting down")

	return errors.Join(c.closeDB(), c.shutdownTelemetry(ctx))
}

// shutdownTelemetry flushes and stops the providers created so far.
func (c *Container) shutdownTelemetry(ctx context.Context) error {
	var err error

	if c.TraceProvider != nil {
		err = errors.Join(err, c.TraceProvider.Shutdown(ctx))
	}

	if c.MeterProvider != nil {
		err = errors.Join(err, c.MeterProvider.Shutdown(ctx))
	}

	return err
}

// gitHash returns the commit the binary is built from.
// `go run` and `go test` do not contain that info.
func gitHash() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}

	if hostname, err := os.Hostname(); err == nil {
		return "unknown@" + hostname
	}

	return "unknown"
}
