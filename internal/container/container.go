package container

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/linkshort/internal/analytics"
	analyticsstore "github.com/serroba/linkshort/internal/analytics/store"
	"github.com/serroba/linkshort/internal/handlers"
	"github.com/serroba/linkshort/internal/health"
	"github.com/serroba/linkshort/internal/link"
	"github.com/serroba/linkshort/internal/messaging"
	"github.com/serroba/linkshort/internal/middleware"
	"github.com/serroba/linkshort/internal/storage"
	"go.uber.org/zap"
)

// Options is the process configuration, parsed from flags and environment by
// humacli. Nothing outside the container reads configuration ad hoc.
type Options struct {
	Port        int    `default:"8888"     help:"Port to listen on"                                                               short:"p"`
	BaseURL     string `help:"Public base URL for short links; defaults to http://localhost:<port>"`
	DBPath      string `default:"links.db" help:"Path to the embedded store file"                                                 short:"d"`
	AuthSecret  string `help:"Static secret required in the Authorization header on /api routes; empty disables the gate"`
	IDLength    int    `default:"6"        help:"Length of generated identifiers"`
	RedisAddr   string `help:"Redis address for the analytics stream; empty keeps events in-process"                               short:"r"`
	DatabaseURL string `help:"Postgres DSN for persisting analytics events; empty logs them instead"`
	LogFormat   string `default:"console"  help:"Log output format (console or json)"`
}

// PublicBaseURL resolves the base URL short links are built from.
func (o *Options) PublicBaseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// StorePackage provides the embedded engine, the link store, and the
// identifier generator.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*storage.Bolt, error) {
		opts := do.MustInvoke[*Options](i)

		return storage.OpenBolt(opts.DBPath, link.PrimaryTable, link.RefIndexTable)
	})

	do.Provide(injector, func(i *do.Injector) (*link.Store, error) {
		return link.NewStore(
			do.MustInvoke[*storage.Bolt](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (link.Generator, error) {
		opts := do.MustInvoke[*Options](i)

		return link.NewGenerator(opts.IDLength)
	})
}

// RedisPackage provides the redis client used by the analytics stream.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: opts.RedisAddr}), nil
	})
}

// PublisherPackage provides the event publisher and the typed publish
// functions. Events go to Redis Streams when an address is configured and to
// an in-process channel otherwise.
func PublisherPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*gochannel.GoChannel, error) {
		return gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.RedisAddr == "" {
			return messaging.NewPublisherGroup(do.MustInvoke[*gochannel.GoChannel](i)), nil
		}

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: do.MustInvoke[*redis.Client](i),
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	providePublish[analytics.LinkCreatedEvent](injector, analytics.TopicLinkCreated)
	providePublish[analytics.LinkVisitedEvent](injector, analytics.TopicLinkVisited)
	providePublish[analytics.LinkDeletedEvent](injector, analytics.TopicLinkDeleted)
}

func providePublish[T any](injector *do.Injector, topic string) {
	do.Provide(injector, func(i *do.Injector) (messaging.Publish[T], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[T](group.Publisher(), topic), nil
	})
}

// HTTPPackage provides the router and the API with all routes registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*health.Handler, error) {
		opts := do.MustInvoke[*Options](i)

		var redisChecker health.Checker
		if opts.RedisAddr != "" {
			redisChecker = health.NewRedisChecker(do.MustInvoke[*redis.Client](i))
		}

		return health.NewHandler(do.MustInvoke[*storage.Bolt](i), redisChecker), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)

		api := humachi.New(router, huma.DefaultConfig("Link Shortener", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))

		linkHandler := handlers.NewLinkHandler(
			do.MustInvoke[*link.Store](i),
			do.MustInvoke[link.Generator](i),
			opts.PublicBaseURL(),
			do.MustInvoke[messaging.Publish[analytics.LinkCreatedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.LinkVisitedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.LinkDeletedEvent]](i),
			do.MustInvoke[*zap.Logger](i),
		)

		handlers.RegisterRoutes(api, linkHandler, middleware.AuthGate(api, opts.AuthSecret))
		health.RegisterRoutes(api, do.MustInvoke[*health.Handler](i))

		return api, nil
	})
}

// ConsumerGroupPackage provides the analytics sink and the consumer group
// that drains the event stream into it.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.DatabaseURL == "" {
			return analyticsstore.NewNoop(do.MustInvoke[*zap.Logger](i)), nil
		}

		pool, err := pgxpool.New(context.Background(), opts.DatabaseURL)
		if err != nil {
			return nil, err
		}

		return analyticsstore.NewPostgres(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		sink := do.MustInvoke[analytics.Store](i)

		var subscriber message.Subscriber
		if opts.RedisAddr == "" {
			subscriber = do.MustInvoke[*gochannel.GoChannel](i)
		} else {
			sub, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
				Client:        do.MustInvoke[*redis.Client](i),
				ConsumerGroup: "linkshort-analytics",
			}, watermill.NopLogger{})
			if err != nil {
				return nil, err
			}

			subscriber = sub
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkCreated, sink.SaveLinkCreated, logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkVisited, sink.SaveLinkVisited, logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkDeleted, sink.SaveLinkDeleted, logger))

		return group, nil
	})
}
