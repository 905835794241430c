package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/error7buddy/KiLagbe.Com/config"
	adsrepo "github.com/error7buddy/KiLagbe.Com/internal/ads/repository"
	httpapi "github.com/error7buddy/KiLagbe.Com/internal/api/http"
	shiftingrepo "github.com/error7buddy/KiLagbe.Com/internal/shifting/repository"
	mongostore "github.com/error7buddy/KiLagbe.Com/internal/storage/mongo"
	pgstore "github.com/error7buddy/KiLagbe.Com/internal/storage/postgres"
	usersrepo "github.com/error7buddy/KiLagbe.Com/internal/users/repository"
)

// Stores bundles the repositories of the selected backend.
type Stores struct {
	Driver string
	Ads    adsrepo.Repository
	Orders shiftingrepo.Repository
	Users  usersrepo.Repository

	// DB is nil for the memory driver.
	DB httpapi.Pinger

	close func(ctx context.Context) error
}

func (s *Stores) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// OpenStores connects to the backend named by cfg.Driver once for the whole
// process and builds every repository on top of that connection.
func OpenStores(ctx context.Context, cfg config.StoreConfig, log logrus.FieldLogger) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		store, err := mongostore.Connect(ctx, mongostore.Options{
			URI:       cfg.MongoURI,
			Database:  cfg.MongoDB,
			ConnectTO: cfg.ConnectTO,
		})
		if err != nil {
			return nil, err
		}
		log.WithField("database", cfg.MongoDB).Info("connected to mongodb")

		return &Stores{
			Driver: cfg.Driver,
			Ads:    adsrepo.NewMongoRepository(store.DB, log),
			Orders: shiftingrepo.NewMongoRepository(store.DB),
			Users:  usersrepo.NewMongoRepository(store.DB),
			DB:     store,
			close:  store.Close,
		}, nil

	case config.DriverPostgres:
		pool, err := pgstore.Open(ctx, pgstore.Options{DSN: cfg.DSN, ConnectTO: cfg.ConnectTO})
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("connected to postgres, migrations applied")

		return &Stores{
			Driver: cfg.Driver,
			Ads:    adsrepo.NewPostgresRepository(pool),
			Orders: shiftingrepo.NewPostgresRepository(pool),
			Users:  usersrepo.NewPostgresRepository(pool),
			DB:     pool,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverMemory:
		log.Warn("using in-memory store; data is lost on restart")
		return MemoryStores(), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Driver)
	}
}

func MemoryStores() *Stores {
	return &Stores{
		Driver: config.DriverMemory,
		Ads:    adsrepo.NewMemoryRepository(),
		Orders: shiftingrepo.NewMemoryRepository(),
		Users:  usersrepo.NewMemoryRepository(),
	}
}
