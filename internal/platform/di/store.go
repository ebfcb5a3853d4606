// internal/platform/di/store.go
package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	pgrepo "qkart/internal/adapters/out/db"
	fs "qkart/internal/adapters/out/firestore"
	"qkart/internal/adapters/out/memory"
	mongorepo "qkart/internal/adapters/out/mongo"
	cartdom "qkart/internal/domain/cart"
	productdom "qkart/internal/domain/product"
	userdom "qkart/internal/domain/user"
	"qkart/internal/infra/config"
	"qkart/internal/infra/database"
	firestoreinfra "qkart/internal/infra/firestore"
	mongoinfra "qkart/internal/infra/mongo"
)

// stores is one backend's set of repositories.
type stores struct {
	Users    userdom.Repository
	Carts    cartdom.Repository
	Products productdom.Repository
	Checkout cartdom.CheckoutStore

	close func() error
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverFirestore:
		cw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile, log)
		if err != nil {
			return nil, err
		}
		return &stores{
			Users:    fs.NewUserRepositoryFS(cw.Client),
			Carts:    fs.NewCartRepositoryFS(cw.Client),
			Products: fs.NewProductRepositoryFS(cw.Client),
			Checkout: fs.NewCheckoutStoreFS(cw.Client),
			close:    cw.Close,
		}, nil

	case config.DriverMongo:
		cw, err := mongoinfra.NewClient(ctx, cfg.MongoURL, cfg.MongoDatabase, log)
		if err != nil {
			return nil, err
		}
		return &stores{
			Users:    mongorepo.NewUserRepositoryMongo(cw.DB),
			Carts:    mongorepo.NewCartRepositoryMongo(cw.DB),
			Products: mongorepo.NewProductRepositoryMongo(cw.DB),
			Checkout: mongorepo.NewCheckoutStoreMongo(cw.Client, cw.DB),
			close:    cw.Close,
		}, nil

	case config.DriverPostgres:
		if cfg.DBAutoMigrate {
			if err := database.MigrateUp(cfg.DatabaseURL, log); err != nil {
				return nil, err
			}
		}
		db, err := database.NewConnection(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return &stores{
			Users:    pgrepo.NewUserRepositoryPG(db.Client),
			Carts:    pgrepo.NewCartRepositoryPG(db.Client),
			Products: pgrepo.NewProductRepositoryPG(db.Client),
			Checkout: pgrepo.NewCheckoutStorePG(db.Client),
			close:    db.Close,
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("memory store selected: data is lost on restart")
		st := memory.NewStore()
		if cfg.ProductsSeedFile != "" {
			ps, err := memory.LoadProductsFile(cfg.ProductsSeedFile)
			if err != nil {
				return nil, err
			}
			st.SeedProducts(ps)
			log.Info().Int("products", len(ps)).Str("file", cfg.ProductsSeedFile).Msg("memory catalogue seeded")
		} else {
			log.Warn().Msg("PRODUCTS_SEED_FILE empty: memory catalogue is empty")
		}
		return &stores{
			Users:    st.Users(),
			Carts:    st.Carts(),
			Products: st.Products(),
			Checkout: st,
			close:    st.Close,
		}, nil
	}
	return nil, fmt.Errorf("di: unknown store driver %q", cfg.StoreDriver)
}

func (s *stores) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}
