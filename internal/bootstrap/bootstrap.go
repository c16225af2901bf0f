// Package bootstrap arma storage y drafter a partir de la config.
// Lo comparten cmd/api y cmd/dietctl.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-diet-planner/internal/adapters/llm/gemini"
	"pet-diet-planner/internal/adapters/llm/openaicompat"
	"pet-diet-planner/internal/adapters/storage/catalogseed"
	mem "pet-diet-planner/internal/adapters/storage/memory"
	pg "pet-diet-planner/internal/adapters/storage/postgres"
	lite "pet-diet-planner/internal/adapters/storage/sqlite"
	"pet-diet-planner/internal/domain/catalog"
	"pet-diet-planner/internal/domain/diet"
	"pet-diet-planner/internal/platform/config"
	"pet-diet-planner/internal/platform/logger"
)

// Stores son los repos ya inicializados. Close libera la conexión (si hay).
type Stores struct {
	Catalog   catalog.Repository
	Proposals diet.ProposalRepository

	db *sql.DB
}

func (s *Stores) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OpenStores elige el adapter según db.driver.
//   - memory: catálogo desde seed (archivo o embebido), propuestas en memoria.
//   - sqlite: crea el esquema y recarga el catálogo desde el seed en cada arranque.
//   - postgres: migra; el seed solo se aplica si catalog.seed_file está seteado.
func OpenStores(ctx context.Context, cfg config.Config, log logger.Logger) (*Stores, error) {
	if log == nil {
		log = logger.Nop()
	}

	switch cfg.DB.Driver {
	case "memory", "":
		seed, err := catalogseed.Load(cfg.Catalog.SeedFile)
		if err != nil {
			return nil, err
		}
		log.Info("using in-memory storage", map[string]any{
			"foods":  len(seed.Foods),
			"breeds": len(seed.Breeds),
		})
		return &Stores{
			Catalog:   mem.NewCatalogRepo(seed.Foods, seed.Breeds),
			Proposals: mem.NewProposalRepo(),
		}, nil

	case "sqlite":
		db, err := lite.Open(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		seed, err := catalogseed.Load(cfg.Catalog.SeedFile)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		cat := lite.NewCatalogRepo(db)
		if err := cat.SeedCatalog(ctx, seed.Foods, seed.Breeds); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: seed catalog: %w", err)
		}
		log.Info("using sqlite storage", map[string]any{"path": cfg.DB.DSN})
		return &Stores{Catalog: cat, Proposals: lite.NewProposalsRepo(db), db: db}, nil

	case "postgres":
		db, err := pg.Open(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		cat := pg.NewCatalogRepo(db)
		if strings.TrimSpace(cfg.Catalog.SeedFile) != "" {
			seed, err := catalogseed.Load(cfg.Catalog.SeedFile)
			if err != nil {
				_ = db.Close()
				return nil, err
			}
			if err := cat.Upsert(ctx, seed.Foods, seed.Breeds); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		log.Info("using postgres storage", nil)
		return &Stores{Catalog: cat, Proposals: pg.NewProposalsRepo(db), db: db}, nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown db driver %q", cfg.DB.Driver)
	}
}

// NewDrafter arma el Drafter según ai.provider. Sin API key el backend queda nil
// y cada generación devuelve ConfigurationError (el servicio igual levanta).
func NewDrafter(ctx context.Context, cfg config.AIConfig, log logger.Logger, m diet.Metrics) (*diet.Drafter, error) {
	if log == nil {
		log = logger.Nop()
	}

	dc := diet.DrafterConfig{
		APIKey:      cfg.APIKey(),
		Temperature: float32(cfg.Temperature),
	}

	var (
		backend diet.Backend
		variant = diet.VariantPrimary
	)
	if dc.APIKey != "" {
		switch cfg.Provider {
		case config.ProviderOpenAI:
			b, err := openaicompat.New(openaicompat.Config{
				APIKey:  dc.APIKey,
				BaseURL: cfg.BaseURL,
				Timeout: cfg.Timeout,
			})
			if err != nil {
				return nil, err
			}
			backend = b
			variant = diet.VariantAlternate
		default:
			b, err := gemini.New(ctx, gemini.Config{APIKey: dc.APIKey, Timeout: cfg.Timeout})
			if err != nil {
				return nil, err
			}
			backend = b
		}
	} else {
		log.Warn("AI api key not set; diet generation will answer 503", map[string]any{
			"provider": cfg.Provider,
		})
	}

	dc.Primary = diet.Route{Variant: variant, Backend: backend, Model: cfg.PrimaryModel}
	dc.Fallback = diet.Route{Variant: diet.VariantFallback, Backend: backend, Model: cfg.FallbackModel}

	return diet.NewDrafter(dc, log, m), nil
}
