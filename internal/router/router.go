package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-diet-planner/docs"
	"pet-diet-planner/internal/adapters/storage/catalogseed"
	mem "pet-diet-planner/internal/adapters/storage/memory"
	"pet-diet-planner/internal/domain/catalog"
	"pet-diet-planner/internal/domain/diet"
	"pet-diet-planner/internal/middleware"
	"pet-diet-planner/internal/platform/logger"
	"pet-diet-planner/internal/platform/metrics"
)

type Options struct {
	Logger  logger.Logger
	Metrics *metrics.Diet // nil = sin /metrics

	// Drafter puede ser nil: la generación responde 503 (IA no configurada).
	Drafter diet.DraftSource

	// Opcionales: si no vienen, catálogo embebido + propuestas in-memory.
	Catalog   catalog.Repository
	Proposals diet.ProposalRepository

	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	cat := opts.Catalog
	if cat == nil {
		seed, err := catalogseed.Default()
		if err != nil {
			log.Error("embedded catalog unavailable", map[string]any{"error": err})
		}
		cat = mem.NewCatalogRepo(seed.Foods, seed.Breeds)
	}
	proposals := opts.Proposals
	if proposals == nil {
		proposals = mem.NewProposalRepo()
	}

	var m diet.Metrics
	if opts.Metrics != nil {
		m = opts.Metrics
	}

	assembler := diet.NewAssembler(diet.AssemblerDeps{
		Breeds:  cat,
		Foods:   cat,
		Drafter: opts.Drafter,
		Log:     log,
		Metrics: m,
		Now:     opts.Now,
	})
	dietSvc := diet.NewService(assembler, proposals)

	diet.RegisterRoutes(r, dietSvc, log)

	return r
}
