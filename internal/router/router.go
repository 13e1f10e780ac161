package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	"pedigree-registry/docs"
	"pedigree-registry/internal/adapters/cache/memcache"
	"pedigree-registry/internal/adapters/cache/rediscache"
	"pedigree-registry/internal/adapters/directory/memdir"
	"pedigree-registry/internal/adapters/notify/lognotify"
	"pedigree-registry/internal/adapters/notify/redisnotify"
	mem "pedigree-registry/internal/adapters/storage/memory"
	pg "pedigree-registry/internal/adapters/storage/postgres"
	"pedigree-registry/internal/config"
	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/domain/links"
	"pedigree-registry/internal/domain/matching"
	"pedigree-registry/internal/domain/pedigree"
	"pedigree-registry/internal/domain/privacy"
	"pedigree-registry/internal/middleware"
	"pedigree-registry/internal/platform/logger"
	"pedigree-registry/internal/platform/retry"
	"pedigree-registry/internal/ports/auth"
	"pedigree-registry/internal/ports/cache"
	"pedigree-registry/internal/ports/directory"
	"pedigree-registry/internal/ports/graphlock"
	"pedigree-registry/internal/ports/notify"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Opcional: cache de COI y notificaciones vía pub/sub.
	Redis *redis.Client
	// Opcional: si es nil se usa un directorio en memoria vacío.
	Directory directory.Directory

	Config config.Config
	Logger logger.Logger
}

// App agrupa el handler HTTP y los procesos de fondo que main debe arrancar.
type App struct {
	Handler http.Handler
	Sweeper *links.Sweeper
}

func New(opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	cfg := opts.Config

	bands := pedigree.RiskBands{
		ModerateAt: cfg.COI.ModerateAt,
		HighAbove:  cfg.COI.HighAbove,
		CriticalAt: cfg.COI.CriticalAt,
	}
	if bands == (pedigree.RiskBands{}) {
		bands = pedigree.DefaultRiskBands()
	}
	if err := bands.Validate(); err != nil {
		return nil, err
	}

	var (
		animalRepo  animals.Repository
		privacyRepo privacy.Repository
		codeRepo    matching.CodeRepository
		linkRepo    links.Repository
		edgeLock    graphlock.Locker
	)
	if opts.DB != nil {
		animalRepo = pg.NewAnimalsRepo(opts.DB)
		privacyRepo = pg.NewPrivacyRepo(opts.DB)
		codeRepo = pg.NewCodesRepo(opts.DB)
		linkRepo = pg.NewLinksRepo(opts.DB)
		edgeLock = pg.NewEdgeLock(opts.DB)
	} else {
		animalRepo = mem.NewAnimalRepo()
		privacyRepo = mem.NewPrivacyRepo()
		codeRepo = mem.NewCodeRepo()
		linkRepo = mem.NewLinkRepo()
		edgeLock = mem.NewEdgeLock()
	}

	var (
		coiCache cache.Cache
		notifier notify.Notifier
	)
	if opts.Redis != nil {
		coiCache = rediscache.New(opts.Redis, "")
		notifier = redisnotify.New(opts.Redis, cfg.Redis.Channel)
	} else {
		coiCache = memcache.New()
		notifier = lognotify.New(log)
	}

	dir := opts.Directory
	if dir == nil {
		dir = memdir.New()
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalRepo, log)
	animalsSvc.SetEdgeLock(edgeLock)
	privacySvc := privacy.NewService(privacyRepo, animalsSvc, log)
	matchingSvc := matching.NewService(animalsSvc, privacySvc, codeRepo, dir, log)
	matchingSvc.SetCodeTTL(cfg.Links.ExchangeCodeTTL)

	linksSvc := links.NewService(links.Deps{
		Repo:      linkRepo,
		Animals:   animalsSvc,
		Privacy:   privacySvc,
		Directory: dir,
		Notifier:  notifier,
		Purger:    coiCache,
		Logger:    log,
	})
	linksSvc.SetRequestTTL(cfg.Links.RequestTTL)

	// El ciclo local/cross-tenant se valida sobre ambas aristas.
	animalsSvc.SetExternalEdges(linksSvc)
	animalsSvc.SetPurger(coiCache)
	privacySvc.SetPurger(coiCache)

	resolver := pedigree.NewResolver(animalsSvc, linksSvc, privacySvc, log, pedigree.Options{
		DefaultGenerations: cfg.Pedigree.DefaultGenerations,
		MaxGenerations:     cfg.Pedigree.MaxGenerations,
		FanOut:             cfg.Pedigree.FanOut,
		Retry: retry.Policy{
			MaxRetries:      cfg.Pedigree.ReadRetries,
			InitialInterval: cfg.Pedigree.ReadRetryInterval,
		},
	})
	pedigreeSvc := pedigree.NewService(resolver, coiCache, bands, cfg.COI.CacheTTL, log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	privacy.RegisterRoutes(r, privacySvc)
	matching.RegisterRoutes(r, matchingSvc)
	links.RegisterRoutes(r, linksSvc)
	pedigree.RegisterRoutes(r, pedigreeSvc)

	return &App{
		Handler: r,
		Sweeper: links.NewSweeper(linksSvc, cfg.Links.SweepInterval, log),
	}, nil
}
