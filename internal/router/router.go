package router

import (
	"database/sql"
	"net/http"
	"os"

	"pet-foster-homes/internal/adapters/notify/webhook"
	mem "pet-foster-homes/internal/adapters/storage/memory"
	pg "pet-foster-homes/internal/adapters/storage/postgres"
	"pet-foster-homes/internal/adapters/storage/uploads"
	"pet-foster-homes/internal/domain/homes"
	"pet-foster-homes/internal/domain/identity"
	"pet-foster-homes/internal/domain/stayrequests"
	"pet-foster-homes/internal/middleware"
	"pet-foster-homes/internal/platform/httpclient"
	"pet-foster-homes/internal/platform/logger"
	"pet-foster-homes/internal/ports/auth"

	_ "pet-foster-homes/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jub0bs/fcors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	TokenIssuer   auth.TokenIssuer   // puede ser nil (sin campo token en authenticate)
	TokenVerifier auth.TokenVerifier // puede ser nil (modo dev: headers X-Debug-*)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	UploadsDir string // default: env UPLOADS_DIR o ./uploads
	WebhookURL string // opcional: aviso de cambio de estado

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// CORS: el consumidor es una SPA servida desde otro origen.
	cors, _ := fcors.AllowAccess(
		fcors.FromAnyOrigin(),
		fcors.WithMethods(
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		),
		fcors.WithRequestHeaders("Authorization", "Content-Type", middleware.IdempotencyHeader),
	)
	if cors != nil {
		r.Use(cors)
	}

	r.Use(middleware.AuthContext(opts.TokenVerifier))

	idemCache := middleware.NewIdempotencyCache()
	go idemCache.Start()
	r.Use(middleware.Idempotency(idemCache))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		identityRepo identity.Repository
		homesRepo    homes.Repository
		requestsRepo stayrequests.Repository
	)

	// Si no te pasan DB explícita, intenta por env (dev/handoff).
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		identityRepo = pg.NewIdentityRepo(db)
		homesRepo = pg.NewHomesRepo(db)
		requestsRepo = pg.NewStayRequestsRepo(db)
	} else {
		identityRepo = mem.NewIdentityRepo()
		homesRepo = mem.NewHomesRepo()
		requestsRepo = mem.NewStayRequestsRepo()
	}

	uploadsDir := opts.UploadsDir
	if uploadsDir == "" {
		uploadsDir = os.Getenv("UPLOADS_DIR")
	}
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	images, err := uploads.NewLocal(uploadsDir)
	if err != nil {
		log.Error("uploads dir unavailable, using temp dir", map[string]any{"dir": uploadsDir, "error": err.Error()})
		images, _ = uploads.NewLocal(os.TempDir())
	}

	// Services por módulo
	identitySvc := identity.NewService(identityRepo)
	homesSvc := homes.NewService(homesRepo)
	requestsSvc := stayrequests.NewService(requestsRepo, homesSvc)

	webhookURL := opts.WebhookURL
	if webhookURL == "" {
		webhookURL = os.Getenv("WEBHOOK_URL")
	}
	if webhookURL != "" {
		requestsSvc = requestsSvc.WithNotifier(webhook.New(webhookURL, httpclient.New(httpclient.DefaultTimeout), log))
	}

	// Rutas por módulo
	homes.RegisterRoutes(r, homesSvc, identitySvc, opts.TokenIssuer, images)
	stayrequests.RegisterRoutes(r, requestsSvc, identitySvc, opts.TokenIssuer, images)

	// Imágenes subidas + docs
	if images != nil {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(images.Dir())))
		r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
			fs.ServeHTTP(w, req)
		})
	}
	r.Get("/swagger/*", httpSwagger.Handler())

	return r
}
