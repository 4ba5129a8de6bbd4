package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/cache"
	"github.com/jlsurveying/jls-web/internal/config"
	fiberlog "github.com/jlsurveying/jls-web/internal/logger/adapter/fiber"
	"github.com/jlsurveying/jls-web/internal/web/handler"
	adminmessages "github.com/jlsurveying/jls-web/internal/web/handler/admin/messages"
	adminnews "github.com/jlsurveying/jls-web/internal/web/handler/admin/news"
	adminprojects "github.com/jlsurveying/jls-web/internal/web/handler/admin/projects"
	adminservices "github.com/jlsurveying/jls-web/internal/web/handler/admin/services"
	adminsettings "github.com/jlsurveying/jls-web/internal/web/handler/admin/settings"
	adminteam "github.com/jlsurveying/jls-web/internal/web/handler/admin/team"
	"github.com/jlsurveying/jls-web/internal/web/handler/api/account"
	"github.com/jlsurveying/jls-web/internal/web/handler/api/revalidate"
	"github.com/jlsurveying/jls-web/internal/web/handler/dashboard"
	"github.com/jlsurveying/jls-web/internal/web/handler/login"
	"github.com/jlsurveying/jls-web/internal/web/handler/logout"
	"github.com/jlsurveying/jls-web/internal/web/handler/public/about"
	"github.com/jlsurveying/jls-web/internal/web/handler/public/contact"
	"github.com/jlsurveying/jls-web/internal/web/handler/public/home"
	"github.com/jlsurveying/jls-web/internal/web/handler/public/news"
	"github.com/jlsurveying/jls-web/internal/web/handler/public/projects"
	"github.com/jlsurveying/jls-web/internal/web/handler/public/services"
	"github.com/jlsurveying/jls-web/internal/web/middleware/auth"
	"github.com/jlsurveying/jls-web/internal/web/middleware/site"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes prometheus metrics.
	MetricsPath = "/metrics"

	// StaticPath serves the embedded assets.
	StaticPath = "/static"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	pages        *cache.Cache
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and stops the server gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// newViews builds the template engine from the embedded templates,
// or from the working tree in dev mode.
func newViews(cfg *config.Config) *html.Engine {
	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	engine := html.NewFileSystem(httpFS, ".gohtml")

	if cfg.DevMode {
		engine = html.New("./internal/web/templates", ".gohtml")
		engine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	engine.AddFuncMap(templateFuncs())

	return engine
}

// errorHandler renders error pages for browsers and JSON for the API.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if strings.HasPrefix(c.Path(), handler.APIPath) {
		return c.Status(code).JSON(fiber.Map{"success": false, "error": http.StatusText(code)})
	}

	if code == fiber.StatusNotFound {
		return handler.NotFound(c)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")

	return handler.ServerError(c, http.StatusText(code))
}

// NewPageCache creates the page cache. Dashboard, API, static and
// monitoring routes are never cached.
func NewPageCache(cfg *config.Config) *cache.Cache {
	return cache.New(cfg.Webserver.CacheSize, cfg.Webserver.CacheTTL,
		handler.AdminPath, handler.APIPath, StaticPath, CheckAlivePath, MetricsPath)
}

// New creates a new web service with the given configuration.
// pages is the page cache and rv receives revalidations of admin changes;
// rv is usually pages itself or a broadcaster wrapping it.
func New(cfg *config.Config, db *gorm.DB, pages *cache.Cache, rv cache.Revalidator) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if pages == nil {
		pages = NewPageCache(cfg)
	}

	if rv == nil {
		rv = pages
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize:    8192,
			AppName:           cfg.Title,
			CaseSensitive:     true,
			Prefork:           false,
			Immutable:         true,
			Views:             newViews(cfg),
			PassLocalsToViews: true,
			ErrorHandler:      errorHandler,
		},
	)

	service := &Service{
		cfg:   cfg,
		App:   app,
		db:    db,
		pages: pages,
	}
	service.alive.Store(true)

	app.Use(fiberlog.New(fiberlog.Config{
		Config:      cfg.Log,
		SilentPaths: []string{CheckAlivePath, MetricsPath},
	}))

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.Alive() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(StaticPath,
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
				MaxAge:     3600, //nolint:mnd
			},
		),
	)

	if cfg.Webserver.CacheEnabled {
		app.Use(pages.Middleware())
	}

	app.Use(site.New(db))
	auth.Init(db)

	// public site
	home.Handler.Init(app, cfg, db)
	services.Handler.Init(app, cfg, db)
	projects.Handler.Init(app, cfg, db)
	news.Handler.Init(app, cfg, db)
	about.Handler.Init(app, cfg, db)
	contact.Handler.Init(app, cfg, db)

	// dashboard
	login.Handler.Init(app, cfg, db)
	logout.Handler.Init(app, cfg, db)
	dashboard.Handler.Init(app, cfg, db)

	adminservices.Handler.Revalidator = rv
	adminservices.Handler.Init(app, cfg, db)
	adminprojects.Handler.Revalidator = rv
	adminprojects.Handler.Init(app, cfg, db)
	adminnews.Handler.Revalidator = rv
	adminnews.Handler.Init(app, cfg, db)
	adminteam.Handler.Revalidator = rv
	adminteam.Handler.Init(app, cfg, db)
	adminmessages.Handler.Init(app, cfg, db)
	adminsettings.Handler.Revalidator = rv
	adminsettings.Handler.Init(app, cfg, db)

	// api
	account.Handler.Init(app, cfg, db)
	revalidate.Handler.Revalidator = rv
	revalidate.Handler.Init(app, cfg, db)

	return service
}
