package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/category"
	"github.com/trezcool/beacon/core/opportunity"
	"github.com/trezcool/beacon/core/vendor"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		CategorySvc    *category.Service
		VendorSvc      *vendor.Service
		OpportunitySvc *opportunity.Service
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps  ServerDeps
		app   *echo.Echo
		errCh chan error
		sigCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:  deps,
		app:   echo.New(),
		errCh: make(chan error, 1),
		sigCh: make(chan os.Signal, 1),
	}
	s.setup()
	signal.Notify(s.sigCh, syscall.SIGINT, syscall.SIGTERM)
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	renderer, err := NewRenderer(conf)
	if err != nil {
		s.deps.Logger.Fatal("loading page templates", err)
	}
	s.app.Renderer = renderer
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	b := s.app.Group("/beacon")
	b.GET("", index)
	registerVendorAPI(b, s.deps.VendorSvc, s.deps.CategorySvc)
	registerOpportunityAPI(b, s.deps.OpportunitySvc)
}

func index(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "index", echo.Map{})
}

func (s *server) Start() {
	go func() {
		s.errCh <- s.app.Start(s.deps.Conf.Server.Address())
	}()
}

func (s *server) Shutdown(ctx context.Context) error { return s.app.Shutdown(ctx) }
func (s *server) Close() error                       { return s.app.Close() }
func (s *server) Errors() <-chan error               { return s.errCh }
func (s *server) ShutdownSignal() <-chan os.Signal   { return s.sigCh }

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
