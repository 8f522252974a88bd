// Package api exposes the regime engine over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxregime/internal/breakeven"
	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/compare"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"go.uber.org/zap"
)

// Server holds the engines behind every route
type Server struct {
	cfg     config.ServerConfig
	log     *zap.Logger
	regimes *domain.RegimeSet
	calc    *calculation.CalculationEngine
	solver  *breakeven.Solver
	compare *compare.CompareEngine
}

// NewServer wires the engines against a loaded regime set. A nil logger
// discards output.
func NewServer(cfg config.ServerConfig, regimes *domain.RegimeSet, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	calc := calculation.NewCalculationEngine()
	calc.SetLogger(log.Sugar())
	calc.Debug = log.Core().Enabled(zap.DebugLevel)

	return &Server{
		cfg:     cfg,
		log:     log,
		regimes: regimes,
		calc:    calc,
		solver:  breakeven.NewDefaultSolver(calc),
		compare: compare.NewCompareEngine(calc),
	}
}

// Router builds the gin engine with middleware and routes attached
func (s *Server) Router() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLoggingMiddleware(s.log))
	r.Use(configureCORS(s.cfg.CORS))

	r.GET("/health", s.Health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/regimes", s.ListRegimes)
		v1.GET("/regimes/:year", s.GetRegimes)

		tax := v1.Group("/tax")
		{
			tax.POST("/calculate", s.Calculate)
			tax.POST("/compare", s.Compare)
			tax.POST("/profiles/compare", s.CompareProfiles)
			tax.POST("/break-even", s.BreakEven)
			tax.POST("/sweep", s.Sweep)
			tax.POST("/report", s.Report)
		}
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("stage", s.cfg.Stage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
