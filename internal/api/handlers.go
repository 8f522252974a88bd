package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxregime/internal/breakeven"
	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/compare"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/output"
	"github.com/rgehrsitz/taxregime/internal/transform"
	"go.uber.org/zap"
)

var reportContentTypes = map[string]string{
	"console": "text/plain; charset=utf-8",
	"json":    "application/json",
	"csv":     "text/csv",
	"xlsx":    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Health reports liveness
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListRegimes lists the configured assessment years
func (s *Server) ListRegimes(c *gin.Context) {
	c.JSON(http.StatusOK, RegimesResponse{
		DefaultYear: s.defaultYear(),
		Years:       s.regimes.AvailableYears(),
		Metadata:    s.regimes.Metadata,
	})
}

// GetRegimes returns both regime tables for one year
func (s *Server) GetRegimes(c *gin.Context) {
	regimes, ok := s.lookup(c, c.Param("year"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, regimes)
}

// Calculate evaluates an input under a single regime
func (s *Server) Calculate(c *gin.Context) {
	var req CalculateRequest
	if !s.bind(c, &req) {
		return
	}
	name, err := domain.ParseRegimeName(strings.ToLower(strings.TrimSpace(req.Regime)))
	if err != nil {
		s.fail(c, err)
		return
	}
	regimes, ok := s.lookup(c, req.AssessmentYear)
	if !ok {
		return
	}
	regime, err := regimes.Get(name)
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.calc.Calculate(req.Input, regime.WithOptions(req.Options))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Compare evaluates an input under both regimes, after any what-if edits
func (s *Server) Compare(c *gin.Context) {
	var req CompareRequest
	if !s.bind(c, &req) {
		return
	}
	input, err := s.applyEdits(req.Input, req.Transforms, req.Templates)
	if err != nil {
		s.abort(c, http.StatusBadRequest, err)
		return
	}
	regimes, ok := s.lookup(c, req.AssessmentYear)
	if !ok {
		return
	}

	comparison, err := s.calc.CompareYear(input, regimes, req.Options)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, output.NewReport("", comparison))
}

// CompareProfiles compares named profiles against a base profile
func (s *Server) CompareProfiles(c *gin.Context) {
	var req ProfileCompareRequest
	if !s.bind(c, &req) {
		return
	}
	regimes, ok := s.lookup(c, req.AssessmentYear)
	if !ok {
		return
	}

	profiles := &domain.ProfileFile{AssessmentYear: req.AssessmentYear, Options: req.Options, Profiles: req.Profiles}
	compSet, err := s.compare.Compare(c.Request.Context(), profiles, regimes, compare.CompareOptions{
		BaseProfileName:     req.BaseProfile,
		Templates:           req.Templates,
		AlternativeProfiles: req.AlternativeProfiles,
		Options:             req.Options,
	})
	if err != nil {
		s.abort(c, statusFor(err, http.StatusBadRequest), err)
		return
	}
	c.JSON(http.StatusOK, compSet)
}

// BreakEven runs the break-even solver. An empty target runs both searches.
func (s *Server) BreakEven(c *gin.Context) {
	var req BreakEvenRequest
	if !s.bind(c, &req) {
		return
	}
	regimes, ok := s.lookup(c, req.AssessmentYear)
	if !ok {
		return
	}

	solverReq := breakeven.Request{
		Input:     req.Input,
		Regimes:   regimes,
		Options:   req.Options,
		MinIncome: req.MinIncome,
		MaxIncome: req.MaxIncome,
	}.WithDefaultRange()
	resp := BreakEvenResponse{AssessmentYear: regimes.New.AssessmentYear}

	if strings.TrimSpace(req.Target) == "" {
		combined, err := s.solver.SolveAll(c.Request.Context(), solverReq)
		if err != nil {
			s.fail(c, err)
			return
		}
		resp.Combined = combined
		c.JSON(http.StatusOK, resp)
		return
	}

	target, err := breakeven.ParseTarget(strings.ToLower(strings.TrimSpace(req.Target)))
	if err != nil {
		s.fail(c, err)
		return
	}
	solverReq.Target = target
	result, err := s.solver.Solve(c.Request.Context(), solverReq)
	if err != nil {
		s.fail(c, err)
		return
	}
	resp.Result = result
	c.JSON(http.StatusOK, resp)
}

// Sweep compares both regimes across an income range
func (s *Server) Sweep(c *gin.Context) {
	var req SweepRequest
	if !s.bind(c, &req) {
		return
	}
	regimes, ok := s.lookup(c, req.AssessmentYear)
	if !ok {
		return
	}

	points, err := s.calc.Sweep(c.Request.Context(), req.Input, regimes, req.Options, req.Sweep)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SweepResponse{
		AssessmentYear: regimes.New.AssessmentYear,
		Sweep:          req.Sweep,
		Points:         points,
	})
}

// Report renders a comparison report in the format named by ?format=
func (s *Server) Report(c *gin.Context) {
	formatName := output.NormalizeFormatName(c.DefaultQuery("format", "json"))
	formatter := output.GetFormatterByName(formatName)
	if formatter == nil {
		s.abort(c, http.StatusBadRequest, fmt.Errorf("unknown report format %q (valid: %s)",
			formatName, strings.Join(output.AvailableFormatterNames(), ", ")))
		return
	}

	var req ReportRequest
	if !s.bind(c, &req) {
		return
	}
	regimes, ok := s.lookup(c, req.AssessmentYear)
	if !ok {
		return
	}
	comparison, err := s.calc.CompareYear(req.Input, regimes, req.Options)
	if err != nil {
		s.fail(c, err)
		return
	}

	data, err := formatter.Format(output.NewReport(req.ProfileName, comparison))
	if err != nil {
		s.fail(c, err)
		return
	}
	if output.IsBinary(formatter) {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=tax_report_%s.%s", regimes.New.AssessmentYear, formatter.Name()))
	}
	c.Data(http.StatusOK, reportContentTypes[formatter.Name()], data)
}

func (s *Server) defaultYear() string {
	if s.cfg.DefaultAssessmentYear != "" {
		return s.cfg.DefaultAssessmentYear
	}
	return s.regimes.DefaultYear
}

// lookup resolves an assessment year, writing the error response on failure
func (s *Server) lookup(c *gin.Context, year string) (domain.YearRegimes, bool) {
	year = strings.TrimSpace(year)
	if year == "" {
		year = s.defaultYear()
	}
	regimes, err := s.regimes.Lookup(year)
	if err != nil {
		s.fail(c, err)
		return domain.YearRegimes{}, false
	}
	return regimes, true
}

func (s *Server) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.abort(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) applyEdits(input domain.TaxInput, specs, templates []string) (domain.TaxInput, error) {
	var transforms []transform.InputTransform
	registry := transform.NewTransformRegistry()
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return domain.TaxInput{}, err
		}
		transforms = append(transforms, t)
	}
	for _, name := range templates {
		tmpl, ok := s.compare.TemplateRegistry.Get(name)
		if !ok {
			return domain.TaxInput{}, fmt.Errorf("template %s not found", name)
		}
		transforms = append(transforms, tmpl.Transforms...)
	}
	if len(transforms) == 0 {
		return input, nil
	}
	return transform.ApplyTransforms(input, transforms)
}

func (s *Server) fail(c *gin.Context, err error) {
	s.abort(c, statusFor(err, http.StatusInternalServerError), err)
}

func (s *Server) abort(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request error", zap.String("request_id", GetRequestID(c)), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), RequestID: GetRequestID(c)})
}

// statusFor maps engine errors onto HTTP status codes
func statusFor(err error, fallback int) int {
	var cfgErr *domain.ConfigError
	var beErr *breakeven.BreakEvenError
	var tErr *transform.TransformError

	switch {
	case errors.Is(err, domain.ErrUnknownYear):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownRegime),
		errors.Is(err, calculation.ErrInvalidSweep):
		return http.StatusBadRequest
	case errors.As(err, &cfgErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.As(err, &tErr):
		return http.StatusBadRequest
	case errors.As(err, &beErr):
		switch beErr.Operation {
		case "validate_request", "parse_target":
			return http.StatusBadRequest
		}
		// SolveAll wraps the first search failure
		if beErr.Cause != nil {
			return statusFor(beErr.Cause, fallback)
		}
	}
	return fallback
}
