// Package server exposes a finished reconciliation run over HTTP. The
// pipeline itself is pure, so the server memoizes the latest report for the
// configured TTL and recomputes lazily on the first request after expiry.
package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hours-reconciliation/internal/config"
	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/gateway"
)

// Reconciler runs the pipeline. Satisfied by usecase.ReconciliationUseCase.
type Reconciler interface {
	Reconcile(ctx context.Context, timesheetPaths []string, payrollPath string) (*domain.Report, error)
}

// Server serves reconciliation results over a JSON API.
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	cache  *reportCache
	excel  *gateway.ExcelReportWriter
	log    zerolog.Logger
}

// New builds the server around a reconciler. Timesheet paths are resolved
// from the configured glob on every recompute, so files dropped in after
// startup are picked up once the cache expires.
func New(rec Reconciler, cfg *config.Config, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	runner := func(ctx context.Context) (*domain.Report, error) {
		paths, err := filepath.Glob(cfg.Sources.TimesheetGlob)
		if err != nil {
			return nil, fmt.Errorf("bad timesheet glob %q: %w", cfg.Sources.TimesheetGlob, err)
		}
		sort.Strings(paths)
		return rec.Reconcile(ctx, paths, cfg.Sources.PayrollFile)
	}

	s := &Server{
		router: gin.New(),
		cfg:    cfg,
		cache:  newReportCache(runner, cfg.Server.CacheTTL),
		excel:  gateway.NewExcelReportWriter(),
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api/v1")
	{
		api.GET("/report", s.getReport)
		api.GET("/employees", s.getEmployees)
		api.GET("/departments", s.getDepartments)
		api.GET("/flags", s.getFlags)
		api.GET("/statistics", s.getStatistics)
		api.GET("/tables/:name", s.getTable)
		api.GET("/export/xlsx", s.exportExcel)
		api.GET("/export/csv/:name", s.exportCSV)
		api.POST("/refresh", s.refresh)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("request")
	}
}

// Run starts the listener on the configured port.
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%d", s.cfg.Server.Port))
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) report(c *gin.Context) (*cachedReport, bool) {
	cached, err := s.cache.Get(c.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("reconciliation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	c.Header("X-Run-ID", cached.RunID)
	return cached, true
}

func (s *Server) getReport(c *gin.Context) {
	cached, ok := s.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id":      cached.RunID,
		"computed_at": cached.ComputedAt,
		"report":      cached.Report,
	})
}

func (s *Server) getEmployees(c *gin.Context) {
	cached, ok := s.report(c)
	if !ok {
		return
	}
	employees := cached.Report.Employees
	if dept := c.Query("department"); dept != "" {
		filtered := make([]domain.EmployeeComparison, 0, len(employees))
		for _, e := range employees {
			if strings.EqualFold(e.Department, dept) {
				filtered = append(filtered, e)
			}
		}
		employees = filtered
	}
	if c.Query("mismatched") == "true" {
		filtered := make([]domain.EmployeeComparison, 0, len(employees))
		for _, e := range employees {
			if e.Mismatch {
				filtered = append(filtered, e)
			}
		}
		employees = filtered
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees, "count": len(employees)})
}

func (s *Server) getDepartments(c *gin.Context) {
	cached, ok := s.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": cached.Report.Departments})
}

func (s *Server) getFlags(c *gin.Context) {
	cached, ok := s.report(c)
	if !ok {
		return
	}
	flags := cached.Report.Flags
	if sev := c.Query("severity"); sev != "" {
		filtered := make([]domain.AnomalyFlag, 0, len(flags))
		for _, f := range flags {
			if strings.EqualFold(string(f.Severity), sev) {
				filtered = append(filtered, f)
			}
		}
		flags = filtered
	}
	c.JSON(http.StatusOK, gin.H{"flags": flags, "count": len(flags)})
}

func (s *Server) getStatistics(c *gin.Context) {
	cached, ok := s.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cached.Report.Statistics)
}

func tableByName(r *domain.Report, name string) (domain.Table, bool) {
	switch strings.ToLower(name) {
	case "employees", "hours_comparison":
		return r.EmployeeTable(), true
	case "departments", "department_summary":
		return r.DepartmentTable(), true
	case "flags", "anomalies":
		return r.FlagTable(), true
	case "statistics", "summary_statistics":
		return r.StatisticsTable(), true
	}
	return domain.Table{}, false
}

func (s *Server) getTable(c *gin.Context) {
	cached, ok := s.report(c)
	if !ok {
		return
	}
	table, found := tableByName(cached.Report, c.Param("name"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table: " + c.Param("name")})
		return
	}
	c.JSON(http.StatusOK, table)
}

func (s *Server) exportCSV(c *gin.Context) {
	cached, ok := s.report(c)
	if !ok {
		return
	}
	table, found := tableByName(cached.Report, c.Param("name"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table: " + c.Param("name")})
		return
	}

	filename := strings.ToLower(strings.ReplaceAll(table.Name, " ", "_")) + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv")
	if err := writeTableCSV(c.Writer, table); err != nil {
		s.log.Error().Err(err).Str("table", table.Name).Msg("csv export failed")
	}
}

func (s *Server) exportExcel(c *gin.Context) {
	cached, ok := s.report(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="hours_reconciliation_`+cached.RunID+`.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := s.excel.WriteTo(c.Writer, cached.Report); err != nil {
		s.log.Error().Err(err).Msg("xlsx export failed")
	}
}

func (s *Server) refresh(c *gin.Context) {
	s.cache.Invalidate()
	cached, ok := s.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": cached.RunID, "computed_at": cached.ComputedAt})
}
