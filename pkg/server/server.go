// Package server exposes the aggregation engine over HTTP for uploaded
// delivery logs.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storj.io/delivery-metrics/pkg/delivery"
	"storj.io/delivery-metrics/pkg/ingest"
	"storj.io/delivery-metrics/pkg/report"
)

const (
	uploadField    = "file"
	reportIDHeader = "X-Report-ID"
	reportIDKey    = "report_id"
	costsFilename  = "customer-costs.csv"
)

type Config struct {
	// Options tunes the aggregation of every upload.
	Options delivery.Options

	// MaxUploadBytes caps the request body size.
	MaxUploadBytes int64
}

// Server handles delivery log uploads. Every request is aggregated on its
// own; nothing is kept between requests.
type Server struct {
	log *zap.Logger
	cfg Config
}

func New(log *zap.Logger, cfg Config) *Server {
	return &Server{log: log, cfg: cfg}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/reports", s.createReport)
		api.POST("/reports/costs.csv", s.exportCosts)
	}
	return router
}

type reportResponse struct {
	ReportID string         `json:"report_id"`
	Stats    statsResponse  `json:"stats"`
	Tables   []report.Table `json:"tables"`
}

type statsResponse struct {
	Rows     int `json:"rows"`
	Monthly  int `json:"monthly"`
	Weekly   int `json:"weekly"`
	PerVisit int `json:"per_visit"`
}

type errorResponse struct {
	Error          string   `json:"error"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

func (s *Server) createReport(c *gin.Context) {
	result, ok := s.aggregateUpload(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, reportResponse{
		ReportID: c.GetString(reportIDKey),
		Stats: statsResponse{
			Rows:     result.Stats.Rows,
			Monthly:  result.Stats.ByCadence[delivery.Monthly],
			Weekly:   result.Stats.ByCadence[delivery.Weekly],
			PerVisit: result.Stats.ByCadence[delivery.PerVisit],
		},
		Tables: report.Tables(result, s.weekdayOrder()),
	})
}

func (s *Server) exportCosts(c *gin.Context) {
	result, ok := s.aggregateUpload(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+costsFilename)
	c.Data(http.StatusOK, "text/csv", report.CostCSV(result))
}

// aggregateUpload aggregates the uploaded file. On failure it writes the
// error response and returns false.
func (s *Server) aggregateUpload(c *gin.Context) (*delivery.Result, bool) {
	log := s.requestLog(c)

	if s.cfg.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)
	}

	header, err := c.FormFile(uploadField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "upload is too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: `a delivery log must be uploaded in the "file" field`})
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		log.Error("unable to open upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "unable to open upload"})
		return nil, false
	}
	defer func() { _ = f.Close() }()

	result, err := ingest.Aggregate(c.Request.Context(), header.Filename, f, s.cfg.Options)
	if err != nil {
		log.Info("rejected upload", zap.String("filename", header.Filename), zap.Error(err))

		var mce *delivery.MissingColumnsError
		if errors.As(err, &mce) {
			c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), MissingColumns: mce.Columns})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}

	log.Info("aggregated upload",
		zap.String("filename", header.Filename),
		zap.Int("rows", result.Stats.Rows),
		zap.Int("customers", len(result.CostPerCustomer)))
	return result, true
}

func (s *Server) weekdayOrder() []string {
	if len(s.cfg.Options.WeekdayTokens) > 0 {
		return s.cfg.Options.WeekdayTokens
	}
	return delivery.DefaultWeekdayTokens
}

// logRequests assigns every request a report ID and logs it once handled.
func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	reportID := uuid.NewString()
	c.Set(reportIDKey, reportID)
	c.Header(reportIDHeader, reportID)

	c.Next()

	s.requestLog(c).Debug("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("duration", time.Since(start)))
}

func (s *Server) requestLog(c *gin.Context) *zap.Logger {
	return s.log.With(zap.String("report", c.GetString(reportIDKey)))
}
