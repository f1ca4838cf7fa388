// Package handler provides the HTTP handlers for the analytics feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"crypto_dashboard/internal/feature/analytics/domain/entity"
	"crypto_dashboard/internal/feature/analytics/transport/http/dto"
	"crypto_dashboard/internal/feature/analytics/usecase"
	candle "crypto_dashboard/internal/feature/candles/domain/entity"

	"github.com/gin-gonic/gin"
)

// DashboardUsecase defines the use case consumed by DashboardHandler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type DashboardUsecase interface {
	Build(ctx context.Context, q entity.Query) (*entity.Dashboard, error)
	Export(ctx context.Context, q entity.Query) (entity.ExportTable, error)
}

type DashboardHandler struct {
	uc DashboardUsecase
}

func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard runs one pipeline pass and returns it as JSON.
//
// Example:
// GET /api/v1/dashboard?pair=BTC-USD&days=1&sampling=raw&threshold=2
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	d, err := h.uc.Build(c.Request.Context(), q)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(d))
}

// ExportCSV runs one pipeline pass and downloads its analytics table.
//
// Example:
// GET /api/v1/export.csv?pair=BTC-USD&days=7&sampling=5min
func (h *DashboardHandler) ExportCSV(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	table, err := h.uc.Export(c.Request.Context(), q)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="analytics.csv"`)
	c.Status(http.StatusOK)
	if err := usecase.WriteCSV(c.Writer, table); err != nil {
		slog.Warn("failed to write csv export", "pair", q.Pair, "error", err)
	}
}

// Options returns the timeframes, sampling modes and threshold bounds the
// dashboard accepts.
//
// Example:
// GET /api/v1/options
func (h *DashboardHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewOptionsResponse())
}

func bindQuery(c *gin.Context) (entity.Query, bool) {
	var in dto.DashboardQuery
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return entity.Query{}, false
	}
	g, err := candle.ParseGranularity(in.Sampling)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return entity.Query{}, false
	}
	return entity.Query{Pair: in.Pair, Days: in.Days, Sampling: g, Threshold: in.Threshold}, true
}

// statusFor maps usecase errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuery), errors.Is(err, usecase.ErrUnknownPair):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
