// Package handler provides the HTTP handlers for the candles feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/candles/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// CandlesUsecase defines the use case consumed by CandlesHandler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CandlesUsecase interface {
	GetCandles(ctx context.Context, pair string, days int, g entity.Granularity) (entity.Series, error)
}

// PairChecker reports whether a pair is offered.
type PairChecker interface {
	IsActive(ctx context.Context, code string) (bool, error)
}

// CandlesHandler serves resampled candle data.
type CandlesHandler struct {
	uc    CandlesUsecase
	pairs PairChecker
}

// NewCandlesHandler creates a CandlesHandler with the given use case.
// A nil pairs accepts every pair.
func NewCandlesHandler(uc CandlesUsecase, pairs PairChecker) *CandlesHandler {
	return &CandlesHandler{uc: uc, pairs: pairs}
}

// GetCandlesHandler returns the candles of a pair as JSON.
//
// Example:
// GET /api/v1/candles/:pair?days=1&sampling=raw
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	pair := c.Param("pair")

	var q dto.CandlesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := entity.ParseGranularity(q.Sampling)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.pairs != nil {
		ok, err := h.pairs.IsActive(c.Request.Context(), pair)
		if err != nil {
			slog.Error("pair lookup failed", "pair", pair, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up pair"})
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown pair: " + pair})
			return
		}
	}

	candles, err := h.uc.GetCandles(c.Request.Context(), pair, q.Days, g)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, dto.CandleResponse{
			Time:   x.Time.UTC().Format(time.RFC3339),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}

	c.JSON(http.StatusOK, out)
}
