// Package handler provides the HTTP handlers for the pairs feature.
package handler

import (
	"context"
	"net/http"

	"crypto_dashboard/internal/feature/pairs/domain/entity"
	"crypto_dashboard/internal/feature/pairs/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// PairsUsecase defines the use case consumed by PairHandler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PairsUsecase interface {
	ListActivePairs(ctx context.Context) ([]entity.Pair, error)
}

// PairHandler serves the offered trading pairs.
type PairHandler struct {
	uc PairsUsecase
}

// NewPairHandler creates a new PairHandler.
func NewPairHandler(uc PairsUsecase) *PairHandler {
	return &PairHandler{uc: uc}
}

// List returns the active pairs in display order.
func (h *PairHandler) List(c *gin.Context) {
	pairs, err := h.uc.ListActivePairs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.PairItem, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, dto.PairItem{Code: p.Code, Name: p.Name})
	}
	c.JSON(http.StatusOK, out)
}
