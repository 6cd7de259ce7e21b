package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	priceitemdomain "github.com/sundries-services/sundries/internal/priceitem/domain"
)

type createPriceItemRequest struct {
	VendorID    string          `json:"vendorId"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ValidFrom   *time.Time      `json:"validFrom"`
}

type updatePriceItemRequest struct {
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ValidFrom   *time.Time       `json:"validFrom"`
	IsActive    *bool            `json:"isActive"`
}

func (s *Server) ListPriceItems(c *gin.Context) {
	resp, err := s.priceItemSvc.ListByVendor(c.Request.Context(), c.Query("vendorId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreatePriceItem(c *gin.Context) {
	var req createPriceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.priceItemSvc.Create(c.Request.Context(), priceitemdomain.CreatePriceItemRequest{
		VendorID:    strings.TrimSpace(req.VendorID),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		ValidFrom:   req.ValidFrom,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdatePriceItem(c *gin.Context) {
	var req updatePriceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.priceItemSvc.Update(c.Request.Context(), c.Param("id"), priceitemdomain.UpdatePriceItemRequest{
		Description: req.Description,
		Price:       req.Price,
		ValidFrom:   req.ValidFrom,
		IsActive:    req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
