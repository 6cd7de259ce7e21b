package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	visitdomain "github.com/sundries-services/sundries/internal/visit/domain"
)

type createVisitRequest struct {
	CareHomeID string    `json:"careHomeId"`
	SupplierID string    `json:"supplierId"`
	VisitedAt  time.Time `json:"visitedAt"`
	Notes      string    `json:"notes"`
}

type addVisitItemRequest struct {
	ResidentID  string          `json:"residentId"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VatRate     decimal.Decimal `json:"vatRate"`
}

type patchVisitItemRequest struct {
	Description *string          `json:"description"`
	Qty         *decimal.Decimal `json:"qty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	VatRate     *decimal.Decimal `json:"vatRate"`
}

func (s *Server) CreateVisit(c *gin.Context) {
	var req createVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.visitSvc.Create(c.Request.Context(), visitdomain.CreateVisitRequest{
		CareHomeID: strings.TrimSpace(req.CareHomeID),
		SupplierID: strings.TrimSpace(req.SupplierID),
		VisitedAt:  req.VisitedAt,
		Notes:      req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListVisits(c *gin.Context) {
	req := visitdomain.ListVisitsRequest{
		SupplierID: c.Query("supplierId"),
		CareHomeID: c.Query("careHomeId"),
		Status:     c.Query("status"),
	}
	if from, ok := parseTimeQuery(c, "from"); ok {
		req.From = from
	}
	if to, ok := parseTimeQuery(c, "to"); ok {
		req.To = to
	}

	resp, err := s.visitSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ConfirmVisit(c *gin.Context) {
	resp, err := s.visitSvc.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddVisitItem(c *gin.Context) {
	var req addVisitItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.visitSvc.AddItem(c.Request.Context(), c.Param("id"), visitdomain.AddItemRequest{
		ResidentID:  strings.TrimSpace(req.ResidentID),
		Description: strings.TrimSpace(req.Description),
		Qty:         req.Qty,
		UnitPrice:   req.UnitPrice,
		VatRate:     req.VatRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) PatchVisitItem(c *gin.Context) {
	var req patchVisitItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.visitSvc.PatchItem(c.Request.Context(), c.Param("id"), visitdomain.PatchItemRequest{
		Description: req.Description,
		Qty:         req.Qty,
		UnitPrice:   req.UnitPrice,
		VatRate:     req.VatRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ClientList(c *gin.Context) {
	resp, err := s.visitSvc.ClientList(c.Request.Context(), c.Param("supplierId"), c.Query("visitId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// parseTimeQuery reads an RFC 3339 or date-only query parameter.
func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true
	}
	return nil, false
}
