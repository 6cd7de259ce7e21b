package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/sundries-services/sundries/internal/invoice/domain"
)

type generateInvoiceRequest struct {
	SupplierID string    `json:"supplierId"`
	CareHomeID string    `json:"careHomeId"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
}

func (s *Server) GenerateInvoice(c *gin.Context) {
	var req generateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.invoiceSvc.Generate(c.Request.Context(), invoicedomain.GenerateRequest{
		SupplierID: strings.TrimSpace(req.SupplierID),
		CareHomeID: strings.TrimSpace(req.CareHomeID),
		From:       req.From,
		To:         req.To,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (s *Server) ListInvoices(c *gin.Context) {
	req := invoicedomain.ListInvoicesRequest{
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

	resp, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) InvoicePdf(c *gin.Context) {
	detail, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	pdf, err := s.invoiceSvc.Pdf(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", detail.Invoice.InvoiceNo+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
