package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	saledomain "github.com/sundries-services/sundries/internal/sale/domain"
)

type createSaleRequest struct {
	CareHomeID       string          `json:"careHomeId"`
	RosterResidentID string          `json:"rosterResidentId"`
	VendorID         string          `json:"vendorId"`
	PriceItemID      string          `json:"priceItemId"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Date             time.Time       `json:"date"`
}

type bulkReconcileRequest struct {
	CareHomeID string                     `json:"careHomeId"`
	VendorID   string                     `json:"vendorId"`
	Date       time.Time                  `json:"date"`
	Items      []saledomain.BulkSelection `json:"items"`
}

type invoiceSalesRequest struct {
	CareHomeID string     `json:"careHomeId"`
	VendorID   string     `json:"vendorId"`
	From       *time.Time `json:"from"`
	To         *time.Time `json:"to"`
	ToEmail    string     `json:"toEmail"`
}

type miscExpenseRequest struct {
	CareHomeID        string          `json:"careHomeId"`
	ResidentConsentID string          `json:"residentConsentId"`
	Type              string          `json:"type"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
}

func (s *Server) ListSales(c *gin.Context) {
	req := saledomain.ListSalesRequest{
		CareHomeID: c.Query("careHomeId"),
		VendorID:   c.Query("vendorId"),
	}
	if raw := strings.TrimSpace(c.Query("invoiced")); raw != "" {
		invoiced, err := strconv.ParseBool(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		req.Invoiced = &invoiced
	}

	resp, err := s.saleSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateSale(c *gin.Context) {
	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.saleSvc.Create(c.Request.Context(), saledomain.CreateSaleRequest{
		CareHomeID:       strings.TrimSpace(req.CareHomeID),
		RosterResidentID: strings.TrimSpace(req.RosterResidentID),
		VendorID:         strings.TrimSpace(req.VendorID),
		PriceItemID:      strings.TrimSpace(req.PriceItemID),
		Description:      strings.TrimSpace(req.Description),
		Price:            req.Price,
		Date:             req.Date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) DeleteSale(c *gin.Context) {
	if err := s.saleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) BulkReconcileSales(c *gin.Context) {
	var req bulkReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	count, err := s.saleSvc.BulkReconcile(c.Request.Context(), saledomain.BulkReconcileRequest{
		CareHomeID: strings.TrimSpace(req.CareHomeID),
		VendorID:   strings.TrimSpace(req.VendorID),
		Date:       req.Date,
		Items:      req.Items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"count": count}})
}

func (s *Server) InvoiceSales(c *gin.Context) {
	var req invoiceSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.saleSvc.InvoiceSales(c.Request.Context(), saledomain.InvoiceSalesRequest{
		CareHomeID: strings.TrimSpace(req.CareHomeID),
		VendorID:   strings.TrimSpace(req.VendorID),
		From:       req.From,
		To:         req.To,
		ToEmail:    strings.TrimSpace(req.ToEmail),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) PreviewSalesInvoice(c *gin.Context) {
	var req invoiceSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	pdf, invoiceNo, err := s.saleSvc.PreviewInvoice(c.Request.Context(), saledomain.InvoiceSalesRequest{
		CareHomeID: strings.TrimSpace(req.CareHomeID),
		VendorID:   strings.TrimSpace(req.VendorID),
		From:       req.From,
		To:         req.To,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=\""+invoiceNo+".pdf\"")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (s *Server) ListSalesInvoices(c *gin.Context) {
	resp, err := s.saleSvc.ListInvoices(c.Request.Context(), c.Query("careHomeId"), c.Query("vendorId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MiscResidents(c *gin.Context) {
	resp, err := s.saleSvc.MiscResidents(c.Request.Context(), c.Query("careHomeId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateMiscExpense(c *gin.Context) {
	var req miscExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.saleSvc.CreateMiscExpense(c.Request.Context(), saledomain.MiscExpenseRequest{
		CareHomeID:        strings.TrimSpace(req.CareHomeID),
		ResidentConsentID: strings.TrimSpace(req.ResidentConsentID),
		Type:              strings.TrimSpace(req.Type),
		Date:              req.Date,
		Description:       strings.TrimSpace(req.Description),
		Amount:            req.Amount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": result})
}
