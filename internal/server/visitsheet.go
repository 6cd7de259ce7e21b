package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	visitsheetdomain "github.com/sundries-services/sundries/internal/visitsheet/domain"
)

type createVisitSheetRequest struct {
	CareHomeID string    `json:"careHomeId"`
	VendorID   string    `json:"vendorId"`
	VisitDate  time.Time `json:"visitDate"`
}

type signVisitSheetRequest struct {
	Signed bool `json:"signed"`
}

func (s *Server) ListVisitSheets(c *gin.Context) {
	resp, err := s.visitSheetSvc.List(c.Request.Context(), visitsheetdomain.ListSheetsRequest{
		CareHomeID: c.Query("careHomeId"),
		VendorID:   c.Query("vendorId"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateVisitSheet(c *gin.Context) {
	var req createVisitSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.visitSheetSvc.Create(c.Request.Context(), visitsheetdomain.CreateSheetRequest{
		CareHomeID: strings.TrimSpace(req.CareHomeID),
		VendorID:   strings.TrimSpace(req.VendorID),
		VisitDate:  req.VisitDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetVisitSheet(c *gin.Context) {
	resp, err := s.visitSheetSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SignVisitSheet(c *gin.Context) {
	var req signVisitSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !req.Signed {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.visitSheetSvc.Sign(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
