package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	newspaperdomain "github.com/sundries-services/sundries/internal/newspaper/domain"
)

type upsertNewspaperOrderRequest struct {
	CareHomeID       string          `json:"careHomeId"`
	RosterResidentID string          `json:"rosterResidentId"`
	NewspaperID      string          `json:"newspaperId"`
	ItemTitle        string          `json:"itemTitle"`
	Price            decimal.Decimal `json:"price"`
	Monday           *bool           `json:"monday"`
	Tuesday          *bool           `json:"tuesday"`
	Wednesday        *bool           `json:"wednesday"`
	Thursday         *bool           `json:"thursday"`
	Friday           *bool           `json:"friday"`
	Saturday         *bool           `json:"saturday"`
	Sunday           *bool           `json:"sunday"`
}

func (s *Server) ListNewspapers(c *gin.Context) {
	resp, err := s.newspaperSvc.ListTitles(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListNewspaperOrders(c *gin.Context) {
	resp, err := s.newspaperSvc.ListOrders(c.Request.Context(), newspaperdomain.ListOrdersRequest{
		CareHomeID:       c.Query("careHomeId"),
		RosterResidentID: c.Query("rosterResidentId"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TodayNewspaperOrders(c *gin.Context) {
	resp, err := s.newspaperSvc.TodayOrders(c.Request.Context(), c.Query("careHomeId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpsertNewspaperOrder(c *gin.Context) {
	var req upsertNewspaperOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.newspaperSvc.UpsertOrder(c.Request.Context(), newspaperdomain.UpsertOrderRequest{
		CareHomeID:       strings.TrimSpace(req.CareHomeID),
		RosterResidentID: strings.TrimSpace(req.RosterResidentID),
		NewspaperID:      strings.TrimSpace(req.NewspaperID),
		ItemTitle:        strings.TrimSpace(req.ItemTitle),
		Price:            req.Price,
		Monday:           req.Monday,
		Tuesday:          req.Tuesday,
		Wednesday:        req.Wednesday,
		Thursday:         req.Thursday,
		Friday:           req.Friday,
		Saturday:         req.Saturday,
		Sunday:           req.Sunday,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
