package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	consentdomain "github.com/sundries-services/sundries/internal/consent/domain"
)

type createConsentRequest struct {
	ResidentID       string     `json:"residentId"`
	SupplierID       string     `json:"supplierId"`
	ServiceType      string     `json:"serviceType"`
	ConsentGivenAt   time.Time  `json:"consentGivenAt"`
	ConsentExpiresAt *time.Time `json:"consentExpiresAt"`
	Notes            string     `json:"notes"`
}

type updateConsentRequest struct {
	Status           *consentdomain.Status `json:"status"`
	ConsentExpiresAt *time.Time            `json:"consentExpiresAt"`
	Notes            *string               `json:"notes"`
}

func (s *Server) ListConsents(c *gin.Context) {
	resp, err := s.consentSvc.ListByResident(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateConsent(c *gin.Context) {
	var req createConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.consentSvc.Create(c.Request.Context(), consentdomain.CreateConsentRequest{
		ResidentID:       strings.TrimSpace(req.ResidentID),
		SupplierID:       strings.TrimSpace(req.SupplierID),
		ServiceType:      strings.TrimSpace(req.ServiceType),
		ConsentGivenAt:   req.ConsentGivenAt,
		ConsentExpiresAt: req.ConsentExpiresAt,
		Notes:            req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateConsent(c *gin.Context) {
	var req updateConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.consentSvc.Update(c.Request.Context(), c.Param("id"), consentdomain.UpdateConsentRequest{
		Status:           req.Status,
		ConsentExpiresAt: req.ConsentExpiresAt,
		Notes:            req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
