package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
)

type createResidentRequest struct {
	CareHomeID string     `json:"careHomeId"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	DOB        *time.Time `json:"dob"`
}

type patchResidentConsentRequest struct {
	SundryConsentReceived *bool   `json:"sundryConsentReceived"`
	NewspapersConsent     *bool   `json:"newspapersConsent"`
	ChiropodyConsent      *bool   `json:"chiropodyConsent"`
	HairdressersConsent   *bool   `json:"hairdressersConsent"`
	ShopConsent           *bool   `json:"shopConsent"`
	OtherConsent          *bool   `json:"otherConsent"`
	Comments              *string `json:"comments"`
	ChiropodyNote         *string `json:"chiropodyNote"`
	ShopNote              *string `json:"shopNote"`
	CurrentResident       *bool   `json:"currentResident"`
}

type bootstrapConsentsRequest struct {
	CareHomeID string `json:"careHomeId"`
}

func (s *Server) ListResidents(c *gin.Context) {
	resp, err := s.residentSvc.ListResidents(c.Request.Context(), c.Query("careHomeId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateResident(c *gin.Context) {
	var req createResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.residentSvc.CreateResident(c.Request.Context(), residentdomain.CreateResidentRequest{
		CareHomeID: strings.TrimSpace(req.CareHomeID),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		DOB:        req.DOB,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) SyncResidents(c *gin.Context) {
	result, err := s.syncer.Sync(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) ListRosterResidents(c *gin.Context) {
	resp, err := s.residentSvc.ListRosterResidents(c.Request.Context(), c.Query("careHomeId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListResidentConsents(c *gin.Context) {
	resp, err := s.residentSvc.ListConsents(c.Request.Context(), c.Query("careHomeId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PatchResidentConsent(c *gin.Context) {
	var req patchResidentConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.residentSvc.PatchConsent(c.Request.Context(), c.Param("id"), residentdomain.PatchConsentRequest{
		SundryConsentReceived: req.SundryConsentReceived,
		NewspapersConsent:     req.NewspapersConsent,
		ChiropodyConsent:      req.ChiropodyConsent,
		HairdressersConsent:   req.HairdressersConsent,
		ShopConsent:           req.ShopConsent,
		OtherConsent:          req.OtherConsent,
		Comments:              req.Comments,
		ChiropodyNote:         req.ChiropodyNote,
		ShopNote:              req.ShopNote,
		CurrentResident:       req.CurrentResident,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) BootstrapResidentConsents(c *gin.Context) {
	var req bootstrapConsentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.residentSvc.BootstrapConsents(c.Request.Context(), strings.TrimSpace(req.CareHomeID))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}
