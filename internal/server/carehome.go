package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
)

type createCareHomeRequest struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

func (s *Server) ListCareHomes(c *gin.Context) {
	resp, err := s.careHomeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateCareHome(c *gin.Context) {
	var req createCareHomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.careHomeSvc.Create(c.Request.Context(), carehomedomain.CreateCareHomeRequest{
		Name:   strings.TrimSpace(req.Name),
		Region: strings.TrimSpace(req.Region),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}
