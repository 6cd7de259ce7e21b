package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sundries-services/sundries/internal/auth"
	authdomain "github.com/sundries-services/sundries/internal/auth/domain"
)

type createUserRequest struct {
	OID     string   `json:"oid"`
	UPN     string   `json:"upn"`
	Role    string   `json:"role"`
	HomeIDs []string `json:"homeIds"`
}

type homeAssignment struct {
	CareHomeID string `json:"careHomeId"`
	Role       string `json:"role"`
}

type replaceAssignmentsRequest struct {
	Assignments []homeAssignment `json:"assignments"`
}

func (s *Server) Me(c *gin.Context) {
	principal, _ := auth.PrincipalFromContext(c.Request.Context())

	user, err := s.userSvc.EnsureUser(c.Request.Context(), principal)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"user":    user,
		"roles":   principal.Roles,
		"isAdmin": principal.IsAdmin(),
	}})
}

func (s *Server) ListUsers(c *gin.Context) {
	resp, err := s.userSvc.ListUsers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.userSvc.CreateUser(c.Request.Context(), authdomain.CreateUserRequest{
		OID:     strings.TrimSpace(req.OID),
		UPN:     strings.TrimSpace(req.UPN),
		Role:    strings.TrimSpace(req.Role),
		HomeIDs: req.HomeIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ReplaceUserHomes(c *gin.Context) {
	var req replaceAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	assignments := make([]authdomain.HomeAssignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		assignments = append(assignments, authdomain.HomeAssignment{
			CareHomeID: strings.TrimSpace(a.CareHomeID),
			Role:       strings.TrimSpace(a.Role),
		})
	}

	resp, err := s.userSvc.ReplaceHomeRoles(c.Request.Context(), c.Param("id"), assignments)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAuditLogs(c *gin.Context) {
	limit := 100
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		limit = parsed
	}

	resp, err := s.auditSvc.List(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
