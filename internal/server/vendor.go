package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	vendordomain "github.com/sundries-services/sundries/internal/vendors/domain"
)

type createVendorRequest struct {
	Name         string `json:"name"`
	AccountRef   string `json:"accountRef"`
	DefNomCode   string `json:"defNomCode"`
	TradeContact string `json:"tradeContact"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	Address3     string `json:"address3"`
	Address4     string `json:"address4"`
	Address5     string `json:"address5"`
}

type updateVendorRequest struct {
	Name         *string `json:"name"`
	AccountRef   *string `json:"accountRef"`
	DefNomCode   *string `json:"defNomCode"`
	TradeContact *string `json:"tradeContact"`
	Address1     *string `json:"address1"`
	Address2     *string `json:"address2"`
	Address3     *string `json:"address3"`
	Address4     *string `json:"address4"`
	Address5     *string `json:"address5"`
	IsActive     *bool   `json:"isActive"`
}

func (s *Server) ListVendors(c *gin.Context) {
	resp, err := s.vendorSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateVendor(c *gin.Context) {
	var req createVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.vendorSvc.Create(c.Request.Context(), vendordomain.CreateVendorRequest{
		Name:         strings.TrimSpace(req.Name),
		AccountRef:   strings.TrimSpace(req.AccountRef),
		DefNomCode:   strings.TrimSpace(req.DefNomCode),
		TradeContact: strings.TrimSpace(req.TradeContact),
		Address1:     strings.TrimSpace(req.Address1),
		Address2:     strings.TrimSpace(req.Address2),
		Address3:     strings.TrimSpace(req.Address3),
		Address4:     strings.TrimSpace(req.Address4),
		Address5:     strings.TrimSpace(req.Address5),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateVendor(c *gin.Context) {
	var req updateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.vendorSvc.Update(c.Request.Context(), c.Param("id"), vendordomain.UpdateVendorRequest{
		Name:         req.Name,
		AccountRef:   req.AccountRef,
		DefNomCode:   req.DefNomCode,
		TradeContact: req.TradeContact,
		Address1:     req.Address1,
		Address2:     req.Address2,
		Address3:     req.Address3,
		Address4:     req.Address4,
		Address5:     req.Address5,
		IsActive:     req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
