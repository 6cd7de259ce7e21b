package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sundries-services/sundries/internal/audit"
	auditdomain "github.com/sundries-services/sundries/internal/audit/domain"
	"github.com/sundries-services/sundries/internal/auth"
	authdomain "github.com/sundries-services/sundries/internal/auth/domain"
	"github.com/sundries-services/sundries/internal/carehome"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	"github.com/sundries-services/sundries/internal/config"
	"github.com/sundries-services/sundries/internal/consent"
	consentdomain "github.com/sundries-services/sundries/internal/consent/domain"
	"github.com/sundries-services/sundries/internal/invoice"
	invoicedomain "github.com/sundries-services/sundries/internal/invoice/domain"
	"github.com/sundries-services/sundries/internal/newspaper"
	newspaperdomain "github.com/sundries-services/sundries/internal/newspaper/domain"
	"github.com/sundries-services/sundries/internal/priceitem"
	priceitemdomain "github.com/sundries-services/sundries/internal/priceitem/domain"
	"github.com/sundries-services/sundries/internal/providers"
	"github.com/sundries-services/sundries/internal/resident"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	"github.com/sundries-services/sundries/internal/roster"
	"github.com/sundries-services/sundries/internal/sale"
	saledomain "github.com/sundries-services/sundries/internal/sale/domain"
	"github.com/sundries-services/sundries/internal/supplier"
	supplierdomain "github.com/sundries-services/sundries/internal/supplier/domain"
	"github.com/sundries-services/sundries/internal/vendors"
	vendordomain "github.com/sundries-services/sundries/internal/vendors/domain"
	"github.com/sundries-services/sundries/internal/visit"
	visitdomain "github.com/sundries-services/sundries/internal/visit/domain"
	"github.com/sundries-services/sundries/internal/visitsheet"
	visitsheetdomain "github.com/sundries-services/sundries/internal/visitsheet/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	audit.Module,
	auth.Module,
	carehome.Module,
	vendors.Module,
	priceitem.Module,
	resident.Module,
	roster.Module,
	supplier.Module,
	consent.Module,
	visit.Module,
	visitsheet.Module,
	invoice.Module,
	sale.Module,
	newspaper.Module,
	providers.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, s *Server) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: s.Engine(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.ListenAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	log           *zap.Logger
	verifier      *auth.Verifier
	userSvc       authdomain.Service
	auditSvc      auditdomain.Recorder
	careHomeSvc   carehomedomain.Service
	vendorSvc     vendordomain.Service
	priceItemSvc  priceitemdomain.Service
	residentSvc   residentdomain.Service
	supplierSvc   supplierdomain.Service
	consentSvc    consentdomain.Service
	visitSvc      visitdomain.Service
	visitSheetSvc visitsheetdomain.Service
	invoiceSvc    invoicedomain.Service
	saleSvc       saledomain.Service
	newspaperSvc  newspaperdomain.Service
	syncer        roster.Syncer
}

type Params struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	Log           *zap.Logger
	Verifier      *auth.Verifier
	UserSvc       authdomain.Service
	AuditSvc      auditdomain.Recorder
	CareHomeSvc   carehomedomain.Service
	VendorSvc     vendordomain.Service
	PriceItemSvc  priceitemdomain.Service
	ResidentSvc   residentdomain.Service
	SupplierSvc   supplierdomain.Service
	ConsentSvc    consentdomain.Service
	VisitSvc      visitdomain.Service
	VisitSheetSvc visitsheetdomain.Service
	InvoiceSvc    invoicedomain.Service
	SaleSvc       saledomain.Service
	NewspaperSvc  newspaperdomain.Service
	Syncer        roster.Syncer
}

func NewServer(p Params) *Server {
	s := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		log:           p.Log.Named("http"),
		verifier:      p.Verifier,
		userSvc:       p.UserSvc,
		auditSvc:      p.AuditSvc,
		careHomeSvc:   p.CareHomeSvc,
		vendorSvc:     p.VendorSvc,
		priceItemSvc:  p.PriceItemSvc,
		residentSvc:   p.ResidentSvc,
		supplierSvc:   p.SupplierSvc,
		consentSvc:    p.ConsentSvc,
		visitSvc:      p.VisitSvc,
		visitSheetSvc: p.VisitSheetSvc,
		invoiceSvc:    p.InvoiceSvc,
		saleSvc:       p.SaleSvc,
		newspaperSvc:  p.NewspaperSvc,
		syncer:        p.Syncer,
	}

	s.registerAPIRoutes()
	s.registerAdminRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/", s.Authenticate())

	api.GET("/me", s.Me)

	api.GET("/carehomes", s.ListCareHomes)
	api.POST("/carehomes", s.CreateCareHome)

	api.GET("/suppliers", s.ListSuppliers)
	api.POST("/suppliers", s.CreateSupplier)

	api.GET("/residents", s.ListResidents)
	api.POST("/residents", s.CreateResident)
	api.POST("/residents/sync", s.SyncResidents)
	api.GET("/roster-residents", s.RequireHomeAccess(), s.ListRosterResidents)

	api.GET("/resident-consents", s.RequireHomeAccess(), s.ListResidentConsents)
	api.PATCH("/resident-consents/:id", s.PatchResidentConsent)
	api.POST("/resident-consents/bootstrap", s.BootstrapResidentConsents)

	api.GET("/residents/:id/consents", s.ListConsents)
	api.POST("/consents", s.CreateConsent)
	api.PATCH("/consents/:id", s.UpdateConsent)

	api.POST("/visits", s.CreateVisit)
	api.GET("/visits", s.ListVisits)
	api.POST("/visits/:id/confirm", s.ConfirmVisit)
	api.POST("/visits/:id/items", s.AddVisitItem)
	api.PATCH("/visit-items/:id", s.PatchVisitItem)

	api.GET("/visit-sheets", s.RequireHomeAccess(), s.ListVisitSheets)
	api.POST("/visit-sheets", s.CreateVisitSheet)
	api.GET("/visit-sheets/:id", s.GetVisitSheet)
	api.POST("/visit-sheets/:id/sign", s.SignVisitSheet)

	api.GET("/providers/:supplierId/client-list", s.ClientList)

	api.POST("/invoices/generate", s.GenerateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoice)
	api.GET("/invoices/:id/pdf", s.InvoicePdf)

	api.GET("/vendors", s.ListVendors)
	api.POST("/vendors", s.RequireAdmin(), s.CreateVendor)
	api.PATCH("/vendors/:id", s.RequireAdmin(), s.UpdateVendor)

	api.GET("/price-items", s.ListPriceItems)
	api.POST("/price-items", s.RequireAdmin(), s.CreatePriceItem)
	api.PATCH("/price-items/:id", s.RequireAdmin(), s.UpdatePriceItem)

	api.GET("/sales", s.RequireHomeAccess(), s.ListSales)
	api.POST("/sales", s.CreateSale)
	api.DELETE("/sales/:id", s.DeleteSale)
	api.POST("/sales/bulk", s.BulkReconcileSales)
	api.POST("/sales/invoice", s.InvoiceSales)
	api.POST("/sales/invoice/preview", s.PreviewSalesInvoice)
	api.GET("/sales/invoices", s.RequireHomeAccess(), s.ListSalesInvoices)

	api.GET("/misc-expenses/residents", s.RequireHomeAccess(), s.MiscResidents)
	api.POST("/misc-expenses", s.CreateMiscExpense)

	api.GET("/newspapers", s.ListNewspapers)
	api.GET("/newspaper-orders", s.RequireHomeAccess(), s.ListNewspaperOrders)
	api.GET("/newspaper-orders/today", s.RequireHomeAccess(), s.TodayNewspaperOrders)
	api.POST("/newspaper-orders", s.UpsertNewspaperOrder)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.Authenticate(), s.RequireAdmin())

	admin.GET("/users", s.ListUsers)
	admin.POST("/users", s.CreateUser)
	admin.PATCH("/users/:id/homes", s.ReplaceUserHomes)
	admin.GET("/homes", s.ListCareHomes)
	admin.GET("/audit", s.ListAuditLogs)
}
