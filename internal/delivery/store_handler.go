package delivery

import (
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type StoreHandler struct {
	useCase usecase.StoreUseCase
	log     *logrus.Logger
	now     func() time.Time
}

func NewStoreHandler(uc usecase.StoreUseCase, logger *logrus.Logger) *StoreHandler {
	return &StoreHandler{
		useCase: uc,
		log:     logger,
		now:     time.Now,
	}
}

type publicStore struct {
	Info    *domain.StoreInfo    `json:"info"`
	Design  *domain.DesignConfig `json:"design"`
	OpenNow bool                 `json:"openNow"`
}

func (h *StoreHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/store", h.GetPublicStore)
}

func (h *StoreHandler) RegisterAdminRoutes(router gin.IRouter) {
	store := router.Group("/store")
	{
		store.GET("/info", h.GetStoreInfo)
		store.PUT("/info", h.UpdateStoreInfo)
		store.GET("/design", h.GetDesignConfig)
		store.PUT("/design", h.UpdateDesignConfig)
		store.GET("/seo", h.GetSEOHome)
		store.PUT("/seo", h.UpdateSEOHome)
	}
}

func (h *StoreHandler) GetPublicStore(c *gin.Context) {
	info, err := h.useCase.GetStoreInfo(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to load store info: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load store: "+err.Error())
		return
	}
	design, err := h.useCase.GetDesignConfig(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to load design config: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load store: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Store retrieved successfully", publicStore{
		Info:    info,
		Design:  design,
		OpenNow: info.IsOpenAt(h.now()),
	})
}

func (h *StoreHandler) GetStoreInfo(c *gin.Context) {
	info, err := h.useCase.GetStoreInfo(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to load store info: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load store info: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Store info retrieved successfully", info)
}

func (h *StoreHandler) UpdateStoreInfo(c *gin.Context) {
	var info domain.StoreInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		h.log.Errorf("Failed to bind JSON for store info: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	saved, err := h.useCase.UpdateStoreInfo(c.Request.Context(), &info)
	if err != nil {
		h.log.Errorf("Failed to update store info: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update store info: "+err.Error())
		return
	}

	h.log.Info("Store info updated successfully")
	SuccessResponse(c, http.StatusOK, "Store info updated successfully", saved)
}

func (h *StoreHandler) GetDesignConfig(c *gin.Context) {
	cfg, err := h.useCase.GetDesignConfig(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to load design config: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load design config: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Design config retrieved successfully", cfg)
}

func (h *StoreHandler) UpdateDesignConfig(c *gin.Context) {
	var cfg domain.DesignConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.log.Errorf("Failed to bind JSON for design config: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	saved, err := h.useCase.UpdateDesignConfig(c.Request.Context(), &cfg)
	if err != nil {
		h.log.Errorf("Failed to update design config: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update design config: "+err.Error())
		return
	}

	h.log.Info("Design config updated successfully")
	SuccessResponse(c, http.StatusOK, "Design config updated successfully", saved)
}

func (h *StoreHandler) GetSEOHome(c *gin.Context) {
	seo, err := h.useCase.GetSEOHome(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to load home SEO: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load home SEO: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Home SEO retrieved successfully", seo)
}

func (h *StoreHandler) UpdateSEOHome(c *gin.Context) {
	var seo domain.SEOHome
	if err := c.ShouldBindJSON(&seo); err != nil {
		h.log.Errorf("Failed to bind JSON for home SEO: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	saved, err := h.useCase.UpdateSEOHome(c.Request.Context(), &seo)
	if err != nil {
		h.log.Errorf("Failed to update home SEO: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update home SEO: "+err.Error())
		return
	}

	h.log.Info("Home SEO updated successfully")
	SuccessResponse(c, http.StatusOK, "Home SEO updated successfully", saved)
}
