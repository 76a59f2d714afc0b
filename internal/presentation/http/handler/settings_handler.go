package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SunnFlower47/kasir-print-service/internal/application/service"
	"github.com/SunnFlower47/kasir-print-service/internal/presentation/http/dto/response"
)

// SettingsHandler exposes the resolved print configuration.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetPrinterSettings returns the current printer configuration snapshot.
func (h *SettingsHandler) GetPrinterSettings(c *gin.Context) {
	settings := h.settingsService.PrinterSettings(c.Request.Context())
	response.OK(c, "Printer settings retrieved", settings)
}

// GetCompanySettings returns the branding configuration, merged with an
// outlet when ?outlet_id= is given.
func (h *SettingsHandler) GetCompanySettings(c *gin.Context) {
	outletID := c.Query("outlet_id")
	settings := h.settingsService.CompanySettings(c.Request.Context(), outletID)
	response.OK(c, "Company settings retrieved", settings)
}

// Reload refetches the settings store and replaces both cached snapshots.
func (h *SettingsHandler) Reload(c *gin.Context) {
	h.settingsService.Load(c.Request.Context())
	response.OK(c, "Settings reloaded", gin.H{
		"printer": h.settingsService.PrinterSettings(c.Request.Context()),
		"company": h.settingsService.CompanySettings(c.Request.Context(), ""),
	})
}
