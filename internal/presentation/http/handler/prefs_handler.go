package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SunnFlower47/kasir-print-service/internal/presentation/http/dto/request"
	"github.com/SunnFlower47/kasir-print-service/internal/presentation/http/dto/response"
	"github.com/SunnFlower47/kasir-print-service/pkg/prefs"
)

// PrefsHandler reads and writes the persisted printing preference.
type PrefsHandler struct {
	store *prefs.Store
}

// NewPrefsHandler creates a new preferences handler.
func NewPrefsHandler(store *prefs.Store) *PrefsHandler {
	return &PrefsHandler{store: store}
}

// GetPrefs returns the persisted print preference.
func (h *PrefsHandler) GetPrefs(c *gin.Context) {
	response.OK(c, "Print preferences retrieved", h.store.Load())
}

// UpdatePrefs replaces the persisted print preference.
func (h *PrefsHandler) UpdatePrefs(c *gin.Context) {
	var req request.UpdatePrefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	p := prefs.PrintPrefs{
		Template:  req.Template,
		Scale:     req.Scale,
		AutoScale: req.AutoScale,
	}
	if p.Scale == 0 {
		p.Scale = prefs.Defaults().Scale
	}

	if err := h.store.Save(p); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Print preferences updated", p)
}
