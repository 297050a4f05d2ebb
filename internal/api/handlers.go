package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newstv/internal/catalog"
	"newstv/internal/domain"
)

// Handler exposes the controller over HTTP.
type Handler struct {
	controller Controller
	logger     *slog.Logger
}

func NewHandler(controller Controller, logger *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		logger:     logger.With("component", "api"),
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"state":  h.controller.State().Kind(),
	})
}

// GetState returns the current filter and view state.
func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, toStateResponse(h.controller.Snapshot()))
}

// StreamState sends the current state and every later transition as
// server-sent "state" events until the client goes away.
func (h *Handler) StreamState(c *gin.Context) {
	snaps := h.controller.Snapshots(c.Request.Context())

	h.logger.Debug("state stream opened", "client_ip", c.ClientIP())
	defer h.logger.Debug("state stream closed", "client_ip", c.ClientIP())

	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		snap, ok := <-snaps
		if !ok {
			return false
		}
		c.SSEvent("state", toStateResponse(snap))
		return true
	})
}

func (h *Handler) SetCountry(c *gin.Context) {
	var req CountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.controller.SetCountry(req.Code)
	c.JSON(http.StatusAccepted, gin.H{"filter": h.controller.Filter()})
}

func (h *Handler) SetCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.controller.SetCategory(req.Name)
	c.JSON(http.StatusAccepted, gin.H{"filter": h.controller.Filter()})
}

func (h *Handler) Reload(c *gin.Context) {
	h.controller.Reload()
	c.JSON(http.StatusAccepted, gin.H{"filter": h.controller.Filter()})
}

func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogResponse{
		Countries:  catalog.Countries(),
		Categories: catalog.Categories(),
	})
}

func toStateResponse(snap domain.Snapshot) StateResponse {
	return StateResponse{
		Filter: snap.Filter,
		State:  domain.PayloadOf(snap.State),
	}
}
