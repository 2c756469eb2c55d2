package directory

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/directory", h.query)
}

func (h *Handler) query(c *gin.Context) {
	filter := Filter{
		Search: c.Query("search"),
		Degree: c.Query("degree"),
	}
	// A non-integer batch is treated as absent rather than rejected.
	if raw := strings.TrimSpace(c.Query("batch")); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filter.BatchYear = &year
		}
	}
	if raw := strings.TrimSpace(c.Query("skills")); raw != "" {
		filter.RequiredSkills = strings.Split(raw, ",")
	}

	results, err := h.Svc.QueryDirectory(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "repository_error", "failed to query directory", nil)
		return
	}
	respond.OK(c, results)
}
