package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/barberflow/booking-api/internal/domain/booking"
	"github.com/barberflow/booking-api/internal/httperr"
	"github.com/barberflow/booking-api/internal/httpresp"
	"github.com/barberflow/booking-api/internal/schedule"
)

type CatalogHandler struct {
	repo     domain.Repository
	registry *schedule.Registry
}

func NewCatalogHandler(repo domain.Repository, registry *schedule.Registry) *CatalogHandler {
	return &CatalogHandler{repo: repo, registry: registry}
}

type MasterResponse struct {
	Name  string `json:"name"`
	Days  []int  `json:"days"` // 0 = Monday .. 6 = Sunday
	Start string `json:"start"`
	End   string `json:"end"`
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.repo.ListServices(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load services.")
		return
	}

	httpresp.List(c, services)
}

func (h *CatalogHandler) ListMasters(c *gin.Context) {
	names := h.registry.Names()

	masters := make([]MasterResponse, 0, len(names))
	for _, name := range names {
		m, _ := h.registry.Get(name)

		days := make([]int, 0, len(m.Weekdays))
		for d := 0; d <= 6; d++ {
			if m.Weekdays[d] {
				days = append(days, d)
			}
		}

		masters = append(masters, MasterResponse{
			Name:  m.Name,
			Days:  days,
			Start: m.Start,
			End:   m.End,
		})
	}

	httpresp.List(c, masters)
}
