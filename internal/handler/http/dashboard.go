package http

import (
	"net/http"

	"github.com/opshq/office-backend-go/internal/handler/http/response"
	"github.com/opshq/office-backend-go/internal/service/dashboard"
)

type DashboardHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(svc dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: svc}
}

// Overview implements DashboardHandler.
func (h *DashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.Overview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}
