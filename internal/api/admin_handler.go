package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/lab-reservation-backend/internal/laboratory"
	"github.com/nekogravitycat/lab-reservation-backend/internal/reservation"
	"github.com/nekogravitycat/lab-reservation-backend/internal/user"
)

// AdminHandler serves the staff dashboard endpoints.
type AdminHandler struct {
	resvService reservation.Service
	labService  laboratory.Service
	userService user.Service
}

func NewAdminHandler(
	resvService reservation.Service,
	labService laboratory.Service,
	userService user.Service,
) *AdminHandler {
	return &AdminHandler{
		resvService: resvService,
		labService:  labService,
		userService: userService,
	}
}

// StatsResponse is the payload for GET /v1/admin/stats.
type StatsResponse struct {
	PendingReservations  int `json:"pending_reservations"`
	ApprovedReservations int `json:"approved_reservations"`
	ActiveLaboratories   int `json:"active_laboratories"`
	RegisteredUsers      int `json:"registered_users"`
}

// Stats returns headline counts for the staff dashboard.
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	pending, err := h.resvService.CountByStatus(ctx, reservation.StatusPending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect stats"})
		return
	}

	approved, err := h.resvService.CountByStatus(ctx, reservation.StatusApproved)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect stats"})
		return
	}

	labs, err := h.labService.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect stats"})
		return
	}

	users, err := h.userService.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect stats"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		PendingReservations:  pending,
		ApprovedReservations: approved,
		ActiveLaboratories:   labs,
		RegisteredUsers:      users,
	})
}
