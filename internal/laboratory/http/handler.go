package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/lab-reservation-backend/internal/auth"
	"github.com/nekogravitycat/lab-reservation-backend/internal/laboratory"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/response"
	"github.com/nekogravitycat/lab-reservation-backend/internal/user"
)

type Handler struct {
	service     laboratory.Service
	userService user.Service
}

func NewHandler(service laboratory.Service, userService user.Service) *Handler {
	return &Handler{service: service, userService: userService}
}

// isStaff reports whether the caller is an authenticated staff member.
// Public routes run behind OptionalAuth, so anonymous callers simply
// resolve to false here.
func (h *Handler) isStaff(c *gin.Context) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsStaff
}

func (h *Handler) List(c *gin.Context) {
	var req ListLaboratoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := laboratory.Filter{
		Keyword:  req.Search,
		Category: req.Category,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	// Deactivated labs are only listed for staff who ask for them.
	if req.IncludeInactive && h.isStaff(c) {
		filter.IncludeInactive = true
	}

	labs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]LaboratoryResponse, len(labs))
	for i, lab := range labs {
		items[i] = NewLaboratoryResponse(lab)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Categories(c *gin.Context) {
	counts, err := h.service.CategoryCounts(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CategoryCountResponse, len(counts))
	total := 0
	for i, cc := range counts {
		items[i] = CategoryCountResponse{
			Code:  string(cc.Code),
			Name:  cc.Name,
			Count: cc.Count,
			Color: cc.Color,
		}
		total += cc.Count
	}

	c.JSON(http.StatusOK, gin.H{"categories": items, "total_count": total})
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	lab, err := h.service.GetByID(c.Request.Context(), req.ID, h.isStaff(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLaboratoryResponse(lab))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateLaboratoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	lab, err := h.service.Create(c.Request.Context(), laboratory.CreateRequest{
		Name:        body.Name,
		Category:    body.Category,
		Location:    body.Location,
		Capacity:    body.Capacity,
		Equipment:   body.Equipment,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewLaboratoryResponse(lab))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateLaboratoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	lab, err := h.service.Update(c.Request.Context(), uri.ID, laboratory.UpdateRequest{
		Name:        body.Name,
		Category:    body.Category,
		Location:    body.Location,
		Capacity:    body.Capacity,
		Equipment:   body.Equipment,
		Description: body.Description,
		IsActive:    body.IsActive,
		PhotoID:     body.PhotoID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLaboratoryResponse(lab))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
