package http

import (
	"time"

	"github.com/nekogravitycat/lab-reservation-backend/internal/laboratory"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/request"
)

type LaboratoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CategoryName string    `json:"category_name"`
	Icon         string    `json:"icon"`
	Color        string    `json:"color"`
	Location     string    `json:"location"`
	Capacity     int       `json:"capacity"`
	Equipment    string    `json:"equipment"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"is_active"`
	PhotoID      *string   `json:"photo_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewLaboratoryResponse(lab *laboratory.Laboratory) LaboratoryResponse {
	return LaboratoryResponse{
		ID:           lab.ID,
		Name:         lab.Name,
		Category:     string(lab.Category),
		CategoryName: lab.Category.DisplayName(),
		Icon:         lab.Category.Icon(),
		Color:        lab.Category.Color(),
		Location:     lab.Location,
		Capacity:     lab.Capacity,
		Equipment:    lab.Equipment,
		Description:  lab.Description,
		IsActive:     lab.IsActive,
		PhotoID:      lab.PhotoID,
		CreatedAt:    lab.CreatedAt,
	}
}

// LaboratoryTag is the minimal laboratory reference embedded in other
// modules' responses.
type LaboratoryTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListLaboratoriesRequest struct {
	request.ListParams
	Search          string `form:"search"`
	Category        string `form:"category"`
	IncludeInactive bool   `form:"include_inactive"` // honored for staff only
}

type CategoryCountResponse struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

type CreateLaboratoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Location    string `json:"location" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	Equipment   string `json:"equipment"`
	Description string `json:"description"`
}

type UpdateLaboratoryRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1"`
	Equipment   *string `json:"equipment"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
	PhotoID     *string `json:"photo_id" binding:"omitempty,uuid"`
}
