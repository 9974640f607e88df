package handler

import (
	"time"

	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
)

type updateProfileRequest struct {
	Name     string  `json:"name"     validate:"required,min=3,max=22,username"`
	Age      *int    `json:"age"      validate:"omitempty,min=0,max=200"`
	Gender   *string `json:"gender"   validate:"omitempty,oneof=male female futa otokonoko other unknown"`
	Phone    *string `json:"phone"    validate:"omitempty,min=6,max=16"`
	Location *string `json:"location" validate:"omitempty,min=2,max=16"`
	AboutMe  *string `json:"about_me" validate:"omitempty,max=1024"`
}

type adminUpdateProfileRequest struct {
	updateProfileRequest
	RoleID    *int64 `json:"role_id"`
	Confirmed *bool  `json:"confirmed"`
}

func (r updateProfileRequest) toInput() ports.ProfileInput {
	in := ports.ProfileInput{
		Name:     r.Name,
		Age:      r.Age,
		Phone:    r.Phone,
		Location: r.Location,
		AboutMe:  r.AboutMe,
	}
	if r.Gender != nil {
		g := domain.Gender(*r.Gender)
		in.Gender = &g
	}
	return in
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type followEdgeResponse struct {
	User  userResponse `json:"user"`
	Since time.Time    `json:"since"`
}

type followListResponse struct {
	Data       []followEdgeResponse `json:"data"`
	Pagination paginationResponse   `json:"pagination"`
}

type followStatusResponse struct {
	Following  bool `json:"following"`
	FollowedBy bool `json:"followed_by"`
}

func toFollowList(page *ports.FollowPage) followListResponse {
	data := make([]followEdgeResponse, 0, len(page.Items))
	for i := range page.Items {
		data = append(data, followEdgeResponse{
			User:  toPublicUser(&page.Items[i].User),
			Since: page.Items[i].CreatedAt,
		})
	}
	return followListResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}
