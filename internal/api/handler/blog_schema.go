package handler

import (
	"time"

	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
)

type createBlogRequest struct {
	Body string `json:"body" validate:"required"`
}

type createCommentRequest struct {
	Body string `json:"body" validate:"required,max=1024"`
}

type blogResponse struct {
	ID         int64     `json:"id"`
	Body       string    `json:"body"`
	BodyHTML   string    `json:"body_html"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type blogListResponse struct {
	Data       []blogResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type commentResponse struct {
	ID         int64     `json:"id"`
	Body       string    `json:"body"`
	Disabled   bool      `json:"disabled"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	BlogID     int64     `json:"blog_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type commentListResponse struct {
	Data       []commentResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toBlog(b *domain.Blog) blogResponse {
	return blogResponse{
		ID:         b.ID,
		Body:       b.Body,
		BodyHTML:   b.BodyHTML,
		AuthorID:   b.AuthorID,
		AuthorName: b.AuthorName,
		CreatedAt:  b.CreatedAt,
	}
}

func toBlogList(page *ports.BlogPage) blogListResponse {
	data := make([]blogResponse, 0, len(page.Items))
	for i := range page.Items {
		data = append(data, toBlog(&page.Items[i]))
	}
	return blogListResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}

func toComment(cm *domain.Comment) commentResponse {
	return commentResponse{
		ID:         cm.ID,
		Body:       cm.Body,
		Disabled:   cm.Disabled,
		AuthorID:   cm.AuthorID,
		AuthorName: cm.AuthorName,
		BlogID:     cm.BlogID,
		CreatedAt:  cm.CreatedAt,
	}
}

func toCommentList(page *ports.CommentPage) commentListResponse {
	data := make([]commentResponse, 0, len(page.Items))
	for i := range page.Items {
		data = append(data, toComment(&page.Items[i]))
	}
	return commentListResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}
