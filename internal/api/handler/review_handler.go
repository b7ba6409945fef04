package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Khursands/Online-Pharmacy/internal/middleware"
	"github.com/Khursands/Online-Pharmacy/pkg/response"
)

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=1000"`
}

// ListReviews 最新在前
// @Summary 药品评价
// @Tags 评价
// @Produce json
// @Param id path string true "药品ID"
// @Success 200 {object} response.Response{data=[]model.Review}
// @Router /api/medicines/{id}/reviews [get]
func (h *Handler) ListReviews(c *gin.Context) {
	list, err := h.reviewService.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// CreateReview 每个用户对同一药品只能评价一次
// @Summary 发表评价
// @Tags 评价
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "药品ID"
// @Param request body createReviewRequest true "评分与评论"
// @Success 201 {object} response.Response{data=model.Review}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/medicines/{id}/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	r, err := h.reviewService.Create(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, r)
}
