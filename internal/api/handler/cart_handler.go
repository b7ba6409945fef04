package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Khursands/Online-Pharmacy/internal/middleware"
	"github.com/Khursands/Online-Pharmacy/pkg/response"
)

type addCartRequest struct {
	MedicineID string `json:"medicineId" binding:"required,uuid"`
	Quantity   *int   `json:"quantity" binding:"omitempty,min=1,max=10"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart
// @Summary 查看购物车
// @Tags 购物车
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=service.CartView}
// @Router /api/cart [get]
func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.cartService.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, view)
}

// AddToCart 已存在同一药品时累加数量
// @Summary 加入购物车
// @Tags 购物车
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body addCartRequest true "药品与数量"
// @Success 201 {object} response.Response{data=model.CartItem}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/cart [post]
func (h *Handler) AddToCart(c *gin.Context) {
	var req addCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	item, err := h.cartService.Add(c.Request.Context(), middleware.CurrentUserID(c), req.MedicineID, intOr(req.Quantity, 1))
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateCartItem 设置精确数量
// @Summary 修改购物车数量
// @Tags 购物车
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "购物车行ID"
// @Param request body updateCartRequest true "数量"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/cart/{id} [put]
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	if err := h.cartService.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.Quantity); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, "Cart updated successfully")
}

// RemoveCartItem
// @Summary 删除购物车行
// @Tags 购物车
// @Produce json
// @Security BearerAuth
// @Param id path string true "购物车行ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/cart/{id} [delete]
func (h *Handler) RemoveCartItem(c *gin.Context) {
	if err := h.cartService.Remove(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, "Item removed from cart")
}

// ClearCart 幂等
// @Summary 清空购物车
// @Tags 购物车
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/cart [delete]
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, "Cart cleared successfully")
}
