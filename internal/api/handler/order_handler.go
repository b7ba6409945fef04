package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Khursands/Online-Pharmacy/internal/middleware"
	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/service"
	"github.com/Khursands/Online-Pharmacy/pkg/response"
)

type placeOrderRequest struct {
	ShippingAddress   string `json:"shippingAddress" binding:"required,notblank,min=10,max=200"`
	PaymentMethod     string `json:"paymentMethod" binding:"omitempty,oneof=cod card upi"`
	PrescriptionImage string `json:"prescriptionImage" binding:"omitempty,max=500"`
	Notes             string `json:"notes" binding:"omitempty,max=500"`
}

type orderListQuery struct {
	Page  *int `form:"page" binding:"omitempty,min=1"`
	Limit *int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// PlaceOrder 购物车转订单：扣库存、清空购物车，单事务完成
// @Summary 下单
// @Tags 订单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body placeOrderRequest true "收货与支付信息"
// @Success 201 {object} response.Response{data=service.PlaceOrderResult}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/orders [post]
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	pm := model.PaymentMethod(req.PaymentMethod)
	if pm == "" {
		pm = model.PaymentCOD
	}
	res, err := h.orderService.Place(c.Request.Context(), middleware.CurrentUserID(c), service.PlaceOrderInput{
		ShippingAddress:   req.ShippingAddress,
		PaymentMethod:     pm,
		PrescriptionImage: req.PrescriptionImage,
		Notes:             req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, res)
}

// ListOrders 按下单时间倒序
// @Summary 我的订单
// @Tags 订单
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=service.OrderList}
// @Router /api/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	var q orderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	list, err := h.orderService.List(c.Request.Context(), middleware.CurrentUserID(c), intOr(q.Page, 0), intOr(q.Limit, 0))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// GetOrder 仅能查看自己的订单
// @Summary 订单详情
// @Tags 订单
// @Produce json
// @Security BearerAuth
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response{data=model.Order}
// @Failure 404 {object} response.Response
// @Router /api/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.orderService.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, o)
}
