package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Khursands/Online-Pharmacy/internal/service"
	"github.com/Khursands/Online-Pharmacy/pkg/response"
)

// 非数字的 page/limit、非布尔的过滤参数在绑定阶段即返回 400
type medicineListQuery struct {
	Page         *int   `form:"page" binding:"omitempty,min=1"`
	Limit        *int   `form:"limit" binding:"omitempty,min=1,max=100"`
	Category     string `form:"category" binding:"omitempty,max=36"`
	Search       string `form:"search" binding:"omitempty,max=100"`
	Prescription *bool  `form:"prescription"`
	InStock      *bool  `form:"inStock"`
	SortBy       string `form:"sortBy" binding:"sortby"`
}

func (q medicineListQuery) toService() service.MedicineQuery {
	sortBy := q.SortBy
	if sortBy == "default" {
		sortBy = ""
	}
	return service.MedicineQuery{
		Page:         intOr(q.Page, 0),
		Limit:        intOr(q.Limit, 0),
		Category:     q.Category,
		Search:       q.Search,
		Prescription: q.Prescription,
		InStock:      q.InStock,
		SortBy:       sortBy,
	}
}

type searchQuery struct {
	Q string `form:"q" binding:"omitempty,min=2,max=100"`
}

// ListMedicines 分页查询药品
// @Summary 药品列表
// @Tags 药品
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param category query string false "分类ID"
// @Param search query string false "关键词"
// @Param prescription query bool false "是否处方药"
// @Param inStock query bool false "是否有货"
// @Param sortBy query string false "排序" Enums(name, price, rating, default)
// @Success 200 {object} response.Response{data=service.MedicineList}
// @Failure 400 {object} response.Response
// @Router /api/medicines [get]
func (h *Handler) ListMedicines(c *gin.Context) {
	var q medicineListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	list, err := h.catalogService.ListMedicines(c.Request.Context(), q.toService())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// FeaturedMedicines 评分最高的 6 个有货药品
// @Summary 推荐药品
// @Tags 药品
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Medicine}
// @Router /api/medicines/featured [get]
func (h *Handler) FeaturedMedicines(c *gin.Context) {
	meds, err := h.catalogService.Featured(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, meds)
}

// SearchMedicines 名称前缀匹配优先
// @Summary 搜索药品
// @Tags 药品
// @Produce json
// @Param q query string false "关键词（2-100 字符）"
// @Success 200 {object} response.Response{data=[]model.Medicine}
// @Failure 400 {object} response.Response
// @Router /api/medicines/search [get]
func (h *Handler) SearchMedicines(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	meds, err := h.catalogService.Search(c.Request.Context(), q.Q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, meds)
}

// GetMedicine 单个在售药品
// @Summary 药品详情
// @Tags 药品
// @Produce json
// @Param id path string true "药品ID"
// @Success 200 {object} response.Response{data=model.Medicine}
// @Failure 404 {object} response.Response
// @Router /api/medicines/{id} [get]
func (h *Handler) GetMedicine(c *gin.Context) {
	m, err := h.catalogService.GetMedicine(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, m)
}

// ListCategories 在售分类及药品数
// @Summary 分类列表
// @Tags 分类
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Category}
// @Router /api/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// GetCategory
// @Summary 分类详情
// @Tags 分类
// @Produce json
// @Param id path string true "分类ID"
// @Success 200 {object} response.Response{data=model.Category}
// @Failure 404 {object} response.Response
// @Router /api/categories/{id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	cat, err := h.catalogService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, cat)
}

// ListCategoryMedicines 分类内药品，默认按名称排序
// @Summary 分类药品列表
// @Tags 分类
// @Produce json
// @Param id path string true "分类ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param search query string false "关键词"
// @Param prescription query bool false "是否处方药"
// @Param inStock query bool false "是否有货"
// @Param sortBy query string false "排序" Enums(name, price, rating, default)
// @Success 200 {object} response.Response{data=service.MedicineList}
// @Failure 400 {object} response.Response
// @Router /api/categories/{id}/medicines [get]
func (h *Handler) ListCategoryMedicines(c *gin.Context) {
	var q medicineListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	list, err := h.catalogService.ListCategoryMedicines(c.Request.Context(), c.Param("id"), q.toService())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}
