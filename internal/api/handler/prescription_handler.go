package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Khursands/Online-Pharmacy/internal/middleware"
	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/service"
	"github.com/Khursands/Online-Pharmacy/pkg/response"
)

type reviewPrescriptionRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Notes  string `json:"notes" binding:"omitempty,max=500"`
}

// UploadPrescription multipart 字段 image（必填）与 notes（可选）
// @Summary 上传处方
// @Tags 处方
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "处方图片（jpeg/png/webp/pdf）"
// @Param notes formData string false "备注"
// @Success 201 {object} response.Response{data=model.Prescription}
// @Failure 400 {object} response.Response
// @Failure 413 {object} response.Response
// @Router /api/prescriptions [post]
func (h *Handler) UploadPrescription(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		response.BadRequest(c, "prescription image is required")
		return
	}
	notes := c.PostForm("notes")
	if len(notes) > 500 {
		response.BadRequest(c, "notes must be at most 500 characters")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	p, err := h.prescriptionService.Upload(c.Request.Context(), middleware.CurrentUserID(c), service.PrescriptionUpload{
		File:     f,
		Filename: fh.Filename,
		Notes:    notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, p)
}

// ListPrescriptions
// @Summary 我的处方
// @Tags 处方
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Prescription}
// @Router /api/prescriptions [get]
func (h *Handler) ListPrescriptions(c *gin.Context) {
	list, err := h.prescriptionService.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// ReviewPrescription 药剂师/管理员审核，只能处理待审核的处方
// @Summary 审核处方
// @Tags 处方
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "处方ID"
// @Param request body reviewPrescriptionRequest true "审核结果"
// @Success 200 {object} response.Response{data=model.Prescription}
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/prescriptions/{id}/review [put]
func (h *Handler) ReviewPrescription(c *gin.Context) {
	var req reviewPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	p, err := h.prescriptionService.Review(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"),
		model.PrescriptionStatus(req.Status), req.Notes)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, p)
}
