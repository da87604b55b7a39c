package controllers

import (
	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

// PaymentController: admin บันทึกและยืนยันการชำระค่าแผน
type PaymentController struct {
	Service *services.PaymentService
}

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Service: s}
}

// GET /api/admin/payments?status=&profileId=
func (ctl *PaymentController) List(c *gin.Context) {
	page := pageOf(c)
	rows, total, err := ctl.Service.List(c.Query("status"), utils.QueryUint(c, "profileId"), page)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Paged(c, rows, page.Page, page.Limit, total)
}

// POST /api/admin/payments
func (ctl *PaymentController) Record(c *gin.Context) {
	var in services.PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := ctl.Service.Record(in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, p)
}

// PATCH /api/admin/payments/:id/status
func (ctl *PaymentController) UpdateStatus(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid payment id")
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := ctl.Service.UpdateStatus(id, body.Status)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, p)
}
