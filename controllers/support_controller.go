package controllers

import (
	"qrmenu/pkg/resp"
	"qrmenu/services"

	"github.com/gin-gonic/gin"
)

type SupportController struct {
	Service *services.TicketService
}

func NewSupportController(s *services.TicketService) *SupportController {
	return &SupportController{Service: s}
}

// GET /api/support?status=
func (ctl *SupportController) List(c *gin.Context) {
	page := pageOf(c)
	items, total, err := ctl.Service.ListMine(actorOf(c), c.Query("status"), page)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Paged(c, items, page.Page, page.Limit, total)
}

// POST /api/support
func (ctl *SupportController) Create(c *gin.Context) {
	var in services.TicketInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	t, err := ctl.Service.Create(actorOf(c), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, t)
}
