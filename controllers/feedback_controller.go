package controllers

import (
	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	Service *services.FeedbackService
}

func NewFeedbackController(s *services.FeedbackService) *FeedbackController {
	return &FeedbackController{Service: s}
}

// GET /api/profiles/:id/feedback?state=
func (ctl *FeedbackController) List(c *gin.Context) {
	profileID, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid profile id")
		return
	}
	page := pageOf(c)
	items, total, err := ctl.Service.List(actorOf(c), profileID, c.Query("state"), page)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Paged(c, items, page.Page, page.Limit, total)
}

// PATCH /api/feedback/:id
func (ctl *FeedbackController) UpdateState(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid feedback id")
		return
	}
	var body struct {
		State string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	fb, err := ctl.Service.UpdateState(actorOf(c), id, body.State)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, fb)
}
