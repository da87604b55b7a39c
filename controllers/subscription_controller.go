package controllers

import (
	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	Service  *services.SubscriptionService
	Profiles *services.ProfileService
}

func NewSubscriptionController(s *services.SubscriptionService, profiles *services.ProfileService) *SubscriptionController {
	return &SubscriptionController{Service: s, Profiles: profiles}
}

// profileFromQuery อ่าน ?profileId= และตรวจว่าเป็นร้านของผู้ใช้
func (ctl *SubscriptionController) profileFromQuery(c *gin.Context) (uint, bool) {
	profileID := utils.QueryUint(c, "profileId")
	if profileID == 0 {
		resp.BadRequest(c, "profileId is required")
		return 0, false
	}
	if _, err := ctl.Profiles.Authorize(actorOf(c), profileID); err != nil {
		resp.Fail(c, err)
		return 0, false
	}
	return profileID, true
}

// GET /api/subscription?profileId=
func (ctl *SubscriptionController) Get(c *gin.Context) {
	profileID, ok := ctl.profileFromQuery(c)
	if !ok {
		return
	}
	view, err := ctl.Service.View(profileID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /api/subscription/cancel?profileId=
func (ctl *SubscriptionController) Cancel(c *gin.Context) {
	profileID, ok := ctl.profileFromQuery(c)
	if !ok {
		return
	}
	sub, err := ctl.Service.Cancel(profileID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, sub)
}
