package controllers

import (
	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Service *services.ProfileService
}

func NewProfileController(s *services.ProfileService) *ProfileController {
	return &ProfileController{Service: s}
}

// GET /api/profiles
func (ctl *ProfileController) List(c *gin.Context) {
	ps, err := ctl.Service.ListMine(actorOf(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, ps)
}

// POST /api/profiles
func (ctl *ProfileController) Create(c *gin.Context) {
	var in services.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := ctl.Service.Create(actorOf(c), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, p)
}

// GET /api/profiles/:id
func (ctl *ProfileController) Get(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid profile id")
		return
	}
	p, err := ctl.Service.Get(actorOf(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, p)
}

// PATCH /api/profiles/:id
func (ctl *ProfileController) Update(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid profile id")
		return
	}
	var in services.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := ctl.Service.Update(actorOf(c), id, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, p)
}

// DELETE /api/profiles/:id
func (ctl *ProfileController) Delete(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid profile id")
		return
	}
	if err := ctl.Service.Delete(actorOf(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
