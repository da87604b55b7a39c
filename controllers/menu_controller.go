package controllers

import (
	"net/http"
	"strconv"

	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(s *services.MenuService) *MenuController {
	return &MenuController{Service: s}
}

// GET /api/profiles/:id/menus
func (ctl *MenuController) List(c *gin.Context) {
	profileID, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid profile id")
		return
	}
	menus, err := ctl.Service.ListByProfile(actorOf(c), profileID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, menus)
}

// POST /api/profiles/:id/menus
func (ctl *MenuController) Create(c *gin.Context) {
	profileID, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid profile id")
		return
	}
	var in services.MenuInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := ctl.Service.Create(actorOf(c), profileID, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, m)
}

// GET /api/menus/:id
func (ctl *MenuController) Get(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	m, err := ctl.Service.Get(actorOf(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, m)
}

// PATCH /api/menus/:id
func (ctl *MenuController) Update(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	var in services.MenuInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := ctl.Service.Update(actorOf(c), id, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, m)
}

// PATCH /api/menus/:id/publish (สลับเปิด/ปิด)
func (ctl *MenuController) TogglePublish(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	m, err := ctl.Service.TogglePublish(actorOf(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, m)
}

// DELETE /api/menus/:id
func (ctl *MenuController) Delete(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	if err := ctl.Service.Delete(actorOf(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// GET /api/menus/:id/qrcode?size=
func (ctl *MenuController) QRCode(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	png, url, err := ctl.Service.QRCode(actorOf(c), id, size)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.Header("X-Menu-URL", url)
	if c.Query("download") == "1" {
		c.Header("Content-Disposition", "attachment; filename=menu-"+strconv.FormatUint(uint64(id), 10)+".png")
	}
	c.Data(http.StatusOK, "image/png", png)
}
