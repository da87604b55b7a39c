package controllers

import (
	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

type ItemController struct {
	Service *services.ItemService
}

func NewItemController(s *services.ItemService) *ItemController {
	return &ItemController{Service: s}
}

// GET /api/menus/:id/items
func (ctl *ItemController) List(c *gin.Context) {
	menuID, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	items, err := ctl.Service.ListByMenu(actorOf(c), menuID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /api/menus/:id/items
func (ctl *ItemController) Create(c *gin.Context) {
	menuID, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	var in services.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	it, err := ctl.Service.Create(actorOf(c), menuID, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, it)
}

// GET /api/items/:id
func (ctl *ItemController) Get(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid item id")
		return
	}
	it, err := ctl.Service.Get(actorOf(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, it)
}

// PATCH /api/items/:id
func (ctl *ItemController) Update(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid item id")
		return
	}
	var in services.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	it, err := ctl.Service.Update(actorOf(c), id, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, it)
}

// PUT /api/items/:id/translations
func (ctl *ItemController) ReplaceTranslations(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid item id")
		return
	}
	var body struct {
		Translations []services.TranslationInput `json:"translations"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if body.Translations == nil {
		body.Translations = []services.TranslationInput{}
	}
	it, err := ctl.Service.ReplaceTranslations(actorOf(c), id, body.Translations)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, it)
}

// PUT /api/items/:id/tags
func (ctl *ItemController) ReplaceTags(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid item id")
		return
	}
	var body struct {
		TagIDs []uint `json:"tagIds"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if body.TagIDs == nil {
		body.TagIDs = []uint{}
	}
	it, err := ctl.Service.ReplaceTags(actorOf(c), id, body.TagIDs)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, it)
}

// DELETE /api/items/:id
func (ctl *ItemController) Delete(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid item id")
		return
	}
	if err := ctl.Service.Delete(actorOf(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
