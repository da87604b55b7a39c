package controllers

import (
	"qrmenu/pkg/resp"
	"qrmenu/repository"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

// TaxonomyController ใช้ร่วมกันสำหรับ /categories /types /tags
type TaxonomyController[T repository.Taxon] struct {
	Service *services.TaxonomyService[T]
}

func NewTaxonomyController[T repository.Taxon](s *services.TaxonomyService[T]) *TaxonomyController[T] {
	return &TaxonomyController[T]{Service: s}
}

// GET /api/profiles/:id/<kind>
func (ctl *TaxonomyController[T]) List(c *gin.Context) {
	profileID, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid profile id")
		return
	}
	out, err := ctl.Service.List(actorOf(c), profileID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /api/profiles/:id/<kind>
func (ctl *TaxonomyController[T]) Create(c *gin.Context) {
	profileID, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid profile id")
		return
	}
	var in services.TaxonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, err := ctl.Service.Create(actorOf(c), profileID, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, v)
}

// PATCH /api/profiles/:id/<kind>/:cid
func (ctl *TaxonomyController[T]) Update(c *gin.Context) {
	profileID, ok1 := utils.ParamUint(c, "id")
	id, ok2 := utils.ParamUint(c, "cid")
	if !ok1 || !ok2 {
		resp.BadRequest(c, "invalid id")
		return
	}
	var in services.TaxonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, err := ctl.Service.Update(actorOf(c), profileID, id, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, v)
}

// DELETE /api/profiles/:id/<kind>/:cid
func (ctl *TaxonomyController[T]) Delete(c *gin.Context) {
	profileID, ok1 := utils.ParamUint(c, "id")
	id, ok2 := utils.ParamUint(c, "cid")
	if !ok1 || !ok2 {
		resp.BadRequest(c, "invalid id")
		return
	}
	if err := ctl.Service.Delete(actorOf(c), profileID, id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
