package controllers

import (
	"strconv"

	"qrmenu/repository"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

func actorOf(c *gin.Context) services.Actor {
	return services.Actor{UserID: utils.CurrentUserID(c), Role: utils.CurrentRole(c)}
}

// pageOf อ่าน ?page=&limit=
func pageOf(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return repository.NewPage(page, limit)
}
