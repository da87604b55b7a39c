package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

// PublicController ไม่ต้อง login (ลูกค้าสแกน QR เข้ามา)
type PublicController struct {
	Menus    *services.PublicMenuService
	Feedback *services.FeedbackService
}

func NewPublicController(menus *services.PublicMenuService, feedback *services.FeedbackService) *PublicController {
	return &PublicController{Menus: menus, Feedback: feedback}
}

// GET /api/public/menu/:id?lang=&minPrice=&maxPrice=&category=&type=&tag=&q=&available=
func (ctl *PublicController) Menu(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.NotFound(c, "menu not found")
		return
	}
	f, err := ParseMenuFilter(c)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := ctl.Menus.View(c.Request.Context(), id, c.Query("lang"), f)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, m)
}

// POST /api/public/menu/:id/feedback
func (ctl *PublicController) SubmitFeedback(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.NotFound(c, "menu not found")
		return
	}
	var in services.FeedbackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	fb, err := ctl.Feedback.Submit(c.Request.Context(), id, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, gin.H{"id": fb.ID, "rating": fb.Rating, "state": fb.State})
}

// ParseMenuFilter รับ id ได้ทั้งแบบ ?tag=1&tag=2 และ ?tag=1,2
func ParseMenuFilter(c *gin.Context) (services.MenuFilter, error) {
	var f services.MenuFilter
	var err error

	if f.MinPrice, err = queryPrice(c, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryPrice(c, "maxPrice"); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, fmt.Errorf("minPrice must not exceed maxPrice")
	}
	if f.CategoryIDs, err = queryIDs(c, "category"); err != nil {
		return f, err
	}
	if f.TypeIDs, err = queryIDs(c, "type"); err != nil {
		return f, err
	}
	if f.TagIDs, err = queryIDs(c, "tag"); err != nil {
		return f, err
	}
	f.Query = strings.TrimSpace(c.Query("q"))
	if v := c.Query("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("available must be true or false")
		}
		f.AvailableOnly = b
	}
	return f, nil
}

func queryPrice(c *gin.Context, name string) (*int64, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return &n, nil
}

func queryIDs(c *gin.Context, name string) ([]uint, error) {
	var out []uint
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be a list of ids", name)
			}
			out = append(out, uint(n))
		}
	}
	return out, nil
}
