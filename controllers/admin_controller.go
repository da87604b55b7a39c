package controllers

import (
	"strings"

	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

// AdminController หน้าหลังบ้านของผู้ดูแลแพลตฟอร์ม
type AdminController struct {
	Admin         *services.AdminService
	Profiles      *services.ProfileService
	Subscriptions *services.SubscriptionService
	Tickets       *services.TicketService
}

func NewAdminController(
	admin *services.AdminService,
	profiles *services.ProfileService,
	subs *services.SubscriptionService,
	tickets *services.TicketService,
) *AdminController {
	return &AdminController{Admin: admin, Profiles: profiles, Subscriptions: subs, Tickets: tickets}
}

// GET /api/admin/analytics
func (ac *AdminController) Analytics(c *gin.Context) {
	sum, err := ac.Admin.Summary()
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, sum)
}

// GET /api/admin/users?q=&page=&limit=
func (ac *AdminController) Users(c *gin.Context) {
	page := pageOf(c)
	rows, total, err := ac.Admin.ListUsers(strings.TrimSpace(c.Query("q")), page)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Paged(c, rows, page.Page, page.Limit, total)
}

// PATCH /api/admin/users/:id/toggle
func (ac *AdminController) ToggleUser(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid user id")
		return
	}
	u, err := ac.Admin.ToggleUser(actorOf(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, userJSON(u))
}

// GET /api/admin/profiles?q=
func (ac *AdminController) ListProfiles(c *gin.Context) {
	page := pageOf(c)
	rows, total, err := ac.Profiles.AdminList(strings.TrimSpace(c.Query("q")), page)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Paged(c, rows, page.Page, page.Limit, total)
}

// PATCH /api/admin/profiles/:id/toggle
func (ac *AdminController) ToggleProfile(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid profile id")
		return
	}
	p, err := ac.Profiles.ToggleActive(id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, p)
}

// GET /api/admin/subscriptions?plan=&status=
func (ac *AdminController) ListSubscriptions(c *gin.Context) {
	page := pageOf(c)
	rows, total, err := ac.Subscriptions.AdminList(
		strings.ToUpper(c.Query("plan")), strings.ToUpper(c.Query("status")), page)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Paged(c, rows, page.Page, page.Limit, total)
}

type UpdateSubscriptionRequest struct {
	Plan *string `json:"plan"`
	// expiresAt: "" = ล้างวันหมดอายุ, ไม่ส่ง = ไม่แก้
	ExpiresAt *string `json:"expiresAt"`
}

// PATCH /api/admin/subscriptions/:id
func (ac *AdminController) UpdateSubscription(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid subscription id")
		return
	}
	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	in := services.SubscriptionUpdate{}
	if req.Plan != nil {
		plan := strings.ToUpper(strings.TrimSpace(*req.Plan))
		in.Plan = &plan
	}
	if req.ExpiresAt != nil {
		if strings.TrimSpace(*req.ExpiresAt) == "" {
			in.ClearExpiry = true
		} else {
			t, err := utils.ParseDateFlexible(strings.TrimSpace(*req.ExpiresAt))
			if err != nil {
				resp.BadRequest(c, "expiresAt: "+err.Error())
				return
			}
			in.ExpiresAt = t
		}
	}
	sub, err := ac.Subscriptions.AdminUpdate(id, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, sub)
}

// PATCH /api/admin/subscriptions/:id/toggle
func (ac *AdminController) ToggleSubscription(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid subscription id")
		return
	}
	sub, err := ac.Subscriptions.Toggle(id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, sub)
}

// GET /api/admin/support?status=
func (ac *AdminController) ListTickets(c *gin.Context) {
	page := pageOf(c)
	rows, total, err := ac.Tickets.AdminList(c.Query("status"), page)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Paged(c, rows, page.Page, page.Limit, total)
}

// PATCH /api/admin/support/:id
func (ac *AdminController) UpdateTicket(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid ticket id")
		return
	}
	var in services.TicketUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	t, err := ac.Tickets.AdminUpdate(id, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, t)
}
