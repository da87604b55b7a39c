package controllers

import (
	"net/http"
	"strings"

	"qrmenu/entity"
	"qrmenu/middlewares"
	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
type UpdateMeRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
}
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type AuthController struct {
	Service      *services.AuthService
	SecureCookie bool
}

func NewAuthController(s *services.AuthService, secureCookie bool) *AuthController {
	return &AuthController{Service: s, SecureCookie: secureCookie}
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id": u.ID, "email": u.Email, "firstName": u.FirstName,
		"lastName": u.LastName, "phoneNumber": u.PhoneNumber, "role": u.Role,
	}
}

// POST /api/auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Service.Register(req.Email, req.Password, req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, userJSON(user))
}

// POST /api/auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.Service.Login(req.Email, req.Password)
	if err != nil {
		resp.Fail(c, err)
		return
	}

	// dashboard ใช้ cookie, mobile/API ใช้ token ใน body
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AuthCookie, token, int(a.Service.TokenTTL().Seconds()), "/", "", a.SecureCookie, true)

	resp.OK(c, gin.H{"token": token, "user": userJSON(user)})
}

// POST /api/auth/logout
func (a *AuthController) Logout(c *gin.Context) {
	middlewares.ClearAuthCookie(c, a.SecureCookie)
	resp.OK(c, gin.H{"loggedOut": true})
}

// GET /api/auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Service.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, userJSON(user))
}

// PATCH /api/auth/me
func (a *AuthController) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*req.PhoneNumber)
	}
	user, err := a.Service.UpdateProfile(utils.CurrentUserID(c), updates)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, userJSON(user))
}

// POST /api/auth/change-password
func (a *AuthController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := a.Service.ChangePassword(utils.CurrentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"changed": true})
}
