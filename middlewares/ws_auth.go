// middlewares/ws_auth.go
package middlewares

import (
	"net/http"

	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware ใช้ตรวจสอบ JWT จากทั้ง query และ header
// browser ส่ง header ตอน upgrade ไม่ได้ จึงรับ ?token= ด้วย
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			tokenStr = tokenFromRequest(c)
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing token"})
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		c.Set(utils.CtxUserID, claims.UserID)
		c.Set(utils.CtxRole, claims.Role)
		c.Next()
	}
}
