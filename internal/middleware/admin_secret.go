package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	// AdminSecretHeader 变更操作携带管理口令的请求头
	AdminSecretHeader = "X-Admin-Secret"
	adminSecretKey    = "admin_secret"
)

// AdminSecret 提取管理口令放入上下文，鉴权由服务层的闸口完成
func AdminSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(AdminSecretHeader)
		if secret == "" {
			secret = c.Query("secret")
		}
		c.Set(adminSecretKey, secret)
		c.Next()
	}
}

// GetAdminSecret 读取上下文中的管理口令
func GetAdminSecret(c *gin.Context) string {
	return c.GetString(adminSecretKey)
}
