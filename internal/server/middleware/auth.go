package middleware

import (
	"github.com/Ltizzi/PZTools/internal/shared/auth"
	"github.com/Ltizzi/PZTools/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware JWT认证中间件。
// 未携带令牌返回401，令牌无效或过期返回403。
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "未提供认证令牌")
			c.Abort()
			return
		}

		token, err := auth.ExtractTokenFromHeader(authHeader)
		if err != nil {
			response.Unauthorized(c, "无效的认证格式")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Forbidden(c, "无效的认证令牌")
			c.Abort()
			return
		}

		// 设置用户信息到上下文
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}

// AdminRequired 管理员权限中间件，必须在JWTAuthMiddleware之后使用
func AdminRequired(userService *auth.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		user, err := userService.GetUserByID(userID)
		if err != nil {
			response.Forbidden(c, "用户不存在")
			c.Abort()
			return
		}

		if !user.IsAdmin {
			response.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}

		c.Next()
	}
}
