package handlers

import (
	"errors"
	"log"

	"github.com/Ltizzi/PZTools/internal/shared/auth"
	"github.com/Ltizzi/PZTools/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	userService *auth.UserService
	jwtService  *auth.JWTService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(userService *auth.UserService, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// CredentialsRequest 注册/登录请求
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register 用户注册
func (ah *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}

	user, err := ah.userService.Register(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmptyCredentials),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrUsernameTaken):
			response.BadRequest(c, err.Error())
		default:
			log.Printf("注册失败: %v", err)
			response.InternalError(c, "注册失败")
		}
		return
	}

	token, err := ah.jwtService.GenerateToken(user)
	if err != nil {
		log.Printf("签发令牌失败: %v", err)
		response.InternalError(c, "注册失败")
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

// Login 用户登录
func (ah *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}

	user, err := ah.userService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		log.Printf("登录失败: %v", err)
		response.InternalError(c, "登录失败")
		return
	}

	token, err := ah.jwtService.GenerateToken(user)
	if err != nil {
		log.Printf("签发令牌失败: %v", err)
		response.InternalError(c, "登录失败")
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"is_admin": user.IsAdmin,
		},
	})
}
