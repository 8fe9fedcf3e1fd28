package handlers

import (
	"log"

	"github.com/Ltizzi/PZTools/internal/server/services"
	"github.com/Ltizzi/PZTools/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 管理员状态面板处理器
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler 创建状态面板处理器
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStatus 获取系统状态
func (dh *DashboardHandler) GetStatus(c *gin.Context) {
	status, err := dh.dashboardService.GetStatus()
	if err != nil {
		log.Printf("获取系统状态失败: %v", err)
		response.InternalError(c, "获取系统状态失败")
		return
	}

	response.Success(c, status)
}
