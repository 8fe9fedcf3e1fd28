package handlers

import (
	"errors"
	"log"

	"github.com/Ltizzi/PZTools/internal/server/services"
	"github.com/Ltizzi/PZTools/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// TrackerHandler 收集进度处理器
type TrackerHandler struct {
	trackerService *services.TrackerService
}

// NewTrackerHandler 创建收集进度处理器
func NewTrackerHandler(trackerService *services.TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

// ToggleRequest 翻转收集状态请求
type ToggleRequest struct {
	ItemID uint `json:"itemId" binding:"required"`
}

// ImportRequest 导入请求
type ImportRequest struct {
	Items []services.ImportItem `json:"items"`
}

// GetItems 查询收集品列表
func (th *TrackerHandler) GetItems(c *gin.Context) {
	userID := c.GetUint("user_id")
	search := c.Query("search")
	category := c.Query("category")
	filter := c.Query("filter")

	items, err := th.trackerService.ListItems(userID, search, category, filter)
	if err != nil {
		log.Printf("查询收集品列表失败: %v", err)
		response.InternalError(c, "查询收集品列表失败")
		return
	}

	response.Success(c, items)
}

// ToggleItem 翻转单个收集品的收集状态
func (th *TrackerHandler) ToggleItem(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}

	userID := c.GetUint("user_id")
	collected, err := th.trackerService.ToggleItem(userID, req.ItemID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			response.BadRequest(c, err.Error())
			return
		}
		log.Printf("翻转收集状态失败: %v", err)
		response.InternalError(c, "操作失败")
		return
	}

	response.Success(c, gin.H{"collected": collected})
}

// GetStats 查询收集进度统计。
// filter参数保留兼容旧客户端，但统计始终基于全量目录。
func (th *TrackerHandler) GetStats(c *gin.Context) {
	userID := c.GetUint("user_id")

	stats, err := th.trackerService.GetStats(userID)
	if err != nil {
		log.Printf("查询统计失败: %v", err)
		response.InternalError(c, "查询统计失败")
		return
	}

	response.Success(c, stats)
}

// ExportTracker 导出收集数据
func (th *TrackerHandler) ExportTracker(c *gin.Context) {
	userID := c.GetUint("user_id")

	items, err := th.trackerService.Export(userID)
	if err != nil {
		log.Printf("导出收集数据失败: %v", err)
		response.InternalError(c, "导出失败")
		return
	}

	response.Success(c, items)
}

// ImportTracker 导入收集数据
func (th *TrackerHandler) ImportTracker(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Items == nil {
		response.BadRequest(c, "导入数据格式错误")
		return
	}

	userID := c.GetUint("user_id")
	result, err := th.trackerService.Import(userID, req.Items)
	if err != nil {
		log.Printf("导入收集数据失败: %v", err)
		response.InternalError(c, "导入失败")
		return
	}

	response.Success(c, gin.H{
		"success":  true,
		"message":  result.Message(),
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"notFound": result.NotFound,
	})
}
