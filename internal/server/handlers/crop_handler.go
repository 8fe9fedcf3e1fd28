package handlers

import (
	"errors"

	"github.com/Ltizzi/PZTools/internal/server/services"
	"github.com/Ltizzi/PZTools/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// CropHandler 作物参考处理器
type CropHandler struct {
	cropService *services.CropService
}

// NewCropHandler 创建作物参考处理器
func NewCropHandler(cropService *services.CropService) *CropHandler {
	return &CropHandler{cropService: cropService}
}

// GetCrops 返回完整作物参考表
func (ch *CropHandler) GetCrops(c *gin.Context) {
	response.Success(c, ch.cropService.ListAll())
}

// GetCropsByMonth 返回指定月份的作物列表
func (ch *CropHandler) GetCropsByMonth(c *gin.Context) {
	month := c.Param("month")

	crops, err := ch.cropService.ListForMonth(month)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "查询作物失败")
		return
	}

	response.Success(c, crops)
}
