package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// ErrInvalidMonth 月份键不合法
var ErrInvalidMonth = errors.New("无效的月份")

// monthKeys 十二个合法的三字母月份键
var monthKeys = map[string]bool{
	"jan": true, "feb": true, "mar": true, "apr": true,
	"may": true, "jun": true, "jul": true, "aug": true,
	"sep": true, "oct": true, "nov": true, "dec": true,
}

// statusPriority 月份状态排序优先级
var statusPriority = map[string]int{
	"best":      1,
	"seasonal":  2,
	"worst_in":  3,
	"worst_out": 4,
}

// CropMonth 作物在某个月份的状态
type CropMonth struct {
	Status string `json:"status"`
}

// Crop 作物参考数据
type Crop struct {
	Name       string               `json:"name"`
	NameEn     string               `json:"nameEn"`
	Icon       string               `json:"icon"`
	GrowthTime int                  `json:"growthTime"`
	Calories   int                  `json:"calories"`
	Months     map[string]CropMonth `json:"months"`
}

// CropForMonth 某月份作物投影视图
type CropForMonth struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	NameEn     string `json:"nameEn"`
	Icon       string `json:"icon"`
	GrowthTime int    `json:"growthTime"`
	Calories   int    `json:"calories"`
	Status     string `json:"status"`
}

// CropService 季节作物参考服务，启动时从静态文件加载，之后只读
type CropService struct {
	calendar map[string]Crop
	keys     []string
}

// NewCropService 创建作物参考服务。加载失败只记录日志，服务降级为空数据。
func NewCropService(calendarPath string) *CropService {
	cs := &CropService{calendar: map[string]Crop{}}

	if err := cs.load(calendarPath); err != nil {
		log.Printf("加载作物日历失败，相关接口将返回空数据: %v", err)
		return cs
	}

	log.Printf("作物日历加载完成，共 %d 种作物", len(cs.calendar))
	return cs
}

// load 解析作物日历文件
func (cs *CropService) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取作物日历失败: %w", err)
	}

	var calendar map[string]Crop
	if err := json.Unmarshal(data, &calendar); err != nil {
		return fmt.Errorf("解析作物日历失败: %w", err)
	}

	// 固定键顺序，保证同状态作物输出顺序稳定
	keys := make([]string, 0, len(calendar))
	for key := range calendar {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	cs.calendar = calendar
	cs.keys = keys
	return nil
}

// ListAll 返回完整作物参考表
func (cs *CropService) ListAll() map[string]Crop {
	return cs.calendar
}

// ListForMonth 返回在指定月份有定义状态的作物，按状态优先级排序
// (best < seasonal < worst_in < worst_out)
func (cs *CropService) ListForMonth(month string) ([]CropForMonth, error) {
	month = strings.ToLower(month)
	if !monthKeys[month] {
		return nil, ErrInvalidMonth
	}

	crops := make([]CropForMonth, 0)
	for _, key := range cs.keys {
		crop := cs.calendar[key]
		monthData, ok := crop.Months[month]
		if !ok {
			continue
		}
		crops = append(crops, CropForMonth{
			Key:        key,
			Name:       crop.Name,
			NameEn:     crop.NameEn,
			Icon:       crop.Icon,
			GrowthTime: crop.GrowthTime,
			Calories:   crop.Calories,
			Status:     monthData.Status,
		})
	}

	sort.SliceStable(crops, func(i, j int) bool {
		return statusPriority[crops[i].Status] < statusPriority[crops[j].Status]
	})

	return crops, nil
}
