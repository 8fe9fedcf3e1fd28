package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/Ltizzi/PZTools/internal/server/models"
	"github.com/Ltizzi/PZTools/internal/server/store"
)

// 收集状态过滤器
const (
	FilterCollected = "collected"
	FilterMissing   = "missing"
)

// ErrItemNotFound 收集品不存在
var ErrItemNotFound = errors.New("收集品不存在")

// TrackerService 收集进度服务
type TrackerService struct {
	catalog    store.CatalogStore
	collection store.CollectionStore
}

// NewTrackerService 创建收集进度服务
func NewTrackerService(catalog store.CatalogStore, collection store.CollectionStore) *TrackerService {
	return &TrackerService{
		catalog:    catalog,
		collection: collection,
	}
}

// TrackedItem 目录条目与当前用户收集状态的组合视图
type TrackedItem struct {
	models.LootItem
	Collected bool `json:"collected"`
}

// TrackerStats 收集进度统计
type TrackerStats struct {
	TotalItems     int64 `json:"totalItems"`
	CollectedItems int64 `json:"collectedItems"`
	Progress       int   `json:"progress"`
}

// ExportedItem 导出记录
type ExportedItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Skill     string `json:"skill,omitempty"`
	Collected bool   `json:"collected"`
}

// ImportResult 导入结果统计
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	NotFound int `json:"notFound"`
}

// ListItems 查询目录并关联当前用户的收集状态。
// search 对名称、技能、分类、外部ID做大小写不敏感匹配，category 精确匹配，
// filter 在关联之后筛选 collected/missing。
func (ts *TrackerService) ListItems(userID uint, search, category, filter string) ([]TrackedItem, error) {
	items, err := ts.catalog.List(search, category)
	if err != nil {
		return nil, err
	}

	entries, err := ts.collection.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	collected := make(map[uint]bool, len(entries))
	for _, e := range entries {
		collected[e.ItemID] = e.Collected
	}

	result := make([]TrackedItem, 0, len(items))
	for _, item := range items {
		tracked := TrackedItem{LootItem: item, Collected: collected[item.ID]}
		switch filter {
		case FilterCollected:
			if !tracked.Collected {
				continue
			}
		case FilterMissing:
			if tracked.Collected {
				continue
			}
		}
		result = append(result, tracked)
	}

	return result, nil
}

// ToggleItem 翻转收集状态，记录不存在时创建并置为已收集，返回翻转后的状态
func (ts *TrackerService) ToggleItem(userID, itemID uint) (bool, error) {
	entry, err := ts.collection.Find(userID, itemID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return false, err
		}
		// 首次翻转前确认条目确实在目录中
		if _, err := ts.catalog.FindByID(itemID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return false, ErrItemNotFound
			}
			return false, err
		}
		entry = &models.UserItem{
			UserID:    userID,
			ItemID:    itemID,
			Collected: true,
		}
		if err := ts.collection.Create(entry); err != nil {
			return false, err
		}
		return true, nil
	}

	entry.Collected = !entry.Collected
	if err := ts.collection.Save(entry); err != nil {
		return false, err
	}
	return entry.Collected, nil
}

// GetStats 统计收集进度，目录为空时进度为0
func (ts *TrackerService) GetStats(userID uint) (*TrackerStats, error) {
	total, err := ts.catalog.Count()
	if err != nil {
		return nil, err
	}

	collected, err := ts.collection.CountCollected(userID)
	if err != nil {
		return nil, err
	}

	progress := 0
	if total > 0 {
		progress = int(math.Round(float64(collected) / float64(total) * 100))
	}

	return &TrackerStats{
		TotalItems:     total,
		CollectedItems: collected,
		Progress:       progress,
	}, nil
}

// Export 导出当前用户已收集的条目完整记录
func (ts *TrackerService) Export(userID uint) ([]ExportedItem, error) {
	items, err := ts.ListItems(userID, "", "", FilterCollected)
	if err != nil {
		return nil, err
	}

	exported := make([]ExportedItem, 0, len(items))
	for _, item := range items {
		exported = append(exported, ExportedItem{
			ID:        item.BaseID,
			Name:      item.Name,
			Category:  item.Category,
			Skill:     item.Skill,
			Collected: true,
		})
	}
	return exported, nil
}

// ImportItem 导入条目，兼容裸字符串和对象两种形式
type ImportItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON 支持 "name" 与 {"id": ..., "name": ...} 两种输入
func (ii *ImportItem) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		ii.ID = ""
		ii.Name = name
		return nil
	}

	type alias ImportItem
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*ii = ImportItem(obj)
	return nil
}

// Import 批量导入收集状态。优先按外部ID匹配，其次按名称（忽略大小写和首尾空白）。
// 已收集的计入skipped，匹配不到的计入notFound，单条失败不中断其余条目。
func (ts *TrackerService) Import(userID uint, items []ImportItem) (*ImportResult, error) {
	catalog, err := ts.catalog.ListAll()
	if err != nil {
		return nil, err
	}

	byBaseID := make(map[string]uint, len(catalog))
	byName := make(map[string]uint, len(catalog))
	for _, item := range catalog {
		byBaseID[item.BaseID] = item.ID
		byName[strings.ToLower(strings.TrimSpace(item.Name))] = item.ID
	}

	result := &ImportResult{}
	for _, input := range items {
		itemID, ok := byBaseID[input.ID]
		if !ok {
			itemID, ok = byName[strings.ToLower(strings.TrimSpace(input.Name))]
		}
		if !ok {
			result.NotFound++
			continue
		}

		if err := ts.importOne(userID, itemID, result); err != nil {
			// 单条失败只记录日志，继续处理其余条目
			log.Printf("导入条目失败 (item_id=%d): %v", itemID, err)
			result.NotFound++
		}
	}

	return result, nil
}

// importOne 导入单条记录并更新统计
func (ts *TrackerService) importOne(userID, itemID uint, result *ImportResult) error {
	entry, err := ts.collection.Find(userID, itemID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		entry = &models.UserItem{
			UserID:    userID,
			ItemID:    itemID,
			Collected: true,
		}
		if err := ts.collection.Create(entry); err != nil {
			return err
		}
		result.Imported++
		return nil
	}

	if entry.Collected {
		result.Skipped++
		return nil
	}

	entry.Collected = true
	if err := ts.collection.Save(entry); err != nil {
		return err
	}
	result.Imported++
	return nil
}

// Message 生成导入结果描述
func (ir *ImportResult) Message() string {
	return fmt.Sprintf("导入完成: %d 条导入, %d 条已存在, %d 条未找到",
		ir.Imported, ir.Skipped, ir.NotFound)
}
