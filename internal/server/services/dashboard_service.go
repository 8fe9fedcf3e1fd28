package services

import (
	"fmt"
	"time"

	"github.com/Ltizzi/PZTools/internal/server/store"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// DashboardService 管理员状态面板服务
type DashboardService struct {
	users      store.UserStore
	catalog    store.CatalogStore
	collection store.CollectionStore
	startTime  time.Time
}

// NewDashboardService 创建状态面板服务
func NewDashboardService(users store.UserStore, catalog store.CatalogStore, collection store.CollectionStore) *DashboardService {
	return &DashboardService{
		users:      users,
		catalog:    catalog,
		collection: collection,
		startTime:  time.Now(),
	}
}

// SystemStatus 系统状态信息
type SystemStatus struct {
	Uptime        string    `json:"uptime"`
	StartTime     time.Time `json:"start_time"`
	UserCount     int64     `json:"user_count"`
	ItemCount     int64     `json:"item_count"`
	EntryCount    int64     `json:"entry_count"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	DiskPercent   float64   `json:"disk_percent"`
}

// GetStatus 获取系统状态
func (ds *DashboardService) GetStatus() (*SystemStatus, error) {
	status := &SystemStatus{
		StartTime: ds.startTime,
		Uptime:    formatUptime(time.Since(ds.startTime)),
	}

	var err error
	if status.UserCount, err = ds.users.Count(); err != nil {
		return nil, err
	}
	if status.ItemCount, err = ds.catalog.Count(); err != nil {
		return nil, err
	}
	if status.EntryCount, err = ds.collection.Count(); err != nil {
		return nil, err
	}

	// 系统指标采集失败不影响业务统计
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemoryPercent = vm.UsedPercent
	}
	if usage, err := disk.Usage("/"); err == nil {
		status.DiskPercent = usage.UsedPercent
	}

	return status, nil
}

// formatUptime 格式化运行时长
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
