package services

import (
	"fmt"
	"log"
	"time"

	"github.com/Ltizzi/PZTools/internal/server/store"

	"github.com/robfig/cron/v3"
)

// CleanupScheduler 定时清理长期不活跃用户
type CleanupScheduler struct {
	cron          *cron.Cron
	users         store.UserStore
	schedule      string
	retentionDays int
}

// NewCleanupScheduler 创建清理调度器
func NewCleanupScheduler(users store.UserStore, schedule string, retentionDays int) *CleanupScheduler {
	// 支持秒级精度的cron表达式
	c := cron.New(cron.WithSeconds())

	return &CleanupScheduler{
		cron:          c,
		users:         users,
		schedule:      schedule,
		retentionDays: retentionDays,
	}
}

// Start 启动清理任务
func (cs *CleanupScheduler) Start() error {
	_, err := cs.cron.AddFunc(cs.schedule, cs.runCleanup)
	if err != nil {
		return fmt.Errorf("添加清理任务失败: %w", err)
	}

	cs.cron.Start()
	log.Printf("用户清理任务已启动 (计划: %s, 保留 %d 天)", cs.schedule, cs.retentionDays)
	return nil
}

// Stop 停止清理任务
func (cs *CleanupScheduler) Stop() {
	cs.cron.Stop()
	log.Println("用户清理任务已停止")
}

// runCleanup 执行一次清理
func (cs *CleanupScheduler) runCleanup() {
	cutoff := time.Now().AddDate(0, 0, -cs.retentionDays)
	deleted, err := cs.users.DeleteInactiveBefore(cutoff)
	if err != nil {
		log.Printf("清理不活跃用户失败: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("已清理 %d 个超过 %d 天未活跃的用户", deleted, cs.retentionDays)
	}
}
