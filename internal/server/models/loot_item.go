package models

import (
	"time"
)

// 物品分类常量
const (
	CategorySkillBook      = "Skill Book"
	CategoryRecipeMagazine = "Recipe Magazine"
	CategoryVHSTVShow      = "VHS TV Show"
	CategoryVHSMovie       = "VHS Movie"
	CategoryVHSHome        = "VHS Home"
	CategoryComicPaper     = "Comic/Paper"
)

// LootItem 收集品目录条目，种子数据导入后只读
type LootItem struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	BaseID         string    `json:"base_id" gorm:"not null;size:100;uniqueIndex"`
	Name           string    `json:"name" gorm:"not null;size:200"`
	Category       string    `json:"category" gorm:"not null;size:50;index"`
	Skill          string    `json:"skill,omitempty" gorm:"size:50"`
	IsSkillRelated bool      `json:"is_skill_related" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
}
