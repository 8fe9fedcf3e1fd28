package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/Ltizzi/PZTools/internal/server/models"
	"github.com/Ltizzi/PZTools/internal/server/store"
)

// seedEntry 种子文件中的单个条目
type seedEntry struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Skill          string `json:"skill"`
	IsSkillRelated *bool  `json:"is_skill_related"`
}

// seedFile 种子文件结构，按分类命名的数组分组
type seedFile struct {
	SkillBooks      []seedEntry `json:"skillBooks"`
	RecipeMagazines []seedEntry `json:"recipeMagazines"`
	TVShowsWithXP   []seedEntry `json:"tvShowsWithXP"`
	TVShowsNoXP     []seedEntry `json:"tvShowsNoXP"`
	RetailMovies    []seedEntry `json:"retailMovies"`
	WoodcraftShows  []seedEntry `json:"woodcraftShows"`
	SurvivalShows   []seedEntry `json:"survivalShows"`
	FitnessShows    []seedEntry `json:"fitnessShows"`
	ComicsAndPapers []seedEntry `json:"comicsAndPapers"`
	VHSTapes        []seedEntry `json:"vhsTapes"`
}

// SeedCatalog 从种子文件导入收集品目录。幂等：目录非空时跳过。
func SeedCatalog(catalogStore store.CatalogStore, seedPath string) error {
	count, err := catalogStore.Count()
	if err != nil {
		return fmt.Errorf("检查目录状态失败: %w", err)
	}
	if count > 0 {
		log.Printf("收集品目录已存在 (%d 条)，跳过种子导入", count)
		return nil
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return fmt.Errorf("读取种子文件失败: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("解析种子文件失败: %w", err)
	}

	var items []models.LootItem
	appendGroup := func(entries []seedEntry, category string, defaultSkillRelated func(seedEntry) bool) {
		for _, e := range entries {
			items = append(items, models.LootItem{
				BaseID:         e.ID,
				Name:           e.Name,
				Category:       category,
				Skill:          e.Skill,
				IsSkillRelated: defaultSkillRelated(e),
			})
		}
	}

	// 技能书固定为技能相关；食谱杂志取决于是否标注技能；其余按条目标记
	appendGroup(seed.SkillBooks, models.CategorySkillBook, func(seedEntry) bool { return true })
	appendGroup(seed.RecipeMagazines, models.CategoryRecipeMagazine, func(e seedEntry) bool { return e.Skill != "" })
	appendGroup(seed.TVShowsWithXP, models.CategoryVHSTVShow, entrySkillRelated)
	appendGroup(seed.TVShowsNoXP, models.CategoryVHSTVShow, entrySkillRelated)
	appendGroup(seed.RetailMovies, models.CategoryVHSMovie, entrySkillRelated)
	appendGroup(seed.WoodcraftShows, models.CategoryVHSHome, entrySkillRelated)
	appendGroup(seed.SurvivalShows, models.CategoryVHSHome, entrySkillRelated)
	appendGroup(seed.FitnessShows, models.CategoryVHSHome, entrySkillRelated)
	appendGroup(seed.ComicsAndPapers, models.CategoryComicPaper, entrySkillRelated)
	appendGroup(seed.VHSTapes, models.CategoryVHSHome, entrySkillRelated)

	if err := catalogStore.BatchCreate(items); err != nil {
		return fmt.Errorf("导入种子数据失败: %w", err)
	}

	log.Printf("种子导入完成，共 %d 条收集品", len(items))
	return nil
}

// entrySkillRelated 条目未标注时视为非技能相关
func entrySkillRelated(e seedEntry) bool {
	return e.IsSkillRelated != nil && *e.IsSkillRelated
}
