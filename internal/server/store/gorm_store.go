package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ltizzi/PZTools/internal/server/models"

	"gorm.io/gorm"
)

var (
	_ UserStore       = (*GormUserStore)(nil)
	_ CatalogStore    = (*GormCatalogStore)(nil)
	_ CollectionStore = (*GormCollectionStore)(nil)
)

// GormUserStore 基于gorm的用户存储
type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore 创建用户存储
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// Create 创建用户
func (s *GormUserStore) Create(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}
	return nil
}

// FindByID 根据ID查询用户
func (s *GormUserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// FindByUsername 根据用户名查询用户（区分大小写）
func (s *GormUserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// UpdateLastActive 更新最后活跃时间
func (s *GormUserStore) UpdateLastActive(id uint, t time.Time) error {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Update("last_active", t)
	if result.Error != nil {
		return fmt.Errorf("更新活跃时间失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count 用户总数
func (s *GormUserStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计用户失败: %w", err)
	}
	return count, nil
}

// DeleteInactiveBefore 删除长期不活跃用户，级联删除其收集记录
func (s *GormUserStore) DeleteInactiveBefore(cutoff time.Time) (int64, error) {
	var deleted int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.User{}).
			Where("last_active IS NOT NULL AND last_active < ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("user_id IN ?", ids).Delete(&models.UserItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, ids)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("清理不活跃用户失败: %w", err)
	}
	return deleted, nil
}

// GormCatalogStore 基于gorm的收集品目录存储
type GormCatalogStore struct {
	db *gorm.DB
}

// NewGormCatalogStore 创建目录存储
func NewGormCatalogStore(db *gorm.DB) *GormCatalogStore {
	return &GormCatalogStore{db: db}
}

// Count 目录条目总数
func (s *GormCatalogStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.LootItem{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计目录条目失败: %w", err)
	}
	return count, nil
}

// FindByID 根据ID查询目录条目
func (s *GormCatalogStore) FindByID(id uint) (*models.LootItem, error) {
	var item models.LootItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询目录条目失败: %w", err)
	}
	return &item, nil
}

// List 按条件查询目录，search对名称/技能/分类/外部ID做大小写不敏感的子串匹配
func (s *GormCatalogStore) List(search, category string) ([]models.LootItem, error) {
	query := s.db.Model(&models.LootItem{})

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(skill) LIKE ? OR LOWER(category) LIKE ? OR LOWER(base_id) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.LootItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("查询目录失败: %w", err)
	}
	return items, nil
}

// ListAll 查询全部目录条目
func (s *GormCatalogStore) ListAll() ([]models.LootItem, error) {
	return s.List("", "")
}

// BatchCreate 批量写入目录条目（种子导入）
func (s *GormCatalogStore) BatchCreate(items []models.LootItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := s.db.Create(&items).Error; err != nil {
		return fmt.Errorf("写入目录条目失败: %w", err)
	}
	return nil
}

// GormCollectionStore 基于gorm的收集记录存储
type GormCollectionStore struct {
	db *gorm.DB
}

// NewGormCollectionStore 创建收集记录存储
func NewGormCollectionStore(db *gorm.DB) *GormCollectionStore {
	return &GormCollectionStore{db: db}
}

// Find 查询单条收集记录
func (s *GormCollectionStore) Find(userID, itemID uint) (*models.UserItem, error) {
	var entry models.UserItem
	err := s.db.Where("user_id = ? AND item_id = ?", userID, itemID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询收集记录失败: %w", err)
	}
	return &entry, nil
}

// Create 创建收集记录
func (s *GormCollectionStore) Create(entry *models.UserItem) error {
	if entry.VolumeNumber == 0 {
		entry.VolumeNumber = 1
	}
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("创建收集记录失败: %w", err)
	}
	return nil
}

// Save 保存收集记录
func (s *GormCollectionStore) Save(entry *models.UserItem) error {
	if err := s.db.Save(entry).Error; err != nil {
		return fmt.Errorf("保存收集记录失败: %w", err)
	}
	return nil
}

// ListByUser 查询某用户的全部收集记录
func (s *GormCollectionStore) ListByUser(userID uint) ([]models.UserItem, error) {
	var entries []models.UserItem
	if err := s.db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("查询收集记录失败: %w", err)
	}
	return entries, nil
}

// CountCollected 统计某用户已收集数量
func (s *GormCollectionStore) CountCollected(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.UserItem{}).
		Where("user_id = ? AND collected = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计收集记录失败: %w", err)
	}
	return count, nil
}

// Count 收集记录总数
func (s *GormCollectionStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.UserItem{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计收集记录失败: %w", err)
	}
	return count, nil
}
