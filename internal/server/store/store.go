package store

import (
	"errors"
	"time"

	"github.com/Ltizzi/PZTools/internal/server/models"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// UserStore 用户存储接口
type UserStore interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	UpdateLastActive(id uint, t time.Time) error
	Count() (int64, error)
	// DeleteInactiveBefore 删除最后活跃时间早于cutoff的用户及其收集记录，返回删除数量
	DeleteInactiveBefore(cutoff time.Time) (int64, error)
}

// CatalogStore 收集品目录存储接口，种子导入后只读
type CatalogStore interface {
	Count() (int64, error)
	FindByID(id uint) (*models.LootItem, error)
	List(search, category string) ([]models.LootItem, error)
	ListAll() ([]models.LootItem, error)
	BatchCreate(items []models.LootItem) error
}

// CollectionStore 用户收集记录存储接口
type CollectionStore interface {
	Find(userID, itemID uint) (*models.UserItem, error)
	Create(entry *models.UserItem) error
	Save(entry *models.UserItem) error
	ListByUser(userID uint) ([]models.UserItem, error)
	CountCollected(userID uint) (int64, error)
	Count() (int64, error)
}
