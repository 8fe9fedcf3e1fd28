package store

import (
	"testing"
	"time"

	"github.com/Ltizzi/PZTools/internal/server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存数据库限制为单连接，避免连接池拿到不同的库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.LootItem{}, &models.UserItem{}))
	return db
}

func TestGormUserStore_FindByUsername(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserStore(db)

	require.NoError(t, users.Create(&models.User{Username: "survivor", Password: "hash"}))

	found, err := users.FindByUsername("survivor")
	require.NoError(t, err)
	assert.Equal(t, "survivor", found.Username)

	_, err = users.FindByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormUserStore_UniqueUsername(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserStore(db)

	require.NoError(t, users.Create(&models.User{Username: "survivor", Password: "hash"}))
	err := users.Create(&models.User{Username: "survivor", Password: "other"})
	assert.Error(t, err)
}

func TestGormUserStore_DeleteInactiveBefore(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserStore(db)
	collection := NewGormCollectionStore(db)

	old := time.Now().AddDate(0, 0, -40)
	recent := time.Now()

	stale := &models.User{Username: "stale", Password: "hash", LastActive: &old}
	active := &models.User{Username: "active", Password: "hash", LastActive: &recent}
	require.NoError(t, users.Create(stale))
	require.NoError(t, users.Create(active))

	// 各自一条收集记录，过期用户的记录必须级联删除
	require.NoError(t, collection.Create(&models.UserItem{UserID: stale.ID, ItemID: 1, Collected: true}))
	require.NoError(t, collection.Create(&models.UserItem{UserID: active.ID, ItemID: 1, Collected: true}))

	deleted, err := users.DeleteInactiveBefore(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = users.FindByID(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = users.FindByID(active.ID)
	assert.NoError(t, err)

	staleEntries, err := collection.ListByUser(stale.ID)
	require.NoError(t, err)
	assert.Empty(t, staleEntries)

	activeEntries, err := collection.ListByUser(active.ID)
	require.NoError(t, err)
	assert.Len(t, activeEntries, 1)
}

func TestGormCollectionStore_UniqueUserItemPair(t *testing.T) {
	db := newTestDB(t)
	collection := NewGormCollectionStore(db)

	require.NoError(t, collection.Create(&models.UserItem{UserID: 1, ItemID: 1, Collected: true}))

	// 同一(user, item)组合不允许第二条记录
	err := collection.Create(&models.UserItem{UserID: 1, ItemID: 1, Collected: false})
	assert.Error(t, err)

	// 不同用户同一条目可以
	require.NoError(t, collection.Create(&models.UserItem{UserID: 2, ItemID: 1, Collected: true}))
}

func TestGormCollectionStore_DefaultVolumeNumber(t *testing.T) {
	db := newTestDB(t)
	collection := NewGormCollectionStore(db)

	entry := &models.UserItem{UserID: 1, ItemID: 1, Collected: true}
	require.NoError(t, collection.Create(entry))

	found, err := collection.Find(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, found.VolumeNumber)
}

func TestGormCatalogStore_SearchMatchesAllFields(t *testing.T) {
	db := newTestDB(t)
	catalog := NewGormCatalogStore(db)

	require.NoError(t, catalog.BatchCreate([]models.LootItem{
		{BaseID: "skillbook-carpentry", Name: "Carpentry", Category: models.CategorySkillBook, Skill: "Carpentry"},
		{BaseID: "movie-dead-walk", Name: "The Dead Don't Walk", Category: models.CategoryVHSMovie},
	}))

	// 分类子串也参与search匹配
	items, err := catalog.List("movie", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "The Dead Don't Walk", items[0].Name)

	// category参数是精确匹配
	items, err = catalog.List("", "VHS")
	require.NoError(t, err)
	assert.Empty(t, items)
}
