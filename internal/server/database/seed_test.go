package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Ltizzi/PZTools/internal/server/models"
	"github.com/Ltizzi/PZTools/internal/server/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSeed = `{
  "skillBooks": [
    { "id": "skillbook-carpentry", "name": "Carpentry", "skill": "Carpentry" }
  ],
  "recipeMagazines": [
    { "id": "mag-herbalist", "name": "The Herbalist", "skill": "Foraging" },
    { "id": "mag-laines", "name": "Laines Top Picks" }
  ],
  "tvShowsWithXP": [
    { "id": "tv-woodcraft", "name": "Woodcraft", "skill": "Carpentry", "is_skill_related": true }
  ],
  "retailMovies": [
    { "id": "movie-dead-walk", "name": "The Dead Don't Walk", "is_skill_related": false }
  ],
  "survivalShows": [
    { "id": "vhs-survival-trap", "name": "Expert Survival: Trapping", "skill": "Trapping", "is_skill_related": true }
  ],
  "comicsAndPapers": [
    { "id": "comic-toetal-1", "name": "Toe-Tal Comics #1", "is_skill_related": false }
  ],
  "vhsTapes": [
    { "id": "vhs-home-wedding", "name": "Home VHS: Wedding 1989", "is_skill_related": false }
  ]
}`

func newSeedFixture(t *testing.T) (store.CatalogStore, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存数据库限制为单连接，避免连接池拿到不同的库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))

	path := filepath.Join(t.TempDir(), "tracker-data.json")
	require.NoError(t, os.WriteFile(path, []byte(testSeed), 0644))

	return store.NewGormCatalogStore(db), path
}

func TestSeedCatalog_GroupCategoryMapping(t *testing.T) {
	catalog, path := newSeedFixture(t)

	require.NoError(t, SeedCatalog(catalog, path))

	items, err := catalog.ListAll()
	require.NoError(t, err)
	require.Len(t, items, 8)

	byBase := map[string]models.LootItem{}
	for _, item := range items {
		byBase[item.BaseID] = item
	}

	assert.Equal(t, models.CategorySkillBook, byBase["skillbook-carpentry"].Category)
	assert.True(t, byBase["skillbook-carpentry"].IsSkillRelated)

	// 食谱杂志：标注技能的为技能相关，未标注的不是
	assert.Equal(t, models.CategoryRecipeMagazine, byBase["mag-herbalist"].Category)
	assert.True(t, byBase["mag-herbalist"].IsSkillRelated)
	assert.False(t, byBase["mag-laines"].IsSkillRelated)

	assert.Equal(t, models.CategoryVHSTVShow, byBase["tv-woodcraft"].Category)
	assert.Equal(t, models.CategoryVHSMovie, byBase["movie-dead-walk"].Category)
	assert.Equal(t, models.CategoryVHSHome, byBase["vhs-survival-trap"].Category)
	assert.Equal(t, models.CategoryVHSHome, byBase["vhs-home-wedding"].Category)
	assert.Equal(t, models.CategoryComicPaper, byBase["comic-toetal-1"].Category)
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	catalog, path := newSeedFixture(t)

	require.NoError(t, SeedCatalog(catalog, path))
	countAfterFirst, err := catalog.Count()
	require.NoError(t, err)

	// 重复执行不改变行数
	require.NoError(t, SeedCatalog(catalog, path))
	countAfterSecond, err := catalog.Count()
	require.NoError(t, err)
	assert.Equal(t, countAfterFirst, countAfterSecond)
}

func TestSeedCatalog_MissingFile(t *testing.T) {
	catalog, _ := newSeedFixture(t)

	err := SeedCatalog(catalog, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	count, countErr := catalog.Count()
	require.NoError(t, countErr)
	assert.Zero(t, count)
}
