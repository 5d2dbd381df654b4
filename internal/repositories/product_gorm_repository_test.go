package repositories_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"productos/internal/database"
	"productos/internal/models"
	"productos/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory sqlite database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func TestGORMProductRepository_CRUD(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	product := &models.Product{Name: "Monitor", Price: 300, Availability: true}
	require.NoError(t, repo.Create(product))
	require.NotZero(t, product.ID)
	assert.False(t, product.CreatedAt.IsZero())

	found, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monitor", found.Name)
	assert.Equal(t, 300.0, found.Price)
	assert.True(t, found.Availability)

	// Zero values must be written too.
	found.Name = "Monitor Curvo"
	found.Price = 950
	found.Availability = false
	require.NoError(t, repo.Update(found))

	updated, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monitor Curvo", updated.Name)
	assert.Equal(t, 950.0, updated.Price)
	assert.False(t, updated.Availability)
	assert.WithinDuration(t, product.CreatedAt, updated.CreatedAt, time.Second)

	require.NoError(t, repo.Delete(product.ID))
	_, err = repo.GetByID(product.ID)
	assert.True(t, errors.Is(err, repositories.ErrProductNotFound))
}

func TestGORMProductRepository_NotFound(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	_, err := repo.GetByID(404)
	assert.True(t, errors.Is(err, repositories.ErrProductNotFound))

	err = repo.Update(&models.Product{ID: 404, Name: "ghost", Price: 1})
	assert.True(t, errors.Is(err, repositories.ErrProductNotFound))

	err = repo.Delete(404)
	assert.True(t, errors.Is(err, repositories.ErrProductNotFound))
}

func TestGORMProductRepository_GetAll(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	products, err := repo.GetAll()
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	for _, name := range []string{"Laptop", "Keyboard", "Mouse"} {
		require.NoError(t, repo.Create(&models.Product{Name: name, Price: 10, Availability: true}))
	}

	products, err = repo.GetAll()
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Mouse", products[0].Name)
	assert.Equal(t, "Laptop", products[2].Name)
}

func TestGORMProductRepository_PriceCheck(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	err := repo.Create(&models.Product{Name: "Free", Price: 0, Availability: true})
	assert.Error(t, err)
}

func TestGORMProductRepository_Ping(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)
	assert.NoError(t, repo.Ping())
}
