package main

import (
	"fmt"
	"testing"

	"productos/internal/config"
	"productos/internal/models"
	"productos/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepository_Memory(t *testing.T) {
	repo, closeRepo, err := newRepository(&config.Config{DatabaseDriver: "memory"})
	require.NoError(t, err)
	defer closeRepo()

	assert.IsType(t, &repositories.MemoryProductRepository{}, repo)
	assert.NoError(t, repo.Ping())
}

func TestNewRepository_SQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	repo, closeRepo, err := newRepository(&config.Config{DatabaseDriver: "sqlite", DatabaseDSN: dsn})
	require.NoError(t, err)

	assert.IsType(t, &repositories.GORMProductRepository{}, repo)

	product := &models.Product{Name: "Laptop", Price: 1200, Availability: true}
	require.NoError(t, repo.Create(product))
	assert.NotZero(t, product.ID)

	require.NoError(t, closeRepo())
	assert.Error(t, repo.Ping(), "ping must fail once the pool is closed")
}

func TestNewRepository_UnknownDriver(t *testing.T) {
	_, _, err := newRepository(&config.Config{DatabaseDriver: "mongo"})
	assert.Error(t, err)
}
