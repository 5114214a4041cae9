package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"trivia-api/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategories(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCategoryDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{"id", "type"}).
		AddRow(1, "Science").
		AddRow(2, "Art").
		AddRow(3, "Geography")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, type FROM categories ORDER BY id`)).WillReturnRows(rows)

	result, err := repo.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "Science", result[0].Type)
	assert.Equal(t, int64(3), result[2].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategories_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCategoryDatabaseAdapter(db)

	dbErr := errors.New("database is down")
	mock.ExpectQuery(`SELECT id, type FROM categories`).WillReturnError(dbErr)

	result, err := repo.ListCategories(context.Background())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategory(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCategoryDatabaseAdapter(db)

	category := domain.NewCategory("History")
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories (type) VALUES ($1) RETURNING id`)).
		WithArgs("History").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	err := repo.CreateCategory(context.Background(), category)

	require.NoError(t, err)
	assert.Equal(t, int64(4), category.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategory_Invalid(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCategoryDatabaseAdapter(db)

	assert.Error(t, repo.CreateCategory(context.Background(), domain.NewCategory("")))
	assert.Error(t, repo.CreateCategory(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
