package repository_test

import (
	"context"
	"testing"
	"time"

	"codeflow/internal/model"
	"codeflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFileRepository_Create(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	fileRepo := repository.NewFileRepository(gormDB)

	file := &model.File{
		Name:         "a.txt",
		Content:      "hello",
		Hash:         "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		Message:      "init",
		RepositoryID: uuid.New(),
		UserID:       uuid.New(),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "files"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	err := fileRepo.Create(context.Background(), file)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_ExistsByHash(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	fileRepo := repository.NewFileRepository(gormDB)

	repoID := uuid.New()
	hash := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	mock.ExpectQuery(`SELECT count\(\*\) FROM "files"`).
		WithArgs(repoID.String(), hash).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := fileRepo.ExistsByHash(context.Background(), repoID, hash)

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_ExistsByHash_Absent(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	fileRepo := repository.NewFileRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "files"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := fileRepo.ExistsByHash(context.Background(), uuid.New(), "deadbeef")

	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_GetByRepositoryID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	fileRepo := repository.NewFileRepository(gormDB)

	repoID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM "files"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "content", "hash", "message", "repository_id", "user_id", "created_at"}).
			AddRow(uuid.NewString(), "a.txt", "hello", "aaa", "init", repoID.String(), userID.String(), now).
			AddRow(uuid.NewString(), "a.txt", "hello again", "bbb", "update", repoID.String(), userID.String(), now))
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username", "hashed_password", "image", "created_at"}).
			AddRow(userID.String(), "Committer", "committer", "x", "", now))

	files, err := fileRepo.GetByRepositoryID(context.Background(), repoID)

	assert.NoError(t, err)
	assert.Len(t, files, 2)
	// Two snapshots may share a name as long as the content differs
	assert.Equal(t, files[0].Name, files[1].Name)
	assert.NotEqual(t, files[0].Hash, files[1].Hash)
	assert.Equal(t, "committer", files[0].User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
