package auth

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aiinasia/core/internal/database"
	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/pkg/jwt"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db, zap.NewNop()), db
}

func createUser(t *testing.T, db *gorm.DB, username, password string) models.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.UserModel{Username: username, Password: string(hash)}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestLogin(t *testing.T) {
	svc, db := setupService(t)
	created := createUser(t, db, "editor", "correct-horse")

	user, token, err := svc.Login("editor", "correct-horse", "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, token)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	require.Equal(t, created.ID, claims.UserID)

	var reloaded models.UserModel
	require.NoError(t, db.First(&reloaded, "id = ?", created.ID).Error)
	require.NotNil(t, reloaded.LastLoginTime)
	require.Equal(t, "10.0.0.1", reloaded.LastLoginIP)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, db := setupService(t)
	createUser(t, db, "editor", "correct-horse")

	user, token, err := svc.Login("editor", "wrong", "10.0.0.1")
	require.NoError(t, err)
	require.Nil(t, user)
	require.Empty(t, token)

	user, _, err = svc.Login("nobody", "whatever", "10.0.0.1")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestChangePassword(t *testing.T) {
	svc, db := setupService(t)
	created := createUser(t, db, "editor", "old-password")

	require.Error(t, svc.ChangePassword(created.ID, "wrong", "new-password"))
	require.NoError(t, svc.ChangePassword(created.ID, "old-password", "new-password"))

	user, _, err := svc.Login("editor", "new-password", "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, user)
}
