package auth

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Mamba6389/Kassua-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func registerAlice(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user, err := Register(db, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func TestRegister_HashesPassword(t *testing.T) {
	db := newTestDB(t)
	user := registerAlice(t, db)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	registerAlice(t, db)

	_, err := Register(db, RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, models.ErrDuplicateAccount)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	registerAlice(t, db)

	_, err := Register(db, RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, models.ErrDuplicateAccount)
}

func TestAuthenticate_ByUsernameAndEmail(t *testing.T) {
	db := newTestDB(t)
	registerAlice(t, db)

	for _, login := range []string{"alice", "alice@example.com"} {
		user, err := Authenticate(db, login, "secret123")
		require.NoError(t, err, login)
		assert.Equal(t, "alice", user.Username)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	registerAlice(t, db)

	_, err := Authenticate(db, "alice", "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAuthenticate_UnknownAccount(t *testing.T) {
	db := newTestDB(t)
	_, err := Authenticate(db, "ghost", "secret123")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResetPassword_HappyPath(t *testing.T) {
	db := newTestDB(t)
	registerAlice(t, db)

	token, err := GenerateResetToken(db, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, ResetPassword(db, "alice@example.com", token, "newsecret"))

	_, err = Authenticate(db, "alice", "newsecret")
	assert.NoError(t, err)
	_, err = Authenticate(db, "alice", "secret123")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResetPassword_TokenIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	registerAlice(t, db)

	token, err := GenerateResetToken(db, "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, ResetPassword(db, "alice@example.com", token, "newsecret"))

	err = ResetPassword(db, "alice@example.com", token, "again")
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestResetPassword_WrongToken(t *testing.T) {
	db := newTestDB(t)
	registerAlice(t, db)

	_, err := GenerateResetToken(db, "alice@example.com")
	require.NoError(t, err)

	err = ResetPassword(db, "alice@example.com", "not-the-token", "newsecret")
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func setResetExpiry(t *testing.T, db *gorm.DB, email string, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", email).
		Update("reset_expires", at).Error)
}

func TestResetPassword_AcceptedBeforeExpiry(t *testing.T) {
	db := newTestDB(t)
	registerAlice(t, db)

	token, err := GenerateResetToken(db, "alice@example.com")
	require.NoError(t, err)

	// One minute of lifetime left, as at T+59min of a one-hour token.
	setResetExpiry(t, db, "alice@example.com", time.Now().Add(time.Minute))
	assert.NoError(t, ResetPassword(db, "alice@example.com", token, "newsecret"))
}

func TestResetPassword_RejectedAfterExpiry(t *testing.T) {
	db := newTestDB(t)
	registerAlice(t, db)

	token, err := GenerateResetToken(db, "alice@example.com")
	require.NoError(t, err)

	// Expired one minute ago, as at T+61min of a one-hour token.
	setResetExpiry(t, db, "alice@example.com", time.Now().Add(-time.Minute))
	err = ResetPassword(db, "alice@example.com", token, "newsecret")
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestResetPassword_UnknownEmail(t *testing.T) {
	db := newTestDB(t)
	err := ResetPassword(db, "nobody@example.com", "x", "newsecret")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGenerateResetToken_ReplacesPreviousToken(t *testing.T) {
	db := newTestDB(t)
	registerAlice(t, db)

	first, err := GenerateResetToken(db, "alice@example.com")
	require.NoError(t, err)
	second, err := GenerateResetToken(db, "alice@example.com")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	assert.ErrorIs(t, ResetPassword(db, "alice@example.com", first, "newsecret"), models.ErrInvalidToken)
	assert.NoError(t, ResetPassword(db, "alice@example.com", second, "newsecret"))
}

func TestIssueToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueToken("alice", "user")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
