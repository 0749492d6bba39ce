// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	"github.com/RealSujal/community-app/internal/infrastructure/database"
	"github.com/RealSujal/community-app/internal/infrastructure/mailer"
	"github.com/RealSujal/community-app/pkg/utils"
)

// DefaultPassword is the plain password of users made by CreateUser
const DefaultPassword = "password123"

// NewConfig returns a sqlite configuration rooted in a temporary directory
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		EnvType:          "LOCAL",
		DBDriver:         "sqlite",
		DBPath:           filepath.Join(dir, "test.db"),
		DBMigrationMode:  "auto",
		ServerPort:       "0",
		BaseURL:          "http://localhost:3000",
		CORSOrigin:       "*",
		UploadDir:        filepath.Join(dir, "uploads"),
		OTPStore:         "db",
		OTPExpiryMinutes: 10,
		JWTSecretKey:     "test-secret",
		JWTExpiryHours:   1,
	}
}

// NewDB opens and migrates the sqlite database of cfg. The pool holds a
// single connection, so code inside a transaction must only use the tx handle.
func NewDB(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()
	db, err := database.Open(cfg, logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts a verified user with DefaultPassword
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		Phone:        "9000000000",
		PasswordHash: hash,
		IsVerified:   true,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(models.NewPrivacySetting(user.ID)).Error)
	return user
}

// CreateCommunity inserts a community with head as its head member
func CreateCommunity(t *testing.T, db *gorm.DB, head *models.User, inviteCode string) *models.Community {
	t.Helper()
	community := &models.Community{Name: "Green Park", Location: "Pune", InviteCode: inviteCode, CreatedBy: head.ID}
	require.NoError(t, db.Create(community).Error)
	AddMember(t, db, community, head, "head")
	return community
}

// AddMember inserts a membership row
func AddMember(t *testing.T, db *gorm.DB, community *models.Community, user *models.User, role string) {
	t.Helper()
	require.NoError(t, db.Create(&models.CommunityUser{UserID: user.ID, CommunityID: community.ID, Role: role}).Error)
}

// SentOTP records one call to FakeMailer.SendOTP
type SentOTP struct {
	To      string
	OTP     string
	Purpose mailer.Purpose
	Expiry  time.Duration
}

// FakeMailer records mails instead of sending them
type FakeMailer struct {
	mu   sync.Mutex
	Sent []SentOTP
	Err  error
}

func (m *FakeMailer) SendOTP(to, otp string, purpose mailer.Purpose, expiry time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentOTP{To: to, OTP: otp, Purpose: purpose, Expiry: expiry})
	return nil
}

// Last returns the most recent mail, or the zero value
func (m *FakeMailer) Last() SentOTP {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentOTP{}
	}
	return m.Sent[len(m.Sent)-1]
}
