package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RealSujal/community-app/internal/domain/models"
)

// OTPStore keeps at most one outstanding code per email
type OTPStore interface {
	// Get returns ErrOTPNotFound when email has no code
	Get(email string) (*models.OTPVerification, error)
	// Save inserts or replaces the code of record.Email
	Save(record *models.OTPVerification) error
	Delete(email string) error
}

// GormOTPStore keeps codes in the otp_verifications table
type GormOTPStore struct {
	DB *gorm.DB
}

// NewGormOTPStore creates a table-backed store
func NewGormOTPStore(db *gorm.DB) OTPStore {
	return &GormOTPStore{DB: db}
}

func (s *GormOTPStore) Get(email string) (*models.OTPVerification, error) {
	var record models.OTPVerification
	if err := s.DB.Where("email = ?", email).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *GormOTPStore) Save(record *models.OTPVerification) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"otp", "purpose", "expires_at", "updated_at"}),
	}).Create(record).Error
}

func (s *GormOTPStore) Delete(email string) error {
	return s.DB.Where("email = ?", email).Delete(&models.OTPVerification{}).Error
}

// RedisOTPStore keeps codes under otp:<email> with a TTL matching the expiry.
// Redis drops expired keys itself, so an expired code reads as not found.
type RedisOTPStore struct {
	Redis InterfaceRedisService
}

// NewRedisOTPStore creates a Redis-backed store
func NewRedisOTPStore(redisService InterfaceRedisService) OTPStore {
	return &RedisOTPStore{Redis: redisService}
}

func otpKey(email string) string {
	return "otp:" + email
}

func (s *RedisOTPStore) Get(email string) (*models.OTPVerification, error) {
	var record models.OTPVerification
	if err := s.Redis.Get(otpKey(email), &record); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrOTPNotFound
		}
		return nil, fmt.Errorf("redis get otp: %w", err)
	}
	return &record, nil
}

func (s *RedisOTPStore) Save(record *models.OTPVerification) error {
	ttl := time.Until(record.ExpiresAt)
	if ttl < time.Second {
		ttl = time.Second
	}
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	return s.Redis.Set(otpKey(record.Email), record, ttl)
}

func (s *RedisOTPStore) Delete(email string) error {
	return s.Redis.Delete(otpKey(email))
}
