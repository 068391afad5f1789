package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/config"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var (
	// ErrProgramFull is returned when accepting would push a program past max_participants.
	ErrProgramFull = errors.New("program is full")
	// ErrCapacityBelowAccepted is returned when max_participants would drop below the accepted count.
	ErrCapacityBelowAccepted = errors.New("max participants below accepted enrollments")
)

type Store struct {
	DB *gorm.DB
}

func NewGormStore(cfg *config.Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Pooling sensible defaults for small VPS (tune later)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return &Store{DB: db}, nil
}

// New wraps an already opened connection.
func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

// Migrate creates missing tables, columns and indexes. It never drops anything.
func (s *Store) Migrate(ctx context.Context) error {
	return s.DB.WithContext(ctx).
		Set("gorm:DisableForeignKeyConstraintWhenMigrating", true).
		AutoMigrate(
			&models.User{},
			&models.RefreshToken{},
			&models.MentorshipProgram{},
			&models.FormField{},
			&models.Enrollment{},
			&models.FormResponse{},
			&models.AuditEntry{},
		)
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

/* ------------------ Refresh token methods ------------------ */

func hashTokenPlain(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// SaveRefreshToken stores a token (hashed) and expiry
func (s *Store) SaveRefreshToken(ctx context.Context, userID, plainToken string, expiresAt time.Time) error {
	rt := models.RefreshToken{
		UserID:    userID,
		TokenHash: hashTokenPlain(plainToken),
		IssuedAt:  time.Now(),
		ExpiresAt: expiresAt,
		Revoked:   false,
	}
	return s.DB.WithContext(ctx).Create(&rt).Error
}

// lockRefreshToken returns the token row if valid and not revoked, locked
// until tx ends so a token can be rotated only once.
func lockRefreshToken(tx *gorm.DB, plainToken string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_hash = ? AND revoked = false AND expires_at > now()", hashTokenPlain(plainToken)).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// RevokeRefreshToken marks token revoked
func (s *Store) RevokeRefreshToken(ctx context.Context, plainToken string) error {
	return s.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", hashTokenPlain(plainToken)).Updates(map[string]interface{}{"revoked": true}).Error
}

// RotateRefreshToken revokes the old token and stores its replacement for the
// same user. It returns the owning user id.
func (s *Store) RotateRefreshToken(ctx context.Context, oldPlain, newPlain string, newExpiry time.Time) (string, error) {
	var userID string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		old, err := lockRefreshToken(tx, oldPlain)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.RefreshToken{}).Where("id = ?", old.ID).Update("revoked", true).Error; err != nil {
			return err
		}
		userID = old.UserID
		return tx.Create(&models.RefreshToken{
			UserID:    old.UserID,
			TokenHash: hashTokenPlain(newPlain),
			IssuedAt:  time.Now(),
			ExpiresAt: newExpiry,
		}).Error
	})
	return userID, err
}

// DeleteExpiredTokens removes expired or revoked refresh tokens and reports how many went.
func (s *Store) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).Where("expires_at < now() OR revoked = true").Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}

/* ------------------ Helpers ------------------ */

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
