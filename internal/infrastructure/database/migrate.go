package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	Logger "github.com/RealSujal/community-app/pkg/logger"
)

// AutoMigrate creates missing tables and columns. It never drops anything.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	Logger.Info("database migration completed")
	return nil
}

// DropAndRecreate drops every application table and migrates again.
// All data is lost.
func DropAndRecreate(db *gorm.DB) error {
	Logger.Warning("dropping and recreating all tables, all data will be lost")

	all := models.All()
	// drop in reverse dependency order
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop table %T: %w", all[i], err)
		}
	}
	return AutoMigrate(db)
}

// Migrate runs the migration selected by mode ("drop" or anything else for auto)
func Migrate(db *gorm.DB, mode string) error {
	if mode == "drop" {
		return DropAndRecreate(db)
	}
	return AutoMigrate(db)
}

var defaultFAQs = []models.FAQ{
	{Question: "How do I join a community?", Answer: "Ask a member for the invite code and enter it on the Join Community screen."},
	{Question: "How do I add family members?", Answer: "Register your family first, then add each member from the My Family screen. The first member you add becomes the head."},
	{Question: "Who can remove members?", Answer: "The community head and admins can remove members. Only the head can transfer headship."},
	{Question: "I forgot my password.", Answer: "Use Forgot Password on the login screen. We will email you a 4-digit code."},
}

// SeedFAQs inserts the default FAQ entries when the table is empty
func SeedFAQs(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.FAQ{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	faqs := make([]models.FAQ, len(defaultFAQs))
	copy(faqs, defaultFAQs)
	return db.Create(&faqs).Error
}
