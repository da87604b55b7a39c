package configs

import (
	"strings"

	"qrmenu/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// สร้าง admin ครั้งแรก
func SeedAdmin(db *gorm.DB, email, pass string, log logrus.FieldLogger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || pass == "" {
		log.Warn("⚠️ skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.WithField("email", email).Info("ℹ️ admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      entity.RoleAdmin,
		IsActive:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.WithField("email", email).Info("✅ admin seeded")
	return nil
}
