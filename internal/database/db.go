package database

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"despensa-backend/internal/config"
	"despensa-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Open connects to the SQLite file at path, creating parent directories
// as needed. Foreign keys are enabled per connection.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Sale{},
		&models.SaleLine{},
		&models.Purchase{},
		&models.PurchaseLine{},
		&models.Restock{},
		&models.RestockLine{},
		&models.CashRegister{},
		&models.ExpirationBatch{},
		&models.User{},
	)
}

// Seed guarantees the single cash register row exists and creates the
// default admin account when the user table is empty.
func Seed(db *gorm.DB) error {
	var reg models.CashRegister
	err := db.First(&reg, models.CashRegisterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(&models.CashRegister{ID: models.CashRegisterID, Total: 0}).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{Username: "admin", PasswordHash: string(hash), Role: models.RoleAdmin}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Println("[WARN] default admin user created (admin/admin), change the password")
	}

	return nil
}

func Init(cfg *config.Config) {
	var err error

	DB, err = Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("cannot open database %s: %v", cfg.DatabasePath, err)
	}
	if err := Migrate(DB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := Seed(DB); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	log.Println("database ready:", cfg.DatabasePath)
}
