package store

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/RachelRYuan/Blogen/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the GORM database connection and exposes the
// repository operations used by the service layer.
type Store struct {
	db *gorm.DB
}

// New opens the database, runs migrations and seeds the default
// roles, avatars and admin account. adminPassword may be empty, in
// which case a random password is generated and logged once.
func New(driver, dsn, adminPassword string) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&models.Role{},
		&models.Avatar{},
		&models.User{},
		&models.UserPrefs{},
		&models.Category{},
		&models.Post{},
	); err != nil {
		return nil, err
	}

	store := &Store{db: db}

	// Seed default data
	if err := store.seedData(adminPassword); err != nil {
		log.Printf("Warning: failed to seed data: %v", err)
	}

	return store, nil
}

// generateRandomPassword generates a random password of specified length
func generateRandomPassword(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	// Use base64 URL encoding to get a safe, printable password
	return base64.URLEncoding.EncodeToString(bytes)[:length], nil
}

func (s *Store) seedData(adminPassword string) error {
	// Create the well-known roles if missing
	for _, name := range []string{models.RoleUser, models.RoleAPI, models.RoleAdmin} {
		role := models.Role{Name: name}
		if err := s.db.Where(models.Role{Name: name}).
			FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}

	// Create the stock avatar catalog if missing
	for i := 0; i < 8; i++ {
		fileName := fmt.Sprintf("avatar%d.jpg", i)
		avatar := models.Avatar{FileName: fileName}
		if err := s.db.Where(models.Avatar{FileName: fileName}).
			FirstOrCreate(&avatar).Error; err != nil {
			return fmt.Errorf("failed to seed avatar %s: %w", fileName, err)
		}
	}

	// Create default admin user if no users exist
	var userCount int64
	s.db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		password := adminPassword
		generated := false
		if password == "" {
			var err error
			password, err = generateRandomPassword(16)
			if err != nil {
				return err
			}
			generated = true
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		var roles []models.Role
		if err := s.db.Where("name IN ?",
			[]string{models.RoleUser, models.RoleAPI, models.RoleAdmin}).
			Find(&roles).Error; err != nil {
			return err
		}
		var avatar models.Avatar
		if err := s.db.Where("file_name = ?", "avatar0.jpg").
			First(&avatar).Error; err != nil {
			return err
		}

		user := &models.User{
			UserName:     "admin",
			Email:        "admin@localhost",
			FirstName:    "Site",
			LastName:     "Admin",
			PasswordHash: string(hash),
			Enabled:      true,
			Roles:        roles,
			Prefs: models.UserPrefs{
				AvatarID: avatar.ID,
			},
		}
		if err := s.db.Create(user).Error; err != nil {
			return err
		}
		if generated {
			log.Printf("Created default user: admin / %s (roles: user, api, admin)", password)
		} else {
			log.Printf("Created default user: admin (roles: user, api, admin)")
		}
	}

	return nil
}

// Health checks the database connection
func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the underlying GORM database connection (for transactions)
func (s *Store) DB() *gorm.DB {
	return s.db
}
