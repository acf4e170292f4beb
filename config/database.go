package config

import (
	"fmt"

	"github.com/tee-elite/circle-wallet/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection and migrates the wallet schema.
func InitDB() {
	config := App
	if config == nil {
		loaded, err := LoadConfig()
		if err != nil {
			panic(fmt.Sprintf("Failed to load config: %v", err))
		}
		config = loaded
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db
	MigrateDB(db)
}

// MigrateDB runs the schema migration. Split out so tests can run the same
// migration against their own database handle.
func MigrateDB(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Member{},
		&models.Session{},
		&models.WalletItem{},
		&models.Wallet{},
		&models.WishlistEntry{},
		&models.Redemption{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}
