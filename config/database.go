package config

import (
	"fmt"
	"log"
	"os"

	"aiva/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func postgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		GetEnvDefault("DB_PORT", "5432"),
		GetEnvDefault("DB_SSLMODE", "disable"),
	)
}

// ConnectDB opens the database connection. Postgres is used when DB_HOST is
// set; otherwise a local sqlite file keeps development self-contained.
func ConnectDB() {
	var err error

	if os.Getenv("DB_HOST") != "" {
		DB, err = gorm.Open(postgres.Open(postgresDSN()), &gorm.Config{})
	} else {
		path := GetEnvDefault("SQLITE_PATH", "chat.db")
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Fail to connect to db : %v", err)
	}

	if err := AutoMigrate(DB); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	log.Println("Successfully connected to db")
}

// AutoMigrate creates or updates the schema for all entities
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Preference{}, &models.Chat{}, &models.Message{})
}
