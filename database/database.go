package database

import (
	"leaguemanager/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	return Migrate(DB)
}

// Migrate applies the schema. Shared with tests, which open their own
// gorm connection.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Team{}, &models.Player{}, &models.Transfer{})
	if err != nil {
		return err
	}

	// At most one pending transfer per player. The partial unique index
	// makes the check-then-insert in the listing flow race-free at the
	// store, as concurrent inserts collide here.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_transfers_pending_player
		 ON transfers (player_id) WHERE status = 'pending'`,
	).Error
}

func GetDB() *gorm.DB {
	return DB
}
