package database

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Database struct {
	db *gorm.DB
}

// Wallet is a registered wallet address for a Discord user. A user can
// register any number of addresses; the (discord_user_id, wallet_address)
// pair is unique and re-registering an address replaces the stored row.
type Wallet struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	DiscordUserID string `gorm:"column:discord_user_id;uniqueIndex:idx_user_wallet"`
	Address       string `gorm:"column:wallet_address;uniqueIndex:idx_user_wallet"`
	Name          string `gorm:"column:wallet_name"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func New(dbPath string) (*Database, error) {
	var db *gorm.DB
	var err error

	// Check if this is a PostgreSQL connection string
	if strings.HasPrefix(dbPath, "postgres://") || strings.HasPrefix(dbPath, "postgresql://") {
		db, err = gorm.Open(postgres.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("Database connected (PostgreSQL)")
	} else {
		// SQLite fallback
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", dbPath).Msg("Database initialized (SQLite)")
	}

	if err := db.AutoMigrate(&Wallet{}); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// UpsertWallet inserts a wallet row or replaces the existing row sharing
// the same (user, address) pair. The stored name is overwritten with the
// incoming value, empty included.
func (d *Database) UpsertWallet(userID, address, name string) error {
	wallet := Wallet{
		DiscordUserID: userID,
		Address:       address,
		Name:          name,
	}

	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "discord_user_id"}, {Name: "wallet_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"wallet_name", "updated_at"}),
	}).Create(&wallet).Error
}

// ListWallets returns all wallets registered by the user in insertion order.
func (d *Database) ListWallets(userID string) ([]Wallet, error) {
	var wallets []Wallet
	err := d.db.Where("discord_user_id = ?", userID).Order("id ASC").Find(&wallets).Error
	return wallets, err
}

// RenameWallet sets the name on an existing (user, address) row. If no such
// row exists it falls back to creating one, so a user can "rename" a wallet
// they never explicitly added. Returns the number of rows updated or created.
func (d *Database) RenameWallet(userID, address, name string) (int64, error) {
	res := d.db.Model(&Wallet{}).
		Where("discord_user_id = ? AND wallet_address = ?", userID, address).
		Update("wallet_name", name)
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		if err := d.UpsertWallet(userID, address, name); err != nil {
			return 0, err
		}
		return 1, nil
	}

	return res.RowsAffected, nil
}

// DeleteWallet removes the matching row and returns how many rows were
// removed (0 or 1).
func (d *Database) DeleteWallet(userID, address string) (int64, error) {
	res := d.db.Where("discord_user_id = ? AND wallet_address = ?", userID, address).Delete(&Wallet{})
	return res.RowsAffected, res.Error
}

// Close closes the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
