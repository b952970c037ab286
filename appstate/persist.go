package appstate

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NetworkPreference is the one persisted business value: the last-used
// network name. Single row.
type NetworkPreference struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:16"`
	UpdatedAt time.Time
}

// Activity is one submitted transaction, kept as the dashboard's history.
type Activity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Signature    string    `gorm:"uniqueIndex;size:88" json:"signature"`
	Program      string    `gorm:"index;size:16" json:"program"`
	Status       string    `gorm:"size:16" json:"status"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Activity) TableName() string {
	return "activities"
}

// Prefs is the sqlite-backed persistence for the preference and the
// activity log.
type Prefs struct {
	db *gorm.DB
}

// OpenPrefs opens (or creates) the database at path and migrates the schema.
func OpenPrefs(path string) (*Prefs, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference db: %w", err)
	}
	if err := db.AutoMigrate(&NetworkPreference{}, &Activity{}); err != nil {
		return nil, fmt.Errorf("failed to migrate preference db: %w", err)
	}
	return &Prefs{db: db}, nil
}

// SaveNetwork upserts the last-used network name.
func (p *Prefs) SaveNetwork(name string) error {
	pref := NetworkPreference{ID: 1, Name: name}
	return p.db.Save(&pref).Error
}

// LastNetwork returns the persisted network name, or empty if none was ever
// saved.
func (p *Prefs) LastNetwork() (string, error) {
	var pref NetworkPreference
	err := p.db.First(&pref, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return pref.Name, nil
}

// RecordActivity appends one submitted transaction to the history.
func (p *Prefs) RecordActivity(signature, program, status, errMsg string) error {
	return p.db.Create(&Activity{
		Signature:    signature,
		Program:      program,
		Status:       status,
		ErrorMessage: errMsg,
	}).Error
}

// RecentActivity returns the newest entries, capped at limit.
func (p *Prefs) RecentActivity(limit int) ([]Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var entries []Activity
	err := p.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
