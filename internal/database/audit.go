package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
)

// RecordAudit appends an account change. Pass the transaction that made the
// change so both commit together. actorID 0 means no session user.
func RecordAudit(tx *gorm.DB, actorID, userID uint, action, details string) error {
	entry := models.AuditEntry{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	if actorID != 0 {
		entry.ActorID = &actorID
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit %s user %d: %w", action, userID, err)
	}
	return nil
}
