package models

import "time"

// Audit actions recorded for account changes.
const (
	AuditCreate     = "crear"
	AuditUpdate     = "actualizar"
	AuditDeactivate = "desactivar"
)

// AuditEntry is one account change made through the admin screens.
type AuditEntry struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"column:creado_en"`

	ActorID *uint `gorm:"column:actor_id"` // nil for changes made outside a session
	Actor   *User `gorm:"foreignKey:ActorID"`
	UserID  uint  `gorm:"column:usuario_id;not null"`

	Action  string `gorm:"column:accion;not null"`
	Details string `gorm:"column:detalle"`
}

func (AuditEntry) TableName() string { return "auditoria_usuarios" }
