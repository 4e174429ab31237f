package models

import "time"

// Visit is one pedagogical visit report ("visitas"). Rows are immutable once
// written.
type Visit struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"column:usuario_id;not null"`
	User   User `gorm:"foreignKey:UserID"`

	ReportNumber string `gorm:"column:numero_informe;uniqueIndex"` // INF-<year>-<seq>
	Date         string `gorm:"column:fecha"`                      // free text, the form sends YYYY-MM-DD
	Institution  string `gorm:"column:institucion"`
	Level        string `gorm:"column:nivel"`
	VisitType    string `gorm:"column:tipo_visita"`

	Strengths       string `gorm:"column:fortalezas"`
	Improvements    string `gorm:"column:mejoras"`
	Recommendations string `gorm:"column:recomendaciones"`
	Commitments     string `gorm:"column:compromisos"`

	CreatedAt time.Time `gorm:"column:creado_en"`
}

func (Visit) TableName() string { return "visitas" }

// Options offered by the visit form. Stored values are free text; older rows
// may hold anything.
var (
	Levels     = []string{"Inicial", "Primaria", "Secundaria", "EBA", "EBE"}
	VisitTypes = []string{"Monitoreo", "Acompañamiento", "Asesoría", "Supervisión"}
)
