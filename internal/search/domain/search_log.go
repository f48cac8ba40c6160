package domain

import "time"

// Persona is the target audience a summary is written for.
type Persona string

const (
	PersonaClinician Persona = "Clinician"
	PersonaPatient   Persona = "Patient"
)

// ParsePersona maps a form/JSON value to a Persona, defaulting to Clinician.
func ParsePersona(s string) Persona {
	if Persona(s) == PersonaPatient {
		return PersonaPatient
	}
	return PersonaClinician
}

// SearchLog is one archived query/summary pair. Rows are append-only: they are
// created once per completed search and never updated or deleted.
type SearchLog struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Query   string    `json:"query" gorm:"size:255;not null"`
	Summary string    `json:"summary" gorm:"type:text;not null"`
	Persona string    `json:"persona" gorm:"size:50;default:Clinician"`
	Date    time.Time `json:"date"`
	Sources string    `json:"sources" gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (SearchLog) TableName() string {
	return "search_logs"
}

// SourceSeparator joins article titles in the Sources column.
const SourceSeparator = " || "

// MaxQueryLength is the stored-query truncation limit.
const MaxQueryLength = 250
