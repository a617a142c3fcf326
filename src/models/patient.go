package models

import (
	"fmt"
	"time"
)

// Patient is a registered patient. Records are never updated in place.
type Patient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// PatientSummary is the row shape used to populate the patient selector
type PatientSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Label string `json:"label"`
}

// DisplayLabel returns the selector label, e.g. "Alex Doe (ID:3)"
func DisplayLabel(id int64, name string) string {
	return fmt.Sprintf("%s (ID:%d)", name, id)
}

// Label returns the patient's display label
func (p *Patient) Label() string {
	return DisplayLabel(p.ID, p.Name)
}
