package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vaccination is a single vaccination entry in a conductor's medical record.
type Vaccination struct {
	Name           string `json:"name"`
	AdministeredOn Date   `json:"administeredOn"`
}

// MedicalRecord is the typed medical file of a conductor, stored as a jsonb
// column. The fit-for-duty flag is what dispatch consults before a check-in.
type MedicalRecord struct {
	LastExamOn   *Date         `json:"lastExamOn,omitempty"`
	FitForDuty   bool          `json:"fitForDuty"`
	Restrictions []string      `json:"restrictions,omitempty"`
	Vaccinations []Vaccination `json:"vaccinations,omitempty"`
}

// Conductor is a driver employed on the network.
type Conductor struct {
	ID          uuid.UUID     `json:"id"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	BadgeNumber string        `json:"badgeNumber"`
	HiredOn     Date          `json:"hiredOn"`
	Active      bool          `json:"active"`
	Medical     MedicalRecord `json:"medical"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
