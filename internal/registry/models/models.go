// Package models holds the government registry documents: death
// certificates and grants of probate, each keyed by the deceased's national id.
package models

import (
	"path"
	"strings"
	"time"

	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

// DeathRecord is a registered death certificate.
type DeathRecord struct {
	NationalID      id.NationalID `json:"national_id"`
	DeceasedName    string        `json:"deceased_name"`
	DateOfBirth     time.Time     `json:"date_of_birth"`
	Gender          string        `json:"gender"`
	Nationality     string        `json:"nationality"`
	DateOfDeath     time.Time     `json:"date_of_death"`
	CertificateFile string        `json:"certificate_file"`
}

// ProbateRecord is a court's grant of probate over the deceased's estate.
// Only approved grants count as confirmations.
type ProbateRecord struct {
	NationalID          id.NationalID `json:"national_id"`
	CaseNumber          string        `json:"case_number"`
	ApplicantName       string        `json:"applicant_name"`
	ApplicantNationalID id.NationalID `json:"applicant_national_id"`
	DeceasedName        string        `json:"deceased_name"`
	Court               string        `json:"court"`
	Approved            bool          `json:"approved"`
	DateGranted         time.Time     `json:"date_granted"`
	DocumentFile        string        `json:"document_file"`
}

func (r DeathRecord) Validate() error {
	if r.NationalID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "national id is required")
	}
	if strings.TrimSpace(r.DeceasedName) == "" {
		return dErrors.New(dErrors.CodeValidation, "deceased name is required")
	}
	if r.DateOfDeath.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "date of death is required")
	}
	if !r.DateOfBirth.IsZero() && r.DateOfBirth.After(r.DateOfDeath) {
		return dErrors.New(dErrors.CodeValidation, "date of birth is after date of death")
	}
	return validateFile(r.CertificateFile)
}

func (r ProbateRecord) Validate() error {
	if r.NationalID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "national id is required")
	}
	if strings.TrimSpace(r.CaseNumber) == "" {
		return dErrors.New(dErrors.CodeValidation, "case number is required")
	}
	if strings.TrimSpace(r.Court) == "" {
		return dErrors.New(dErrors.CodeValidation, "court is required")
	}
	if r.DateGranted.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "date granted is required")
	}
	return validateFile(r.DocumentFile)
}

// validateFile accepts an empty name or a plain file name inside the data
// directory. Anything that could climb out of it is rejected.
func validateFile(name string) error {
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." || path.Clean(name) != name {
		return dErrors.Newf(dErrors.CodeValidation, "invalid document file name %q", name)
	}
	return nil
}

// DayBounds returns [start, end) of the calendar day containing t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
