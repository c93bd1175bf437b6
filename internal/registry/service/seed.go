package service

import (
	"context"
	"time"

	"testament/internal/registry/models"
	id "testament/pkg/domain"
	"testament/pkg/requestcontext"
)

// Fixtures returns the demo records: one death and its approved grant, both
// dated at now.
func Fixtures(now time.Time) ([]models.DeathRecord, []models.ProbateRecord) {
	deceased := id.NationalID("S7654321B")
	deaths := []models.DeathRecord{{
		NationalID:      deceased,
		DeceasedName:    "Jane Doe",
		DateOfBirth:     time.Date(1998, time.August, 18, 0, 0, 0, 0, time.UTC),
		Gender:          "Male",
		Nationality:     "Singaporean",
		DateOfDeath:     now,
		CertificateFile: deceased.String() + ".pdf",
	}}
	grants := []models.ProbateRecord{{
		NationalID:          deceased,
		CaseNumber:          "SGP2025-00123",
		ApplicantName:       "John Doe",
		ApplicantNationalID: id.NationalID("S1234567A"),
		DeceasedName:        "Jane Doe",
		Court:               "Family Justice Courts of Singapore",
		Approved:            true,
		DateGranted:         now,
		DocumentFile:        deceased.String() + "-grant.pdf",
	}}
	return deaths, grants
}

// Seed stores the demo fixtures.
func (s *Service) Seed(ctx context.Context) error {
	deaths, grants := Fixtures(requestcontext.Now(ctx))
	for _, d := range deaths {
		if err := s.RecordDeath(ctx, d); err != nil {
			return err
		}
	}
	for _, g := range grants {
		if err := s.RecordGrant(ctx, g); err != nil {
			return err
		}
	}
	s.logger.InfoContext(ctx, "registry seeded",
		"deaths", len(deaths),
		"grants", len(grants),
	)
	return nil
}
