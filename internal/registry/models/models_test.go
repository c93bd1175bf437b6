package models

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

func validDeath() DeathRecord {
	return DeathRecord{
		NationalID:      id.NationalID("S7654321B"),
		DeceasedName:    "Jane Doe",
		DateOfBirth:     time.Date(1950, 8, 18, 0, 0, 0, 0, time.UTC),
		DateOfDeath:     time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		CertificateFile: "S7654321B.pdf",
	}
}

func TestDeathRecordValidate(t *testing.T) {
	require.NoError(t, validDeath().Validate())

	tests := []struct {
		name   string
		mutate func(*DeathRecord)
	}{
		{"missing national id", func(r *DeathRecord) { r.NationalID = "" }},
		{"missing name", func(r *DeathRecord) { r.DeceasedName = "  " }},
		{"missing date of death", func(r *DeathRecord) { r.DateOfDeath = time.Time{} }},
		{"born after death", func(r *DeathRecord) { r.DateOfBirth = r.DateOfDeath.Add(time.Hour) }},
		{"path traversal", func(r *DeathRecord) { r.CertificateFile = "../etc/passwd" }},
		{"nested path", func(r *DeathRecord) { r.CertificateFile = "a/b.pdf" }},
		{"windows separator", func(r *DeathRecord) { r.CertificateFile = `..\b.pdf` }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validDeath()
			tt.mutate(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestProbateRecordValidate(t *testing.T) {
	r := ProbateRecord{
		NationalID:  id.NationalID("S7654321B"),
		CaseNumber:  "SGP2025-00123",
		Court:       "Family Justice Courts of Singapore",
		Approved:    true,
		DateGranted: time.Now(),
	}
	require.NoError(t, r.Validate())

	r.Court = ""
	assert.Error(t, r.Validate())
}

func TestDayBounds(t *testing.T) {
	sgt, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)

	// 2026-03-01 20:00 UTC is 2026-03-02 04:00 in Singapore.
	start, end := DayBounds(time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC), sgt)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, sgt), start)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, sgt), end)
}
