package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"testament/internal/platform/migrate"
	"testament/internal/registry/models"
	"testament/internal/registry/store/migrations"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
)

// SQLiteStore persists registry documents in a single SQLite file. Times are
// stored as UTC unix milliseconds.
type SQLiteStore struct {
	db *sql.DB
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMilli(v).UTC()
}

// OpenSQLite opens path and applies the embedded migrations. ":memory:" opens
// a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps ":memory:" a single database and serializes writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate.Apply(ctx, db, migrations.FS, migrate.SQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run registry migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) PutDeath(ctx context.Context, r models.DeathRecord) error {
	query := `
		INSERT INTO death_records (
			national_id, deceased_name, date_of_birth, gender, nationality,
			date_of_death, certificate_file
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (national_id) DO UPDATE SET
			deceased_name = excluded.deceased_name,
			date_of_birth = excluded.date_of_birth,
			gender = excluded.gender,
			nationality = excluded.nationality,
			date_of_death = excluded.date_of_death,
			certificate_file = excluded.certificate_file
	`
	_, err := s.db.ExecContext(ctx, query,
		r.NationalID.String(),
		r.DeceasedName,
		toMillis(r.DateOfBirth),
		r.Gender,
		r.Nationality,
		toMillis(r.DateOfDeath),
		r.CertificateFile,
	)
	if err != nil {
		return fmt.Errorf("put death record: %w", err)
	}
	return nil
}

const deathColumns = `national_id, deceased_name, date_of_birth, gender, nationality, date_of_death, certificate_file`

func (s *SQLiteStore) GetDeath(ctx context.Context, nationalID id.NationalID) (*models.DeathRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+deathColumns+` FROM death_records WHERE national_id = ?`, nationalID.String())
	r, err := scanDeath(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get death record: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) ListDeaths(ctx context.Context, from, to time.Time) ([]models.DeathRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+deathColumns+` FROM death_records
		 WHERE date_of_death >= ? AND date_of_death < ?
		 ORDER BY date_of_death ASC, national_id ASC`,
		toMillis(from), toMillis(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list death records: %w", err)
	}
	defer rows.Close()

	out := []models.DeathRecord{}
	for rows.Next() {
		r, err := scanDeath(rows)
		if err != nil {
			return nil, fmt.Errorf("scan death record: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate death records: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) PutGrant(ctx context.Context, r models.ProbateRecord) error {
	query := `
		INSERT INTO probate_records (
			national_id, case_number, applicant_name, applicant_national_id,
			deceased_name, court, approved, date_granted, document_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (national_id) DO UPDATE SET
			case_number = excluded.case_number,
			applicant_name = excluded.applicant_name,
			applicant_national_id = excluded.applicant_national_id,
			deceased_name = excluded.deceased_name,
			court = excluded.court,
			approved = excluded.approved,
			date_granted = excluded.date_granted,
			document_file = excluded.document_file
	`
	_, err := s.db.ExecContext(ctx, query,
		r.NationalID.String(),
		r.CaseNumber,
		r.ApplicantName,
		r.ApplicantNationalID.String(),
		r.DeceasedName,
		r.Court,
		r.Approved,
		toMillis(r.DateGranted),
		r.DocumentFile,
	)
	if err != nil {
		return fmt.Errorf("put probate record: %w", err)
	}
	return nil
}

const grantColumns = `national_id, case_number, applicant_name, applicant_national_id, deceased_name, court, approved, date_granted, document_file`

func (s *SQLiteStore) GetGrant(ctx context.Context, nationalID id.NationalID) (*models.ProbateRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+grantColumns+` FROM probate_records WHERE national_id = ?`, nationalID.String())
	r, err := scanGrant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get probate record: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) ListGrants(ctx context.Context, from, to time.Time) ([]models.ProbateRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+grantColumns+` FROM probate_records
		 WHERE date_granted >= ? AND date_granted < ?
		 ORDER BY date_granted ASC, national_id ASC`,
		toMillis(from), toMillis(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list probate records: %w", err)
	}
	defer rows.Close()

	out := []models.ProbateRecord{}
	for rows.Next() {
		r, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan probate record: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate probate records: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	for _, table := range []string{"death_records", "probate_records"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeath(row rowScanner) (*models.DeathRecord, error) {
	var (
		r           models.DeathRecord
		nid         string
		born, death int64
	)
	if err := row.Scan(&nid, &r.DeceasedName, &born, &r.Gender, &r.Nationality, &death, &r.CertificateFile); err != nil {
		return nil, err
	}
	r.NationalID = id.NationalID(nid)
	r.DateOfBirth = fromMillis(born)
	r.DateOfDeath = fromMillis(death)
	return &r, nil
}

func scanGrant(row rowScanner) (*models.ProbateRecord, error) {
	var (
		r              models.ProbateRecord
		nid, applicant string
		granted        int64
	)
	if err := row.Scan(&nid, &r.CaseNumber, &r.ApplicantName, &applicant, &r.DeceasedName, &r.Court, &r.Approved, &granted, &r.DocumentFile); err != nil {
		return nil, err
	}
	r.NationalID = id.NationalID(nid)
	r.ApplicantNationalID = id.NationalID(applicant)
	r.DateGranted = fromMillis(granted)
	return &r, nil
}
