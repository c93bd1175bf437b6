package will

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"testament/internal/will/models"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
	txcontext "testament/pkg/platform/tx"
)

// PostgresStore persists wills in PostgreSQL. The ordered ledger is stored as
// parallel beneficiary/percent arrays so order survives round trips.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const willColumns = `owner, national_id, residual, beneficiaries, percents, digital_assets,
		editors, viewers, state, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, w *models.Will) error {
	if w == nil {
		return fmt.Errorf("will is required")
	}
	beneficiaries, percents := splitShares(w.Beneficiaries)
	query := `
		INSERT INTO wills (` + willColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT DO NOTHING
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		w.Owner.String(),
		w.NationalID.String(),
		w.Residual.String(),
		pq.Array(beneficiaries),
		pq.Array(percents),
		w.DigitalAssets,
		pq.Array(identityStrings(w.Editors)),
		pq.Array(identityStrings(w.Viewers)),
		w.State.String(),
		w.CreatedAt,
		w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert will: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert will rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("will for %s: %w", w.Owner, sentinel.ErrConflict)
	}
	return nil
}

func (s *PostgresStore) FindByOwner(ctx context.Context, owner id.Identity) (*models.Will, error) {
	query := `SELECT ` + willColumns + ` FROM wills WHERE owner = $1`
	return scanWill(s.execer(ctx).QueryRowContext(ctx, query, owner.String()))
}

// FindForUpdate locks the will row for the surrounding transaction.
func (s *PostgresStore) FindForUpdate(ctx context.Context, owner id.Identity) (*models.Will, error) {
	query := `SELECT ` + willColumns + ` FROM wills WHERE owner = $1 FOR UPDATE`
	return scanWill(s.execer(ctx).QueryRowContext(ctx, query, owner.String()))
}

func (s *PostgresStore) FindByNationalID(ctx context.Context, nationalID id.NationalID) (*models.Will, error) {
	query := `SELECT ` + willColumns + ` FROM wills WHERE national_id = $1`
	return scanWill(s.execer(ctx).QueryRowContext(ctx, query, nationalID.String()))
}

func (s *PostgresStore) Save(ctx context.Context, w *models.Will) error {
	if w == nil {
		return fmt.Errorf("will is required")
	}
	beneficiaries, percents := splitShares(w.Beneficiaries)
	query := `
		UPDATE wills SET
			residual = $2,
			beneficiaries = $3,
			percents = $4,
			digital_assets = $5,
			editors = $6,
			viewers = $7,
			state = $8,
			updated_at = $9
		WHERE owner = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		w.Owner.String(),
		w.Residual.String(),
		pq.Array(beneficiaries),
		pq.Array(percents),
		w.DigitalAssets,
		pq.Array(identityStrings(w.Editors)),
		pq.Array(identityStrings(w.Viewers)),
		w.State.String(),
		w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update will: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update will rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByState(ctx context.Context, state models.State) ([]*models.Will, error) {
	query := `SELECT ` + willColumns + ` FROM wills WHERE state = $1 ORDER BY owner`
	rows, err := s.execer(ctx).QueryContext(ctx, query, state.String())
	if err != nil {
		return nil, fmt.Errorf("list wills by state: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Will, 0)
	for rows.Next() {
		w, err := scanWill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wills: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWill(row rowScanner) (*models.Will, error) {
	var (
		w                        models.Will
		owner, nationalID, resid string
		state                    string
		beneficiaries            []string
		percents                 []int64
		editors, viewers         []string
	)
	err := row.Scan(
		&owner,
		&nationalID,
		&resid,
		pq.Array(&beneficiaries),
		pq.Array(&percents),
		&w.DigitalAssets,
		pq.Array(&editors),
		pq.Array(&viewers),
		&state,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan will: %w", err)
	}
	if len(beneficiaries) != len(percents) {
		return nil, fmt.Errorf("scan will %s: ledger arrays differ in length", owner)
	}
	parsedState, err := models.ParseState(state)
	if err != nil {
		return nil, fmt.Errorf("scan will %s: %w", owner, err)
	}
	w.Owner = id.Identity(owner)
	w.NationalID = id.NationalID(nationalID)
	w.Residual = id.Identity(resid)
	w.State = parsedState
	w.Beneficiaries = make([]models.Share, len(beneficiaries))
	for i := range beneficiaries {
		w.Beneficiaries[i] = models.Share{Beneficiary: id.Identity(beneficiaries[i]), Percent: int(percents[i])}
	}
	w.Editors = toIdentities(editors)
	w.Viewers = toIdentities(viewers)
	return &w, nil
}

func splitShares(shares []models.Share) ([]string, []int64) {
	beneficiaries := make([]string, len(shares))
	percents := make([]int64, len(shares))
	for i, s := range shares {
		beneficiaries[i] = s.Beneficiary.String()
		percents[i] = int64(s.Percent)
	}
	return beneficiaries, percents
}

func identityStrings(ids []id.Identity) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}

func toIdentities(values []string) []id.Identity {
	out := make([]id.Identity, len(values))
	for i, v := range values {
		out[i] = id.Identity(v)
	}
	return out
}
