package asset

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

// PostgresStore persists physical assets. Ids come from a BIGSERIAL column
// and title token ids from the asset_token_seq sequence.
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

const assetColumns = `id, owner, description, value, certification_url, beneficiaries, percents,
		distributed, proof_holders, proof_token_ids, proof_percents, created_at, distributed_at`

func (s *PostgresStore) Create(ctx context.Context, a *models.PhysicalAsset) (id.AssetID, error) {
	if a == nil {
		return 0, fmt.Errorf("asset is required")
	}
	beneficiaries, percents := splitShares(a.Beneficiaries)
	query := `
		INSERT INTO physical_assets (owner, description, value, certification_url, beneficiaries, percents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var assetID int64
	err := s.execer(ctx).QueryRowContext(ctx, query,
		a.Owner.String(),
		a.Description,
		a.Value,
		a.CertificationURL,
		pq.Array(beneficiaries),
		pq.Array(percents),
		a.CreatedAt,
	).Scan(&assetID)
	if err != nil {
		return 0, fmt.Errorf("insert asset: %w", err)
	}
	a.ID = id.AssetID(assetID)
	return a.ID, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, assetID id.AssetID) (*models.PhysicalAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM physical_assets WHERE id = $1`
	return scanAsset(s.execer(ctx).QueryRowContext(ctx, query, int64(assetID)))
}

// FindForUpdate locks the asset row for the surrounding transaction.
func (s *PostgresStore) FindForUpdate(ctx context.Context, assetID id.AssetID) (*models.PhysicalAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM physical_assets WHERE id = $1 FOR UPDATE`
	return scanAsset(s.execer(ctx).QueryRowContext(ctx, query, int64(assetID)))
}

func (s *PostgresStore) ListByOwner(ctx context.Context, owner id.Identity) ([]*models.PhysicalAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM physical_assets WHERE owner = $1 ORDER BY id`
	rows, err := s.execer(ctx).QueryContext(ctx, query, owner.String())
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	out := make([]*models.PhysicalAsset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Save(ctx context.Context, a *models.PhysicalAsset) error {
	if a == nil {
		return fmt.Errorf("asset is required")
	}
	beneficiaries, percents := splitShares(a.Beneficiaries)
	holders := make([]string, len(a.Proof))
	tokenIDs := make([]int64, len(a.Proof))
	proofPercents := make([]int64, len(a.Proof))
	for i, p := range a.Proof {
		holders[i] = p.Beneficiary.String()
		tokenIDs[i] = int64(p.TokenID)
		proofPercents[i] = int64(p.Percent)
	}
	query := `
		UPDATE physical_assets SET
			beneficiaries = $2,
			percents = $3,
			distributed = $4,
			proof_holders = $5,
			proof_token_ids = $6,
			proof_percents = $7,
			distributed_at = $8
		WHERE id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		int64(a.ID),
		pq.Array(beneficiaries),
		pq.Array(percents),
		a.Distributed,
		pq.Array(holders),
		pq.Array(tokenIDs),
		pq.Array(proofPercents),
		a.DistributedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update asset rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// NextTokenIDs reserves n title token ids from the sequence.
func (s *PostgresStore) NextTokenIDs(ctx context.Context, n int) ([]uint64, error) {
	if n <= 0 {
		return []uint64{}, nil
	}
	rows, err := s.execer(ctx).QueryContext(ctx, `SELECT nextval('asset_token_seq') FROM generate_series(1, $1)`, n)
	if err != nil {
		return nil, fmt.Errorf("reserve token ids: %w", err)
	}
	defer rows.Close()

	out := make([]uint64, 0, n)
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan token id: %w", err)
		}
		out = append(out, uint64(v))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token ids: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*models.PhysicalAsset, error) {
	var (
		a                            models.PhysicalAsset
		assetID                      int64
		owner                        string
		beneficiaries, holders       []string
		percents, tokens, proofShare []int64
		distributedAt                sql.NullTime
	)
	err := row.Scan(
		&assetID,
		&owner,
		&a.Description,
		&a.Value,
		&a.CertificationURL,
		pq.Array(&beneficiaries),
		pq.Array(&percents),
		&a.Distributed,
		pq.Array(&holders),
		pq.Array(&tokens),
		pq.Array(&proofShare),
		&a.CreatedAt,
		&distributedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan asset: %w", err)
	}
	if len(beneficiaries) != len(percents) || len(holders) != len(tokens) || len(holders) != len(proofShare) {
		return nil, fmt.Errorf("scan asset %d: array columns differ in length", assetID)
	}
	a.ID = id.AssetID(assetID)
	a.Owner = id.Identity(owner)
	a.Beneficiaries = make([]models.Share, len(beneficiaries))
	for i := range beneficiaries {
		a.Beneficiaries[i] = models.Share{Beneficiary: id.Identity(beneficiaries[i]), Percent: int(percents[i])}
	}
	if len(holders) > 0 {
		a.Proof = make([]models.ProofEntry, len(holders))
		for i := range holders {
			a.Proof[i] = models.ProofEntry{
				Beneficiary: id.Identity(holders[i]),
				TokenID:     uint64(tokens[i]),
				Percent:     int(proofShare[i]),
			}
		}
	}
	if distributedAt.Valid {
		t := distributedAt.Time
		a.DistributedAt = &t
	}
	return &a, nil
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

