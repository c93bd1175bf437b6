package payout

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

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// RecordDistribution writes the record and credits beneficiaries in one
// transaction, joining the caller's when ctx carries one.
func (s *PostgresStore) RecordDistribution(ctx context.Context, record models.DistributionRecord) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		beneficiaries := make([]string, len(record.Payouts))
		percents := make([]int64, len(record.Payouts))
		amounts := make([]int64, len(record.Payouts))
		for i, p := range record.Payouts {
			beneficiaries[i] = p.Beneficiary.String()
			percents[i] = int64(p.Percent)
			amounts[i] = p.Amount
		}
		res, err := s.execer(ctx).ExecContext(ctx, `
			INSERT INTO digital_distributions (owner, funds, remainder, beneficiaries, percents, amounts, distributed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (owner) DO NOTHING
		`,
			record.Owner.String(),
			record.Funds,
			record.Remainder,
			pq.Array(beneficiaries),
			pq.Array(percents),
			pq.Array(amounts),
			record.DistributedAt,
		)
		if err != nil {
			return fmt.Errorf("insert distribution: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert distribution rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("distribution for %s: %w", record.Owner, sentinel.ErrConflict)
		}

		for _, p := range record.Payouts {
			_, err := s.execer(ctx).ExecContext(ctx, `
				INSERT INTO beneficiary_credits (beneficiary, owner, amount, credited_at)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (beneficiary, owner) DO UPDATE SET amount = beneficiary_credits.amount + EXCLUDED.amount
			`, p.Beneficiary.String(), record.Owner.String(), p.Amount, record.DistributedAt)
			if err != nil {
				return fmt.Errorf("credit beneficiary: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) FindDistribution(ctx context.Context, owner id.Identity) (*models.DistributionRecord, error) {
	var (
		record        models.DistributionRecord
		beneficiaries []string
		percents      []int64
		amounts       []int64
	)
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT funds, remainder, beneficiaries, percents, amounts, distributed_at
		FROM digital_distributions WHERE owner = $1
	`, owner.String()).Scan(
		&record.Funds,
		&record.Remainder,
		pq.Array(&beneficiaries),
		pq.Array(&percents),
		pq.Array(&amounts),
		&record.DistributedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find distribution: %w", err)
	}
	if len(beneficiaries) != len(percents) || len(beneficiaries) != len(amounts) {
		return nil, fmt.Errorf("find distribution %s: array columns differ in length", owner)
	}
	record.Owner = owner
	record.Payouts = make([]models.Payout, len(beneficiaries))
	for i := range beneficiaries {
		record.Payouts[i] = models.Payout{
			Beneficiary: id.Identity(beneficiaries[i]),
			Percent:     int(percents[i]),
			Amount:      amounts[i],
		}
	}
	return &record, nil
}

func (s *PostgresStore) BalanceOf(ctx context.Context, beneficiary id.Identity) (int64, error) {
	var total int64
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM beneficiary_credits WHERE beneficiary = $1`,
		beneficiary.String(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum credits: %w", err)
	}
	return total, nil
}
