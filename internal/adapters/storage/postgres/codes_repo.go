package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pedigree-registry/internal/domain/matching"
	"pedigree-registry/internal/platform/apperr"
)

type CodesRepo struct {
	db *sql.DB
}

func NewCodesRepo(db *sql.DB) *CodesRepo {
	return &CodesRepo{db: db}
}

const codeColumns = `
	id, animal_id, tenant_id,
	code_hash, code_prefix,
	created_at, expires_at,
	consumed_at, consumed_by_tenant_id`

func (r *CodesRepo) Create(ctx context.Context, c matching.ExchangeCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exchange_codes (`+codeColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		c.ID,
		c.AnimalID,
		c.TenantID,
		c.CodeHash,
		c.CodePrefix,
		c.CreatedAt,
		c.ExpiresAt,
		toNullTime(c.ConsumedAt),
		c.ConsumedByTenantID,
	)
	return mapError(err, "exchange code")
}

func (r *CodesRepo) GetByHash(ctx context.Context, hash string) (matching.ExchangeCode, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+codeColumns+` FROM exchange_codes WHERE code_hash = $1`, hash)
	c, err := scanCode(row)
	if err != nil {
		return matching.ExchangeCode{}, mapError(err, "exchange code")
	}
	return c, nil
}

// Consume es un UPDATE condicional: si no afecta filas el código ya se usó,
// venció o no existe.
func (r *CodesRepo) Consume(ctx context.Context, id, consumerTenantID string, at time.Time) (matching.ExchangeCode, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE exchange_codes
		SET consumed_at = $2, consumed_by_tenant_id = $3
		WHERE id = $1
		  AND consumed_at IS NULL
		  AND expires_at > $2
		RETURNING `+codeColumns,
		id, at, consumerTenantID,
	)
	c, err := scanCode(row)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return matching.ExchangeCode{}, mapError(err, "exchange code")
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM exchange_codes WHERE id = $1)`, id).Scan(&exists); err != nil {
		return matching.ExchangeCode{}, mapError(err, "exchange code")
	}
	if !exists {
		return matching.ExchangeCode{}, apperr.NotFound("exchange code not found")
	}
	return matching.ExchangeCode{}, apperr.Expired("exchange code no longer valid")
}

func (r *CodesRepo) ListByAnimal(ctx context.Context, animalID string) ([]matching.ExchangeCode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+codeColumns+`
		FROM exchange_codes
		WHERE animal_id = $1
		ORDER BY created_at DESC
	`, animalID)
	if err != nil {
		return nil, mapError(err, "exchange codes")
	}
	defer rows.Close()

	out := make([]matching.ExchangeCode, 0)
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, mapError(err, "exchange codes")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCode(s rowScanner) (matching.ExchangeCode, error) {
	var (
		c          matching.ExchangeCode
		consumedAt sql.NullTime
	)
	if err := s.Scan(
		&c.ID,
		&c.AnimalID,
		&c.TenantID,
		&c.CodeHash,
		&c.CodePrefix,
		&c.CreatedAt,
		&c.ExpiresAt,
		&consumedAt,
		&c.ConsumedByTenantID,
	); err != nil {
		return matching.ExchangeCode{}, err
	}
	c.ConsumedAt = fromNullTime(consumedAt)
	return c, nil
}
