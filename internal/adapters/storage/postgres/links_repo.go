package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/domain/links"
	"pedigree-registry/internal/platform/apperr"
)

type LinksRepo struct {
	db *sql.DB
}

func NewLinksRepo(db *sql.DB) *LinksRepo {
	return &LinksRepo{db: db}
}

const requestColumns = `
	id, requesting_tenant_id, source_animal_id, relationship_type,
	target_animal_id, target_tenant_id, method,
	status, message, response_message, denial_reason,
	created_at, responded_at, expires_at, link_id`

const linkColumns = `
	id, source_animal_id, source_tenant_id,
	target_animal_id, target_tenant_id,
	parent_type, method, status, request_id,
	created_at, revoked_at, revoked_reason, revoked_by_tenant_id`

// execer cubre *sql.DB y *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *LinksRepo) CreateRequest(ctx context.Context, req links.LinkRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO link_requests (`+requestColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		req.ID,
		req.RequestingTenantID,
		req.SourceAnimalID,
		string(req.RelationshipType),
		req.TargetAnimalID,
		req.TargetTenantID,
		string(req.Method),
		string(req.Status),
		req.Message,
		req.ResponseMessage,
		req.DenialReason,
		req.CreatedAt,
		toNullTime(req.RespondedAt),
		req.ExpiresAt,
		req.LinkID,
	)
	return mapError(err, "link request")
}

func (r *LinksRepo) GetRequest(ctx context.Context, id string) (links.LinkRequest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM link_requests WHERE id = $1`, strings.TrimSpace(id))
	req, err := scanRequest(row)
	if err != nil {
		return links.LinkRequest{}, mapError(err, "link request")
	}
	return req, nil
}

func (r *LinksRepo) FindPendingRequest(ctx context.Context, sourceAnimalID string, pt animals.ParentType, targetAnimalID string) (links.LinkRequest, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM link_requests
		WHERE source_animal_id = $1
		  AND relationship_type = $2
		  AND target_animal_id = $3
		  AND status = 'PENDING'
		ORDER BY created_at DESC
		LIMIT 1
	`, sourceAnimalID, string(pt), targetAnimalID)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return links.LinkRequest{}, false, nil
	}
	if err != nil {
		return links.LinkRequest{}, false, mapError(err, "link request")
	}
	return req, true, nil
}

func (r *LinksRepo) ListRequestsByTenant(ctx context.Context, tenantID string, dir links.Direction) ([]links.LinkRequest, error) {
	column := "target_tenant_id"
	if dir == links.DirectionOutgoing {
		column = "requesting_tenant_id"
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM link_requests
		WHERE `+column+` = $1
		ORDER BY created_at DESC, id ASC
	`, tenantID)
	if err != nil {
		return nil, mapError(err, "link requests")
	}
	defer rows.Close()

	out := make([]links.LinkRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, mapError(err, "link requests")
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *LinksRepo) ResolveRequest(ctx context.Context, req links.LinkRequest) error {
	return resolveRequest(ctx, r.db, req)
}

// resolveRequest sólo escribe si la request sigue PENDING.
func resolveRequest(ctx context.Context, db execer, req links.LinkRequest) error {
	res, err := db.ExecContext(ctx, `
		UPDATE link_requests
		SET
			target_animal_id = $2,
			status = $3,
			response_message = $4,
			denial_reason = $5,
			responded_at = $6,
			link_id = $7
		WHERE id = $1 AND status = 'PENDING'
	`,
		req.ID,
		req.TargetAnimalID,
		string(req.Status),
		req.ResponseMessage,
		req.DenialReason,
		toNullTime(req.RespondedAt),
		req.LinkID,
	)
	if err != nil {
		return mapError(err, "link request")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.Conflict("link request %s is no longer pending", req.ID)
	}
	return nil
}

func (r *LinksRepo) DeleteRequest(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM link_requests WHERE id = $1 AND status = 'PENDING'`, id)
	if err != nil {
		return mapError(err, "link request")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.Conflict("link request %s is no longer pending", id)
	}
	return nil
}

func (r *LinksRepo) ExpirePending(ctx context.Context, now time.Time) ([]links.LinkRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		UPDATE link_requests
		SET status = 'EXPIRED', responded_at = $1
		WHERE status = 'PENDING' AND expires_at <= $1
		RETURNING `+requestColumns,
		now,
	)
	if err != nil {
		return nil, mapError(err, "link requests")
	}
	defer rows.Close()

	out := make([]links.LinkRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, mapError(err, "link requests")
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// Approve corre en una transacción: bloquea la request y la fila del hijo, la
// pasa a APPROVED e inserta el link. El índice único parcial sobre links ACTIVE garantiza la
// exclusividad aunque dos approvals de requests distintas compitan.
func (r *LinksRepo) Approve(ctx context.Context, req links.LinkRequest, l links.CrossTenantLink) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err, "link request")
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	if err := tx.QueryRowContext(ctx, `SELECT status FROM link_requests WHERE id = $1 FOR UPDATE`, req.ID).Scan(&status); err != nil {
		return mapError(err, "link request")
	}
	if links.RequestStatus(status) != links.RequestPending {
		return apperr.Conflict("link request %s is already %s", req.ID, strings.ToLower(status))
	}

	// La fila del hijo queda bloqueada: SetParents espera y luego ve el link ACTIVE.
	var local sql.NullString
	if err := tx.QueryRowContext(ctx, `SELECT `+slotColumn(l.ParentType)+` FROM animals WHERE id = $1 FOR UPDATE`, l.SourceAnimalID).Scan(&local); err != nil {
		return mapError(err, "animal")
	}
	if local.Valid {
		return apperr.Conflict("child already has a local %s", strings.ToLower(string(l.ParentType)))
	}

	if err := resolveRequest(ctx, tx, req); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cross_tenant_links (`+linkColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		l.ID,
		l.SourceAnimalID,
		l.SourceTenantID,
		l.TargetAnimalID,
		l.TargetTenantID,
		string(l.ParentType),
		string(l.Method),
		string(l.Status),
		l.RequestID,
		l.CreatedAt,
		toNullTime(l.RevokedAt),
		l.RevokedReason,
		l.RevokedByTenantID,
	)
	if err != nil {
		err = mapError(err, "active link")
		if errors.Is(err, apperr.ErrConflict) {
			return apperr.Conflict("animal already has an active %s link", strings.ToLower(string(l.ParentType)))
		}
		return err
	}

	return mapError(tx.Commit(), "link request")
}

func (r *LinksRepo) GetLink(ctx context.Context, id string) (links.CrossTenantLink, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+linkColumns+` FROM cross_tenant_links WHERE id = $1`, strings.TrimSpace(id))
	l, err := scanLink(row)
	if err != nil {
		return links.CrossTenantLink{}, mapError(err, "link")
	}
	return l, nil
}

func (r *LinksRepo) GetActiveLink(ctx context.Context, sourceAnimalID string, pt animals.ParentType) (links.CrossTenantLink, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+linkColumns+`
		FROM cross_tenant_links
		WHERE source_animal_id = $1 AND parent_type = $2 AND status = 'ACTIVE'
	`, sourceAnimalID, string(pt))
	l, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return links.CrossTenantLink{}, false, nil
	}
	if err != nil {
		return links.CrossTenantLink{}, false, mapError(err, "link")
	}
	return l, true, nil
}

func (r *LinksRepo) ListLinksByAnimal(ctx context.Context, animalID string) ([]links.CrossTenantLink, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+linkColumns+`
		FROM cross_tenant_links
		WHERE source_animal_id = $1 OR target_animal_id = $1
		ORDER BY created_at DESC
	`, animalID)
	if err != nil {
		return nil, mapError(err, "links")
	}
	defer rows.Close()

	out := make([]links.CrossTenantLink, 0)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, mapError(err, "links")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LinksRepo) RevokeLink(ctx context.Context, id string, at time.Time, reason, byTenantID string) (links.CrossTenantLink, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE cross_tenant_links
		SET status = 'REVOKED', revoked_at = $2, revoked_reason = $3, revoked_by_tenant_id = $4
		WHERE id = $1 AND status = 'ACTIVE'
		RETURNING `+linkColumns,
		id, at, reason, byTenantID,
	)
	l, err := scanLink(row)
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return links.CrossTenantLink{}, mapError(err, "link")
	}
	// Sin filas: o no existe o ya estaba revocado.
	if _, err := r.GetLink(ctx, id); err != nil {
		return links.CrossTenantLink{}, err
	}
	return links.CrossTenantLink{}, apperr.Conflict("already revoked")
}

func scanRequest(s rowScanner) (links.LinkRequest, error) {
	var (
		req         links.LinkRequest
		rel         string
		method      string
		status      string
		respondedAt sql.NullTime
	)
	if err := s.Scan(
		&req.ID,
		&req.RequestingTenantID,
		&req.SourceAnimalID,
		&rel,
		&req.TargetAnimalID,
		&req.TargetTenantID,
		&method,
		&status,
		&req.Message,
		&req.ResponseMessage,
		&req.DenialReason,
		&req.CreatedAt,
		&respondedAt,
		&req.ExpiresAt,
		&req.LinkID,
	); err != nil {
		return links.LinkRequest{}, err
	}
	req.RelationshipType = animals.ParentType(rel)
	req.Method = links.LinkMethod(method)
	req.Status = links.RequestStatus(status)
	req.RespondedAt = fromNullTime(respondedAt)
	return req, nil
}

func scanLink(s rowScanner) (links.CrossTenantLink, error) {
	var (
		l         links.CrossTenantLink
		pt        string
		method    string
		status    string
		revokedAt sql.NullTime
	)
	if err := s.Scan(
		&l.ID,
		&l.SourceAnimalID,
		&l.SourceTenantID,
		&l.TargetAnimalID,
		&l.TargetTenantID,
		&pt,
		&method,
		&status,
		&l.RequestID,
		&l.CreatedAt,
		&revokedAt,
		&l.RevokedReason,
		&l.RevokedByTenantID,
	); err != nil {
		return links.CrossTenantLink{}, err
	}
	l.ParentType = animals.ParentType(pt)
	l.Method = links.LinkMethod(method)
	l.Status = links.LinkStatus(status)
	l.RevokedAt = fromNullTime(revokedAt)
	return l, nil
}

func slotColumn(pt animals.ParentType) string {
	if pt == animals.ParentDam {
		return "dam_id"
	}
	return "sire_id"
}
