package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/platform/apperr"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, tenant_id, gaid,
	name, species, breed, sex,
	birth_date, photo_url,
	registry_id, registry_number, breeder_name,
	titles, competitions,
	health_summary, genetics_summary,
	sire_id, dam_id,
	created_at, updated_at`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	titles, competitions, err := marshalRecords(a)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`,
		a.ID,
		a.TenantID,
		a.GAID,
		a.Name,
		a.Species,
		a.Breed,
		string(a.Sex),
		toNullTime(a.BirthDate),
		a.PhotoURL,
		a.RegistryID,
		a.RegistryNumber,
		a.BreederName,
		titles,
		competitions,
		a.HealthSummary,
		a.GeneticsSummary,
		toNullString(a.SireID),
		toNullString(a.DamID),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return mapError(err, "animal")
}

// Update no toca gaid ni tenant_id. Bloquea la fila y rechaza un padre local
// si el slot ya tiene un link cross-tenant ACTIVE.
func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	titles, competitions, err := marshalRecords(a)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err, "animal")
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM animals WHERE id = $1 FOR UPDATE`, a.ID).Scan(&one); err != nil {
		return mapError(err, "animal")
	}
	for _, pt := range []animals.ParentType{animals.ParentSire, animals.ParentDam} {
		if _, ok := a.LocalParent(pt); !ok {
			continue
		}
		var linked bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM cross_tenant_links
				WHERE source_animal_id = $1 AND parent_type = $2 AND status = 'ACTIVE'
			)`, a.ID, string(pt)).Scan(&linked)
		if err != nil {
			return mapError(err, "animal")
		}
		if linked {
			return apperr.Conflict("animal already has an active cross-tenant %s; revoke it first", strings.ToLower(string(pt)))
		}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			species = $3,
			breed = $4,
			sex = $5,
			birth_date = $6,
			photo_url = $7,
			registry_id = $8,
			registry_number = $9,
			breeder_name = $10,
			titles = $11,
			competitions = $12,
			health_summary = $13,
			genetics_summary = $14,
			sire_id = $15,
			dam_id = $16,
			updated_at = $17
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Breed,
		string(a.Sex),
		toNullTime(a.BirthDate),
		a.PhotoURL,
		a.RegistryID,
		a.RegistryNumber,
		a.BreederName,
		titles,
		competitions,
		a.HealthSummary,
		a.GeneticsSummary,
		toNullString(a.SireID),
		toNullString(a.DamID),
		a.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "animal")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return mapError(sql.ErrNoRows, "animal")
	}
	return mapError(tx.Commit(), "animal")
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)
	a, err := scanAnimal(row)
	if err != nil {
		return animals.Animal{}, mapError(err, "animal")
	}
	return a, nil
}

func (r *AnimalsRepo) GetByGAID(ctx context.Context, gaid string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE gaid = $1`, gaid)
	a, err := scanAnimal(row)
	if err != nil {
		return animals.Animal{}, mapError(err, "gaid")
	}
	return a, nil
}

func (r *AnimalsRepo) FindByRegistry(ctx context.Context, registryID, number string) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE registry_id = $1 AND registry_number = $2
		ORDER BY created_at ASC
	`, registryID, number)
	if err != nil {
		return nil, mapError(err, "animals")
	}
	return collectAnimals(rows)
}

func (r *AnimalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	var (
		where []string
		args  []any
	)
	if len(f.TenantIDs) > 0 {
		args = append(args, f.TenantIDs)
		where = append(where, fmt.Sprintf("tenant_id = ANY($%d)", len(args)))
	}
	if f.Sex != "" {
		args = append(args, string(f.Sex))
		where = append(where, fmt.Sprintf("sex = $%d", len(args)))
	}
	if f.Species != "" {
		args = append(args, f.Species)
		where = append(where, fmt.Sprintf("lower(species) = lower($%d)", len(args)))
	}

	q := `SELECT ` + animalColumns + ` FROM animals`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at ASC, id ASC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapError(err, "animals")
	}
	return collectAnimals(rows)
}

func collectAnimals(rows *sql.Rows) ([]animals.Animal, error) {
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, mapError(err, "animals")
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAnimal(s rowScanner) (animals.Animal, error) {
	var (
		a            animals.Animal
		sex          string
		bd           sql.NullTime
		titles       []byte
		competitions []byte
		sire, dam    sql.NullString
	)
	if err := s.Scan(
		&a.ID,
		&a.TenantID,
		&a.GAID,
		&a.Name,
		&a.Species,
		&a.Breed,
		&sex,
		&bd,
		&a.PhotoURL,
		&a.RegistryID,
		&a.RegistryNumber,
		&a.BreederName,
		&titles,
		&competitions,
		&a.HealthSummary,
		&a.GeneticsSummary,
		&sire,
		&dam,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Sex = animals.Sex(sex)
	// birth_date es DATE: pgx lo mapea a time.Time medianoche UTC
	a.BirthDate = fromNullTime(bd)
	a.SireID = fromNullString(sire)
	a.DamID = fromNullString(dam)
	if len(titles) > 0 {
		if err := json.Unmarshal(titles, &a.Titles); err != nil {
			return animals.Animal{}, fmt.Errorf("decode titles: %w", err)
		}
	}
	if len(competitions) > 0 {
		if err := json.Unmarshal(competitions, &a.Competitions); err != nil {
			return animals.Animal{}, fmt.Errorf("decode competitions: %w", err)
		}
	}
	return a, nil
}

func marshalRecords(a animals.Animal) (string, string, error) {
	t := a.Titles
	if t == nil {
		t = []animals.Title{}
	}
	c := a.Competitions
	if c == nil {
		c = []animals.Competition{}
	}
	tb, err := json.Marshal(t)
	if err != nil {
		return "", "", err
	}
	cb, err := json.Marshal(c)
	if err != nil {
		return "", "", err
	}
	return string(tb), string(cb), nil
}
