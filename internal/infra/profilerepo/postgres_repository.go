package profilerepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evanlin/lifeboard/internal/domain/profile"
)

// PostgresRepository persists the single body profile row in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Load fetches the profile row if one exists.
func (r *PostgresRepository) Load(ctx context.Context) (profile.Record, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT weight_kg, height_cm, vd_l_per_kg, half_life_hours,
		       caffeine_sensitivity, bioavailability,
		       body_fat_percentage, muscle_percentage, updated_at
		FROM body_profile
		WHERE id = 1
	`)
	if err != nil {
		return profile.Record{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return profile.Record{}, false, rows.Err()
	}
	record, err := scanRecord(rows)
	if err != nil {
		return profile.Record{}, false, err
	}
	return record, true, rows.Err()
}

// Save upserts the profile row.
func (r *PostgresRepository) Save(ctx context.Context, record profile.Record) (profile.Record, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO body_profile (
			id, weight_kg, height_cm, vd_l_per_kg, half_life_hours,
			caffeine_sensitivity, bioavailability,
			body_fat_percentage, muscle_percentage, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			weight_kg = EXCLUDED.weight_kg,
			height_cm = EXCLUDED.height_cm,
			vd_l_per_kg = EXCLUDED.vd_l_per_kg,
			half_life_hours = EXCLUDED.half_life_hours,
			caffeine_sensitivity = EXCLUDED.caffeine_sensitivity,
			bioavailability = EXCLUDED.bioavailability,
			body_fat_percentage = EXCLUDED.body_fat_percentage,
			muscle_percentage = EXCLUDED.muscle_percentage,
			updated_at = EXCLUDED.updated_at
		RETURNING weight_kg, height_cm, vd_l_per_kg, half_life_hours,
		          caffeine_sensitivity, bioavailability,
		          body_fat_percentage, muscle_percentage, updated_at
	`, record.WeightKG, record.HeightCM, record.VdLPerKG, record.HalfLifeHours,
		record.CaffeineSensitivity, record.Bioavailability,
		record.BodyFatPercentage, record.MusclePercentage, record.UpdatedAt)
	return scanRecord(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (profile.Record, error) {
	var (
		record  profile.Record
		updated time.Time
	)
	if err := row.Scan(
		&record.WeightKG, &record.HeightCM, &record.VdLPerKG, &record.HalfLifeHours,
		&record.CaffeineSensitivity, &record.Bioavailability,
		&record.BodyFatPercentage, &record.MusclePercentage, &updated,
	); err != nil {
		return profile.Record{}, err
	}
	record.UpdatedAt = updated.UTC()
	return record, nil
}

var _ profile.Repository = (*PostgresRepository)(nil)
