package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pedigree-registry/internal/domain/privacy"
)

type PrivacyRepo struct {
	db *sql.DB
}

func NewPrivacyRepo(db *sql.DB) *PrivacyRepo {
	return &PrivacyRepo{db: db}
}

func (r *PrivacyRepo) Get(ctx context.Context, animalID string) (privacy.Settings, error) {
	animalID = strings.TrimSpace(animalID)

	row := r.db.QueryRowContext(ctx, `
		SELECT
			animal_id, allow_cross_tenant_matching,
			show_name, show_photo, show_full_birth_date, show_full_registry_number,
			show_breeder, show_titles, show_title_details,
			show_competitions, show_competition_details,
			share_health, share_genetics, share_documents, share_media,
			show_breeding_history, allow_direct_contact, allow_info_requests,
			updated_at
		FROM privacy_settings
		WHERE animal_id = $1
	`, animalID)

	var s privacy.Settings
	if err := row.Scan(
		&s.AnimalID,
		&s.AllowCrossTenantMatching,
		&s.ShowName,
		&s.ShowPhoto,
		&s.ShowFullBirthDate,
		&s.ShowFullRegistryNumber,
		&s.ShowBreeder,
		&s.ShowTitles,
		&s.ShowTitleDetails,
		&s.ShowCompetitions,
		&s.ShowCompetitionDetails,
		&s.ShareHealth,
		&s.ShareGenetics,
		&s.ShareDocuments,
		&s.ShareMedia,
		&s.ShowBreedingHistory,
		&s.AllowDirectContact,
		&s.AllowInfoRequests,
		&s.UpdatedAt,
	); err != nil {
		return privacy.Settings{}, mapError(err, "privacy settings")
	}
	return s, nil
}

func (r *PrivacyRepo) Upsert(ctx context.Context, s privacy.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO privacy_settings (
			animal_id, allow_cross_tenant_matching,
			show_name, show_photo, show_full_birth_date, show_full_registry_number,
			show_breeder, show_titles, show_title_details,
			show_competitions, show_competition_details,
			share_health, share_genetics, share_documents, share_media,
			show_breeding_history, allow_direct_contact, allow_info_requests,
			updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (animal_id) DO UPDATE SET
			allow_cross_tenant_matching = EXCLUDED.allow_cross_tenant_matching,
			show_name = EXCLUDED.show_name,
			show_photo = EXCLUDED.show_photo,
			show_full_birth_date = EXCLUDED.show_full_birth_date,
			show_full_registry_number = EXCLUDED.show_full_registry_number,
			show_breeder = EXCLUDED.show_breeder,
			show_titles = EXCLUDED.show_titles,
			show_title_details = EXCLUDED.show_title_details,
			show_competitions = EXCLUDED.show_competitions,
			show_competition_details = EXCLUDED.show_competition_details,
			share_health = EXCLUDED.share_health,
			share_genetics = EXCLUDED.share_genetics,
			share_documents = EXCLUDED.share_documents,
			share_media = EXCLUDED.share_media,
			show_breeding_history = EXCLUDED.show_breeding_history,
			allow_direct_contact = EXCLUDED.allow_direct_contact,
			allow_info_requests = EXCLUDED.allow_info_requests,
			updated_at = EXCLUDED.updated_at
	`,
		s.AnimalID,
		s.AllowCrossTenantMatching,
		s.ShowName,
		s.ShowPhoto,
		s.ShowFullBirthDate,
		s.ShowFullRegistryNumber,
		s.ShowBreeder,
		s.ShowTitles,
		s.ShowTitleDetails,
		s.ShowCompetitions,
		s.ShowCompetitionDetails,
		s.ShareHealth,
		s.ShareGenetics,
		s.ShareDocuments,
		s.ShareMedia,
		s.ShowBreedingHistory,
		s.AllowDirectContact,
		s.AllowInfoRequests,
		s.UpdatedAt,
	)
	return mapError(err, "privacy settings")
}
