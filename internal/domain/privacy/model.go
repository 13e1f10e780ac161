package privacy

import "time"

// Settings son los toggles que el dueño de un animal fija frente a otros tenants.
// AllowCrossTenantMatching es el switch maestro: en false el animal es invisible
// para búsquedas y aparece como stub en pedigrís ajenos.
type Settings struct {
	AnimalID string

	AllowCrossTenantMatching bool

	ShowName               bool
	ShowPhoto              bool
	ShowFullBirthDate      bool // false => sólo año
	ShowFullRegistryNumber bool // false => últimos 4
	ShowBreeder            bool
	ShowTitles             bool
	ShowTitleDetails       bool
	ShowCompetitions       bool
	ShowCompetitionDetails bool

	ShareHealth         bool
	ShareGenetics       bool
	ShareDocuments      bool
	ShareMedia          bool
	ShowBreedingHistory bool
	AllowDirectContact  bool
	AllowInfoRequests   bool

	UpdatedAt time.Time
}

// Defaults aplica cuando el dueño nunca configuró nada.
func Defaults(animalID string) Settings {
	return Settings{
		AnimalID:    animalID,
		ShowName:    true,
		ShowPhoto:   true,
		ShowBreeder: true,
		ShowTitles:  true,
	}
}

// Patch: punteros para PATCH real, nil = no tocar.
type Patch struct {
	AllowCrossTenantMatching *bool `json:"allow_cross_tenant_matching"`

	ShowName               *bool `json:"show_name"`
	ShowPhoto              *bool `json:"show_photo"`
	ShowFullBirthDate      *bool `json:"show_full_birth_date"`
	ShowFullRegistryNumber *bool `json:"show_full_registry_number"`
	ShowBreeder            *bool `json:"show_breeder"`
	ShowTitles             *bool `json:"show_titles"`
	ShowTitleDetails       *bool `json:"show_title_details"`
	ShowCompetitions       *bool `json:"show_competitions"`
	ShowCompetitionDetails *bool `json:"show_competition_details"`

	ShareHealth         *bool `json:"share_health"`
	ShareGenetics       *bool `json:"share_genetics"`
	ShareDocuments      *bool `json:"share_documents"`
	ShareMedia          *bool `json:"share_media"`
	ShowBreedingHistory *bool `json:"show_breeding_history"`
	AllowDirectContact  *bool `json:"allow_direct_contact"`
	AllowInfoRequests   *bool `json:"allow_info_requests"`
}

func (p Patch) Empty() bool {
	return p == Patch{}
}

func (p Patch) Apply(s Settings) Settings {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.AllowCrossTenantMatching, p.AllowCrossTenantMatching)
	set(&s.ShowName, p.ShowName)
	set(&s.ShowPhoto, p.ShowPhoto)
	set(&s.ShowFullBirthDate, p.ShowFullBirthDate)
	set(&s.ShowFullRegistryNumber, p.ShowFullRegistryNumber)
	set(&s.ShowBreeder, p.ShowBreeder)
	set(&s.ShowTitles, p.ShowTitles)
	set(&s.ShowTitleDetails, p.ShowTitleDetails)
	set(&s.ShowCompetitions, p.ShowCompetitions)
	set(&s.ShowCompetitionDetails, p.ShowCompetitionDetails)
	set(&s.ShareHealth, p.ShareHealth)
	set(&s.ShareGenetics, p.ShareGenetics)
	set(&s.ShareDocuments, p.ShareDocuments)
	set(&s.ShareMedia, p.ShareMedia)
	set(&s.ShowBreedingHistory, p.ShowBreedingHistory)
	set(&s.AllowDirectContact, p.AllowDirectContact)
	set(&s.AllowInfoRequests, p.AllowInfoRequests)
	return s
}
