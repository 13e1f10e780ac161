package privacy

import (
	"strings"
	"time"

	"pedigree-registry/internal/domain/animals"
)

// View es lo que un tenant puede ver de un animal ajeno. Se arma en el borde de
// serialización; el registro original nunca se toca.
type View struct {
	AnimalID string
	GAID     string
	TenantID string

	// Blocked: el dueño deshabilitó el matching. Sólo se conserva el sexo.
	Blocked bool

	Sex     animals.Sex
	Species string
	Breed   string

	Name      string
	PhotoURL  string
	BirthDate *time.Time
	BirthYear int

	RegistryID     string
	RegistryNumber string
	BreederName    string

	Titles       []animals.Title
	Competitions []animals.Competition

	HealthSummary   string
	GeneticsSummary string

	Permissions Permissions
}

type Permissions struct {
	Documents       bool `json:"documents"`
	Media           bool `json:"media"`
	BreedingHistory bool `json:"breeding_history"`
	DirectContact   bool `json:"direct_contact"`
	InfoRequests    bool `json:"info_requests"`
}

// Redact aplica settings para viewerTenantID. El dueño ve todo.
func Redact(a animals.Animal, s Settings, viewerTenantID string) View {
	if a.TenantID == viewerTenantID {
		return fullView(a)
	}
	if !s.AllowCrossTenantMatching {
		return View{Blocked: true, Sex: a.Sex}
	}

	v := View{
		AnimalID:   a.ID,
		GAID:       a.GAID,
		TenantID:   a.TenantID,
		Sex:        a.Sex,
		Species:    a.Species,
		Breed:      a.Breed,
		RegistryID: a.RegistryID,
		Permissions: Permissions{
			Documents:       s.ShareDocuments,
			Media:           s.ShareMedia,
			BreedingHistory: s.ShowBreedingHistory,
			DirectContact:   s.AllowDirectContact,
			InfoRequests:    s.AllowInfoRequests,
		},
	}

	if s.ShowName {
		v.Name = a.Name
	}
	if s.ShowPhoto {
		v.PhotoURL = a.PhotoURL
	}
	if a.BirthDate != nil {
		v.BirthYear = a.BirthDate.Year()
		if s.ShowFullBirthDate {
			bd := *a.BirthDate
			v.BirthDate = &bd
		}
	}
	if s.ShowFullRegistryNumber {
		v.RegistryNumber = a.RegistryNumber
	} else {
		v.RegistryNumber = lastFour(a.RegistryNumber)
	}
	if s.ShowBreeder {
		v.BreederName = a.BreederName
	}
	if s.ShowTitles {
		v.Titles = make([]animals.Title, 0, len(a.Titles))
		for _, t := range a.Titles {
			if !s.ShowTitleDetails {
				t.Detail = ""
			}
			v.Titles = append(v.Titles, t)
		}
	}
	if s.ShowCompetitions {
		v.Competitions = make([]animals.Competition, 0, len(a.Competitions))
		for _, c := range a.Competitions {
			if !s.ShowCompetitionDetails {
				c.Detail = ""
			}
			v.Competitions = append(v.Competitions, c)
		}
	}
	if s.ShareHealth {
		v.HealthSummary = a.HealthSummary
	}
	if s.ShareGenetics {
		v.GeneticsSummary = a.GeneticsSummary
	}
	return v
}

func fullView(a animals.Animal) View {
	v := View{
		AnimalID:        a.ID,
		GAID:            a.GAID,
		TenantID:        a.TenantID,
		Sex:             a.Sex,
		Species:         a.Species,
		Breed:           a.Breed,
		Name:            a.Name,
		PhotoURL:        a.PhotoURL,
		RegistryID:      a.RegistryID,
		RegistryNumber:  a.RegistryNumber,
		BreederName:     a.BreederName,
		Titles:          append([]animals.Title(nil), a.Titles...),
		Competitions:    append([]animals.Competition(nil), a.Competitions...),
		HealthSummary:   a.HealthSummary,
		GeneticsSummary: a.GeneticsSummary,
		Permissions: Permissions{
			Documents:       true,
			Media:           true,
			BreedingHistory: true,
			DirectContact:   true,
			InfoRequests:    true,
		},
	}
	if a.BirthDate != nil {
		bd := *a.BirthDate
		v.BirthDate = &bd
		v.BirthYear = bd.Year()
	}
	return v
}

func lastFour(n string) string {
	n = strings.TrimSpace(n)
	if n == "" {
		return ""
	}
	r := []rune(n)
	if len(r) <= 4 {
		return string(r)
	}
	return "****" + string(r[len(r)-4:])
}
