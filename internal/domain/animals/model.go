package animals

import (
	"strings"
	"time"
)

// Sex del animal. Sólo dos valores: el pedigrí necesita saber qué slot puede ocupar.
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

func ParseSex(s string) (Sex, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MALE", "M":
		return SexMale, true
	case "FEMALE", "F":
		return SexFemale, true
	default:
		return "", false
	}
}

// ParentType identifica el slot de una arista de parentesco.
type ParentType string

const (
	ParentSire ParentType = "SIRE"
	ParentDam  ParentType = "DAM"
)

func ParseParentType(s string) (ParentType, bool) {
	switch ParentType(strings.ToUpper(strings.TrimSpace(s))) {
	case ParentSire:
		return ParentSire, true
	case ParentDam:
		return ParentDam, true
	default:
		return "", false
	}
}

// RequiredSex: un SIRE debe ser macho y una DAM hembra.
func (p ParentType) RequiredSex() Sex {
	if p == ParentSire {
		return SexMale
	}
	return SexFemale
}

type Title struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
}

type Competition struct {
	Event     string `json:"event"`
	Placement string `json:"placement"`
	Detail    string `json:"detail,omitempty"`
}

// Animal es el registro que posee un tenant. SireID/DamID son aristas locales
// (mismo tenant); las aristas externas viven en links.CrossTenantLink.
type Animal struct {
	ID       string
	TenantID string
	GAID     string

	Name    string
	Species string
	Breed   string
	Sex     Sex

	BirthDate *time.Time
	PhotoURL  string

	RegistryID     string // organismo emisor, ej. "AKC"
	RegistryNumber string // normalizado
	BreederName    string

	Titles       []Title
	Competitions []Competition

	HealthSummary   string
	GeneticsSummary string

	SireID *string
	DamID  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocalParent devuelve la arista local del slot, si existe.
func (a Animal) LocalParent(pt ParentType) (string, bool) {
	var p *string
	if pt == ParentSire {
		p = a.SireID
	} else {
		p = a.DamID
	}
	if p == nil || strings.TrimSpace(*p) == "" {
		return "", false
	}
	return *p, true
}

// Filter para listados; campos vacíos no filtran.
type Filter struct {
	TenantIDs []string
	Sex       Sex
	Species   string
	Limit     int
}

// NormalizeRegistryNumber deja el número comparable: mayúsculas, sin espacios, guiones ni puntos.
func NormalizeRegistryNumber(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		switch r {
		case ' ', '-', '.', '/', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func NormalizeRegistryID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
