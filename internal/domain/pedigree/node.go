package pedigree

import (
	"time"

	"pedigree-registry/internal/domain/animals"
)

// EdgeKind indica cómo se llegó a un nodo desde su hijo.
type EdgeKind string

const (
	EdgeRoot        EdgeKind = "root"
	EdgeLocal       EdgeKind = "local"
	EdgeCrossTenant EdgeKind = "cross_tenant"
)

// StubReason explica por qué un nodo quedó sin datos.
type StubReason string

const (
	StubNotFound       StubReason = "not_found"
	StubPrivacyBlocked StubReason = "privacy_blocked"
	StubUnavailable    StubReason = "unavailable"
	StubCycle          StubReason = "cycle"
)

// Node es un animal dentro del árbol resuelto. Los nodos stub (Unknown) no se
// expanden y no participan del cálculo de COI.
type Node struct {
	ID       string
	GAID     string
	TenantID string

	Name      string
	Sex       animals.Sex
	Species   string
	Breed     string
	BirthDate *time.Time
	BirthYear int
	PhotoURL  string

	RegistryNumber string
	BreederName    string
	Titles         []animals.Title
	Competitions   []animals.Competition
	Health         string
	Genetics       string

	Edge       EdgeKind
	LinkID     string
	Generation int

	Unknown    bool
	StubReason StubReason
	// Truncated: la rama se cortó por el guard de ciclos.
	Truncated bool

	Sire *Node
	Dam  *Node
}

// Known: el nodo trae un animal real y puede ser ancestro común.
func (n *Node) Known() bool {
	return n != nil && !n.Unknown && n.ID != ""
}

// Anomaly es una violación de invariantes detectada al resolver (hoy sólo ciclos).
type Anomaly struct {
	Kind     string
	AnimalID string
	Path     []string
}

const AnomalyCycle = "cycle"

type Pedigree struct {
	Root        *Node
	Generations int
	Anomalies   []Anomaly
	ResolvedAt  time.Time
}

