package matching

import (
	"time"

	"pedigree-registry/internal/domain/privacy"
	"pedigree-registry/internal/ports/directory"
)

// Method dice por qué vía se encontró un candidato. Coincide con links.LinkMethod.
type Method string

const (
	MethodGAID          Method = "GAID"
	MethodExchangeCode  Method = "EXCHANGE_CODE"
	MethodRegistry      Method = "REGISTRY"
	MethodBreederSearch Method = "BREEDER_SEARCH"
)

// ExchangeCode es un secreto de un solo uso que nombra un animal concreto.
// Sólo se persiste el hash; el código en claro se devuelve una vez al emitirlo.
type ExchangeCode struct {
	ID       string
	AnimalID string
	TenantID string

	CodeHash   string
	CodePrefix string // primeros caracteres, para que el dueño lo reconozca en listados

	CreatedAt time.Time
	ExpiresAt time.Time

	ConsumedAt         *time.Time
	ConsumedByTenantID string
}

// Candidate es un animal de otro tenant ya redactado para el viewer.
type Candidate struct {
	View privacy.View
	Via  Method
}

// BreederMatch agrupa un tenant que matcheó la búsqueda con sus animales compartibles.
type BreederMatch struct {
	Tenant  directory.Tenant
	Score   float64
	Animals []Candidate
}
