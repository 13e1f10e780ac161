package links

import (
	"strings"
	"time"

	"pedigree-registry/internal/domain/animals"
)

// LinkMethod registra cómo se encontró el animal objetivo.
type LinkMethod string

const (
	MethodGAID          LinkMethod = "GAID"
	MethodExchangeCode  LinkMethod = "EXCHANGE_CODE"
	MethodRegistry      LinkMethod = "REGISTRY"
	MethodBreederSearch LinkMethod = "BREEDER_SEARCH"
)

func ParseLinkMethod(s string) (LinkMethod, bool) {
	switch m := LinkMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case MethodGAID, MethodExchangeCode, MethodRegistry, MethodBreederSearch:
		return m, true
	default:
		return "", false
	}
}

type LinkStatus string

const (
	LinkActive  LinkStatus = "ACTIVE"
	LinkRevoked LinkStatus = "REVOKED"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestDenied   RequestStatus = "DENIED"
	RequestExpired  RequestStatus = "EXPIRED"
)

// CrossTenantLink es una arista padre aprobada entre registros de dos tenants.
// Source es el hijo, Target el padre. REVOKED es terminal.
type CrossTenantLink struct {
	ID string

	SourceAnimalID string
	SourceTenantID string
	TargetAnimalID string
	TargetTenantID string

	ParentType animals.ParentType
	Method     LinkMethod
	Status     LinkStatus
	RequestID  string

	CreatedAt         time.Time
	RevokedAt         *time.Time
	RevokedReason     string
	RevokedByTenantID string
}

// LinkRequest propone un CrossTenantLink. PENDING pasa a exactamente un estado terminal.
type LinkRequest struct {
	ID string

	RequestingTenantID string
	SourceAnimalID     string
	RelationshipType   animals.ParentType
	TargetAnimalID     string
	TargetTenantID     string
	Method             LinkMethod

	Status          RequestStatus
	Message         string
	ResponseMessage string
	DenialReason    string

	CreatedAt   time.Time
	RespondedAt *time.Time
	ExpiresAt   time.Time

	// LinkID queda seteado cuando Status == APPROVED.
	LinkID string
}

func (r LinkRequest) ExpiredAt(now time.Time) bool {
	return r.Status == RequestPending && !now.Before(r.ExpiresAt)
}

type Direction string

const (
	DirectionIncoming Direction = "incoming" // el tenant es dueño del padre ofrecido
	DirectionOutgoing Direction = "outgoing" // el tenant pidió el link
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionIncoming, "":
		return DirectionIncoming, true
	case DirectionOutgoing:
		return DirectionOutgoing, true
	default:
		return "", false
	}
}
