package pedigree

import "pedigree-registry/internal/platform/apperr"

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskBands en fracción (0.0625 = 6.25%).
//
//	LOW       coi <  ModerateAt
//	MODERATE  ModerateAt <= coi <= HighAbove
//	HIGH      HighAbove  <  coi <  CriticalAt
//	CRITICAL  coi >= CriticalAt
//
// Con los defaults una cruza de medio hermanos (12.5%) queda en MODERATE.
type RiskBands struct {
	ModerateAt float64
	HighAbove  float64
	CriticalAt float64
}

func DefaultRiskBands() RiskBands {
	return RiskBands{ModerateAt: 0.0625, HighAbove: 0.125, CriticalAt: 0.25}
}

// tolerancia para sumas de potencias de 1/2 con F_A no nulo
const bandEpsilon = 1e-12

func (b RiskBands) Validate() error {
	if b.ModerateAt <= 0 || b.ModerateAt > b.HighAbove || b.HighAbove >= b.CriticalAt || b.CriticalAt > 1 {
		return apperr.Validation("risk bands must satisfy 0 < moderate <= high < critical <= 1")
	}
	return nil
}

func (b RiskBands) Classify(coi float64) RiskLevel {
	switch {
	case coi >= b.CriticalAt-bandEpsilon:
		return RiskCritical
	case coi > b.HighAbove+bandEpsilon:
		return RiskHigh
	case coi >= b.ModerateAt-bandEpsilon:
		return RiskModerate
	default:
		return RiskLow
	}
}
