package pedigree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// an arma un nodo conocido; los ancestros repetidos se construyen como nodos
// distintos con el mismo id, igual que los devuelve el resolver.
func an(id string, sire, dam *Node) *Node {
	return &Node{ID: id, Name: id, Sire: sire, Dam: dam}
}

func leaf(id string) *Node { return an(id, nil, nil) }

func TestComputeCOI_FullSiblings(t *testing.T) {
	root := an("X",
		an("S", leaf("G1"), leaf("G2")),
		an("D", leaf("G1"), leaf("G2")),
	)

	res := ComputeCOI(root, 3, DefaultRiskBands())

	assert.InDelta(t, 0.25, res.Coefficient, 1e-12)
	assert.InDelta(t, 25.0, res.Percent, 1e-9)
	assert.Equal(t, RiskCritical, res.RiskLevel)
	require.Len(t, res.CommonAncestors, 2)
	assert.Equal(t, "G1", res.CommonAncestors[0].AnimalID)
	assert.Equal(t, "G2", res.CommonAncestors[1].AnimalID)
	for _, a := range res.CommonAncestors {
		assert.InDelta(t, 0.125, a.Contribution, 1e-12)
		assert.InDelta(t, 0.5, a.Share, 1e-12)
		assert.Equal(t, 1, a.PathPairs)
	}
}

func TestComputeCOI_HalfSiblingsIsModerate(t *testing.T) {
	root := an("X",
		an("S", leaf("G"), leaf("M1")),
		an("D", leaf("G"), leaf("M2")),
	)

	res := ComputeCOI(root, 3, DefaultRiskBands())

	assert.InDelta(t, 0.125, res.Coefficient, 1e-12)
	assert.Equal(t, RiskModerate, res.RiskLevel)
	require.Len(t, res.CommonAncestors, 1)
	assert.Equal(t, "G", res.CommonAncestors[0].AnimalID)
}

// S y D comparten madre G, una generación arriba de cada uno.
func TestComputeCOI_SharedGranddam(t *testing.T) {
	root := an("A",
		an("S", leaf("F1"), leaf("G")),
		an("D", leaf("F2"), leaf("G")),
	)

	res := ComputeCOI(root, 3, DefaultRiskBands())
	assert.InDelta(t, 0.125, res.Coefficient, 1e-12)
}

func TestComputeCOI_NoCommonAncestor(t *testing.T) {
	root := an("A",
		an("S", leaf("S1"), leaf("S2")),
		an("D", leaf("D1"), leaf("D2")),
	)

	res := ComputeCOI(root, 5, DefaultRiskBands())
	assert.Zero(t, res.Coefficient)
	assert.Equal(t, RiskLow, res.RiskLevel)
	assert.Empty(t, res.CommonAncestors)
}

func TestComputeCOI_ParentOffspring(t *testing.T) {
	root := an("R",
		leaf("S"),
		an("D", leaf("S"), leaf("M")),
	)

	res := ComputeCOI(root, 3, DefaultRiskBands())
	assert.InDelta(t, 0.25, res.Coefficient, 1e-12)
	assert.Equal(t, RiskCritical, res.RiskLevel)
}

// Un ancestro que aparece por dos caminos del lado materno aporta una vez por
// cada par de caminos.
func TestComputeCOI_CountsEveryPathPair(t *testing.T) {
	root := an("R",
		an("S", leaf("G"), leaf("M1")),
		an("D", an("X", leaf("G"), leaf("M3")), an("M2", leaf("G"), leaf("M4"))),
	)

	res := ComputeCOI(root, 3, DefaultRiskBands())

	assert.InDelta(t, 0.125, res.Coefficient, 1e-12)
	require.Len(t, res.CommonAncestors, 1)
	assert.Equal(t, 2, res.CommonAncestors[0].PathPairs)
}

// A es hijo de medio hermanos (F_A = 0.125) y ancestro común de R.
func TestComputeCOI_InbredCommonAncestor(t *testing.T) {
	inbredA := func() *Node {
		return an("A",
			an("P", leaf("Z"), leaf("Y1")),
			an("Q", leaf("Z"), leaf("Y2")),
		)
	}
	root := an("R",
		an("S", inbredA(), leaf("M1")),
		an("D", inbredA(), leaf("M2")),
	)

	res := ComputeCOI(root, 4, DefaultRiskBands())

	// (1/2)^3 * (1 + 0.125)
	assert.InDelta(t, 0.140625, res.Coefficient, 1e-12)
	assert.Equal(t, RiskHigh, res.RiskLevel)
	require.Len(t, res.CommonAncestors, 1)
	assert.Equal(t, "A", res.CommonAncestors[0].AnimalID)
	assert.InDelta(t, 0.125, res.CommonAncestors[0].Inbreeding, 1e-12)

	// Con una generación menos Z queda fuera de la ventana de A.
	res = ComputeCOI(root, 3, DefaultRiskBands())
	assert.InDelta(t, 0.125, res.Coefficient, 1e-12)
}

func TestComputeCOI_SwapInvariant(t *testing.T) {
	build := func() *Node {
		return an("R",
			an("S", an("A", an("P", leaf("Z"), leaf("Y1")), an("Q", leaf("Z"), leaf("Y2"))), leaf("M1")),
			an("D", an("A", an("P", leaf("Z"), leaf("Y1")), an("Q", leaf("Z"), leaf("Y2"))), an("M2", leaf("Y1"), leaf("W"))),
		)
	}

	root := build()
	swapped := build()
	swapped.Sire, swapped.Dam = swapped.Dam, swapped.Sire

	a := ComputeCOI(root, 5, DefaultRiskBands())
	b := ComputeCOI(swapped, 5, DefaultRiskBands())

	assert.InDelta(t, a.Coefficient, b.Coefficient, 1e-12)
	assert.Equal(t, a.RiskLevel, b.RiskLevel)
	require.Equal(t, len(a.CommonAncestors), len(b.CommonAncestors))
	for i := range a.CommonAncestors {
		assert.Equal(t, a.CommonAncestors[i].AnimalID, b.CommonAncestors[i].AnimalID)
		assert.InDelta(t, a.CommonAncestors[i].Contribution, b.CommonAncestors[i].Contribution, 1e-12)
	}
}

func TestComputeCOI_WindowExcludesDistantAncestors(t *testing.T) {
	root := an("X",
		an("S", leaf("G"), leaf("M1")),
		an("D", leaf("G"), leaf("M2")),
	)

	res := ComputeCOI(root, 1, DefaultRiskBands())
	assert.Zero(t, res.Coefficient)
}

func TestComputeCOI_StubsAreIgnoredAndCounted(t *testing.T) {
	root := an("X",
		an("S", leaf("G"), leaf("M1")),
		an("D", &Node{Unknown: true, StubReason: StubPrivacyBlocked}, leaf("M2")),
	)

	res := ComputeCOI(root, 3, DefaultRiskBands())
	assert.Zero(t, res.Coefficient)
	assert.Equal(t, 1, res.UnknownAncestors)

	// Un nodo cortado por ciclo conserva el id pero no cuenta como ancestro.
	root.Dam.Sire = &Node{ID: "G", Unknown: true, StubReason: StubCycle, Truncated: true}
	res = ComputeCOI(root, 3, DefaultRiskBands())
	assert.Zero(t, res.Coefficient)
}

func TestComputeCOI_NilRoot(t *testing.T) {
	res := ComputeCOI(nil, 3, DefaultRiskBands())
	assert.Zero(t, res.Coefficient)
	assert.Equal(t, RiskLow, res.RiskLevel)
	assert.NotNil(t, res.CommonAncestors)
}

func TestRiskBands_Classify(t *testing.T) {
	b := DefaultRiskBands()
	cases := []struct {
		coi  float64
		want RiskLevel
	}{
		{0, RiskLow},
		{0.0624, RiskLow},
		{0.0625, RiskModerate},
		{0.1, RiskModerate},
		{0.125, RiskModerate},
		{0.13, RiskHigh},
		{0.2499, RiskHigh},
		{0.25, RiskCritical},
		{0.5, RiskCritical},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, b.Classify(c.coi), "coi=%v", c.coi)
	}

	assert.NoError(t, b.Validate())
	assert.Error(t, RiskBands{ModerateAt: 0.2, HighAbove: 0.1, CriticalAt: 0.3}.Validate())
}
