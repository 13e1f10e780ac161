package pedigree

import (
	"math"
	"sort"
)

// CommonAncestor es un ancestro presente en ambos lados con al menos un par de
// caminos disjuntos.
type CommonAncestor struct {
	AnimalID string
	Name     string
	// Contribution es la fracción que aporta al COI total.
	Contribution float64
	Percent      float64
	// Share: Contribution / COI.
	Share      float64
	PathPairs  int
	Inbreeding float64
}

type COIResult struct {
	AnimalID            string
	Coefficient         float64
	Percent             float64
	RiskLevel           RiskLevel
	GenerationsAnalyzed int
	CommonAncestors     []CommonAncestor
	// UnknownAncestors: stubs dentro de la ventana analizada. Con valores > 0
	// el coeficiente es una cota inferior.
	UnknownAncestors int
}

// ComputeCOI aplica el método de conteo de caminos de Wright sobre un árbol ya
// resuelto. Es pura: no lee stores ni modifica el árbol.
func ComputeCOI(root *Node, generations int, bands RiskBands) COIResult {
	res := COIResult{
		GenerationsAnalyzed: generations,
		CommonAncestors:     []CommonAncestor{},
	}
	if root == nil {
		res.RiskLevel = bands.Classify(0)
		return res
	}
	res.AnimalID = root.ID
	res.UnknownAncestors = unknownWithin(root.Sire, 1, generations) + unknownWithin(root.Dam, 1, generations)

	c := &calc{memo: map[fKey]float64{}}
	total, found := c.pairs(root, generations)

	for id, a := range found {
		ca := CommonAncestor{
			AnimalID:     id,
			Name:         a.node.Name,
			Contribution: a.sum,
			Percent:      a.sum * 100,
			PathPairs:    a.pairs,
			Inbreeding:   a.fA,
		}
		if total > 0 {
			ca.Share = a.sum / total
		}
		res.CommonAncestors = append(res.CommonAncestors, ca)
	}
	sort.Slice(res.CommonAncestors, func(i, j int) bool {
		ai, aj := res.CommonAncestors[i], res.CommonAncestors[j]
		if ai.Contribution != aj.Contribution {
			return ai.Contribution > aj.Contribution
		}
		return ai.AnimalID < aj.AnimalID
	})

	res.Coefficient = total
	res.Percent = total * 100
	res.RiskLevel = bands.Classify(total)
	return res
}

// occurrence es una aparición de un ancestro en un lado del árbol.
// depth 1 es el padre; path va desde el padre hasta el nodo, inclusive.
type occurrence struct {
	node  *Node
	depth int
	path  []string
}

type contribution struct {
	node  *Node
	sum   float64
	pairs int
	fA    float64
}

type fKey struct {
	id    string
	limit int
}

// calc memoiza F_A por (animal, generaciones disponibles) dentro de un cálculo.
type calc struct {
	memo map[fKey]float64
}

// pairs suma (1/2)^(n1+n2+1) * (1+F_A) por cada par de caminos disjuntos
// sire→A / dam→A con A dentro de limit generaciones de n.
func (c *calc) pairs(n *Node, limit int) (float64, map[string]*contribution) {
	found := map[string]*contribution{}
	if n == nil || limit < 2 || !n.Sire.Known() || !n.Dam.Known() {
		return 0, found
	}

	sires := collect(n.Sire, limit)
	dams := collect(n.Dam, limit)

	damsByID := make(map[string][]occurrence, len(dams))
	for _, o := range dams {
		damsByID[o.node.ID] = append(damsByID[o.node.ID], o)
	}

	total := 0.0
	for _, s := range sires {
		ds, ok := damsByID[s.node.ID]
		if !ok {
			continue
		}
		a := found[s.node.ID]
		if a == nil {
			a = &contribution{node: s.node}
			a.fA = c.ancestorF(s.node.ID, sires, dams, limit)
			found[s.node.ID] = a
		}
		for _, d := range ds {
			if !disjoint(s.path, d.path) {
				continue
			}
			// n1 = s.depth-1, n2 = d.depth-1
			v := math.Pow(0.5, float64(s.depth+d.depth-1)) * (1 + a.fA)
			a.sum += v
			a.pairs++
			total += v
		}
	}

	for id, a := range found {
		if a.pairs == 0 {
			delete(found, id)
		}
	}
	return total, found
}

// ancestorF calcula F_A sobre la aparición menos profunda de A, que es la que
// conserva más generaciones propias dentro de la ventana.
func (c *calc) ancestorF(id string, sires, dams []occurrence, limit int) float64 {
	var best *occurrence
	for _, side := range [][]occurrence{sires, dams} {
		for i := range side {
			if side[i].node.ID != id {
				continue
			}
			if best == nil || side[i].depth < best.depth {
				best = &side[i]
			}
		}
	}
	if best == nil {
		return 0
	}
	return c.inbreeding(best.node, limit-best.depth)
}

func (c *calc) inbreeding(n *Node, limit int) float64 {
	if !n.Known() || limit < 2 {
		return 0
	}
	key := fKey{id: n.ID, limit: limit}
	if f, ok := c.memo[key]; ok {
		return f
	}
	f, _ := c.pairs(n, limit)
	c.memo[key] = f
	return f
}

func collect(start *Node, limit int) []occurrence {
	var out []occurrence
	var walk func(n *Node, depth int, path []string)
	walk = func(n *Node, depth int, path []string) {
		if depth > limit || !n.Known() {
			return
		}
		path = append(path[:len(path):len(path)], n.ID)
		out = append(out, occurrence{node: n, depth: depth, path: path})
		walk(n.Sire, depth+1, path)
		walk(n.Dam, depth+1, path)
	}
	walk(start, 1, nil)
	return out
}

// disjoint: los dos caminos sólo comparten el ancestro final.
func disjoint(a, b []string) bool {
	seen := make(map[string]struct{}, len(a))
	for _, id := range a[:len(a)-1] {
		seen[id] = struct{}{}
	}
	for _, id := range b[:len(b)-1] {
		if _, ok := seen[id]; ok {
			return false
		}
	}
	return true
}

func unknownWithin(n *Node, depth, limit int) int {
	if n == nil || depth > limit {
		return 0
	}
	if n.Unknown {
		return 1
	}
	return unknownWithin(n.Sire, depth+1, limit) + unknownWithin(n.Dam, depth+1, limit)
}
