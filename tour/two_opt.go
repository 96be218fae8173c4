package tour

import (
	"math"

	"github.com/tripatlas/routegraph/transport"
)

// twoOpt refines a closed route by first-improvement segment reversal.
//
// Each pass scans cut pairs (i, j) with 1 ≤ i < j ≤ len−2, skipping
// j−i == 1 (adjacent-edge reversals cannot improve a route built from
// shortest pairwise paths). The first reversal that beats the current
// cost by more than Eps is applied and the pass restarts. The loop
// ends at a local optimum or after maxIterations passes.
func twoOpt(route []string, pairs pairMap, strategy transport.WeightStrategy, maxIterations int) []string {
	if len(route) <= 3 {
		return route // nothing interior to reverse
	}

	best := route
	bestCost := routeCost(best, pairs, strategy)

	improved := true
	for iteration := 0; improved && iteration < maxIterations; iteration++ {
		improved = false
		for i := 1; i < len(best)-2 && !improved; i++ {
			for j := i + 1; j < len(best)-1; j++ {
				if j-i == 1 {
					continue
				}
				candidate := reverseSegment(best, i, j)
				if cost := routeCost(candidate, pairs, strategy); cost+Eps < bestCost {
					best = candidate
					bestCost = cost
					improved = true

					break
				}
			}
		}
	}

	return best
}

// reverseSegment returns a copy of route with route[i:j] reversed.
func reverseSegment(route []string, i, j int) []string {
	out := make([]string, len(route))
	copy(out, route)
	for l, r := i, j-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}

	return out
}

// routeCost sums the strategy scalar over consecutive route pairs; a
// missing pair makes the candidate infinitely expensive.
func routeCost(route []string, pairs pairMap, strategy transport.WeightStrategy) float64 {
	var total float64
	for i := 0; i+1 < len(route); i++ {
		path, ok := pairs[pairKey{route[i], route[i+1]}]
		if !ok {
			return math.Inf(1)
		}
		total += pathCost(path, strategy)
	}

	return total
}
