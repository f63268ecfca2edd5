package motionplan

import (
	"context"
	"math"
	"sort"
)

// neighbor pairs a tree node with its distance to some query configuration.
type neighbor struct {
	dist float64
	node node
}

// nearestNeighbor scans tree sequentially and returns the closest node to
// seed under space's Distance callback. The teacher's neighborManager
// parallelizes this search across goroutines once the tree grows past a
// threshold (nearestNeighbor.go, neighborsBeforeParallelization); that
// strategy is dropped here because Distance is a host callback, and
// SPEC_FULL.md §5 forbids calling any host callback from more than one
// goroutine at a time.
func nearestNeighbor(ctx context.Context, space *CSpace, seed Configuration, tree map[node]node) (node, error) {
	bestDist := math.Inf(1)
	var best node
	for candidate := range tree {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dist, err := space.Distance(candidate.Q(), seed)
		if err != nil {
			return nil, err
		}
		if dist < bestDist {
			bestDist = dist
			best = candidate
		}
	}
	return best, nil
}

// kNearestNeighbors returns the k closest nodes in tree to target, sorted
// ascending by distance. Grounded on the teacher's kNearestNeighbors
// (nearestNeighbor.go), generalized from a fixed package-level
// neighborhoodSize to an explicit k argument.
func kNearestNeighbors(ctx context.Context, space *CSpace, target Configuration, tree map[node]node, k int) ([]*neighbor, error) {
	if k > len(tree) {
		k = len(tree)
	}

	allCosts := make([]*neighbor, 0, len(tree))
	for candidate := range tree {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dist, err := space.Distance(candidate.Q(), target)
		if err != nil {
			return nil, err
		}
		allCosts = append(allCosts, &neighbor{dist: dist, node: candidate})
	}
	sort.Slice(allCosts, func(i, j int) bool {
		return allCosts[i].dist < allCosts[j].dist
	})
	return allCosts[:k], nil
}

// kNearestIndices is the Roadmap-indexed analogue of kNearestNeighbors, used
// by PRM where milestones are addressed by dense integer index rather than
// wrapped in a node.
func kNearestIndices(ctx context.Context, space *CSpace, target Configuration, configs []Configuration, self int, k int) ([]int, error) {
	type scored struct {
		idx  int
		dist float64
	}
	all := make([]scored, 0, len(configs))
	for i, q := range configs {
		if i == self {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dist, err := space.Distance(q, target)
		if err != nil {
			return nil, err
		}
		all = append(all, scored{idx: i, dist: dist})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].dist < all[j].dist })
	if k > len(all) {
		k = len(all)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = all[i].idx
	}
	return out, nil
}
