package motionplan

import "math"

// node wraps a Configuration with the bookkeeping a tree-based planner needs:
// an accumulated cost from the tree root. The nodes at which RRT-Connect's
// two trees were joined are recorded separately, as a nodePair.
// Grounded on the teacher's node/basicNode (motionPlanner.go, node.go), with
// Poses/Corner dropped: this engine's milestones are bare Configurations, not
// frame-system poses.
type node interface {
	Q() Configuration
	Cost() float64
	SetCost(float64)
}

type basicNode struct {
	q    Configuration
	cost float64
}

// newConfigurationNode wraps q with an undefined (NaN) cost, for milestones
// that are not yet attached to a tree.
func newConfigurationNode(q Configuration) node {
	return &basicNode{q: q, cost: math.NaN()}
}

func (n *basicNode) Q() Configuration   { return n.q }
func (n *basicNode) Cost() float64      { return n.cost }
func (n *basicNode) SetCost(cost float64) { n.cost = cost }

// nodePair groups the two nodes at which a bidirectional search's trees were
// joined.
type nodePair struct{ a, b node }

func (np *nodePair) sumCosts() float64 {
	aCost := np.a.Cost()
	if math.IsNaN(aCost) {
		return 0
	}
	bCost := np.b.Cost()
	if math.IsNaN(bCost) {
		return 0
	}
	return aCost + bCost
}

// extractPath walks startMap and goalMap (child -> parent adjacency for each
// of the two trees) back to their roots and splices the results together at
// pair, producing an ordered start-to-goal path. Grounded on the teacher's
// extractPath (node.go).
func extractPath(startMap, goalMap map[node]node, pair *nodePair, matched bool) []node {
	var startReached, goalReached node
	if _, ok := startMap[pair.a]; ok {
		startReached, goalReached = pair.a, pair.b
	} else {
		startReached, goalReached = pair.b, pair.a
	}

	path := make([]node, 0)
	for startReached != nil {
		path = append(path, startReached)
		startReached = startMap[startReached]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	if goalReached != nil {
		if matched {
			goalReached = goalMap[goalReached]
		}
		for goalReached != nil {
			path = append(path, goalReached)
			goalReached = goalMap[goalReached]
		}
	}
	return path
}

func sumCosts(path []node) float64 {
	cost := 0.
	for _, wp := range path {
		cost += wp.Cost()
	}
	return cost
}
