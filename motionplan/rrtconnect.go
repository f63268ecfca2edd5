package motionplan

import (
	"context"
	"math"
	"math/rand"
)

// rrtConnectPlanner is the bidirectional RRT variant selected when
// PlannerOptions.Bidirectional is set on an RRT-family type (§9 Open
// Question decision 5: "rrtconnect" is the internal type tag this module
// resolves to). Two trees grow from the start and the goal respectively;
// each iteration extends one tree toward a sample and then attempts to
// connect it to the nearest node of the other tree. Grounded on the
// teacher's deleted rrtConnect.go (rrtConnectMotionPlanner/planRunner's
// two-tree growth and connection-attempt shape), rebuilt against the
// abstract CSpace.
type rrtConnectPlanner struct {
	*plannerBase
	rnd *rand.Rand

	startTree map[node]node
	goalTree  map[node]node
	nodeAt    []node
	nodeIndex map[node]int

	connections []*nodePair
}

func newRRTConnectPlanner(cspace *CSpace, opts *PlannerOptions, rnd *rand.Rand) *rrtConnectPlanner {
	return &rrtConnectPlanner{
		plannerBase: newPlannerBase(cspace, opts, nil),
		rnd:         rnd,
		startTree:   make(map[node]node),
		goalTree:    make(map[node]node),
		nodeIndex:   make(map[node]int),
	}
}

// AddMilestone creates the roadmap entry and a bare, tree-less node; the
// caller (SetEndpoints, or extend during PlanMore) assigns it to a tree
// immediately afterward.
func (p *rrtConnectPlanner) AddMilestone(q Configuration) (int, error) {
	idx, err := p.plannerBase.AddMilestone(q)
	if err != nil || idx < 0 {
		return idx, err
	}
	n := &basicNode{q: q, cost: math.NaN()}
	for len(p.nodeAt) <= idx {
		p.nodeAt = append(p.nodeAt, nil)
	}
	p.nodeAt[idx] = n
	p.nodeIndex[n] = idx
	return idx, nil
}

func (p *rrtConnectPlanner) SetEndpoints(start, goal Configuration) error {
	if err := setEndpointsWith(p.plannerBase, p.AddMilestone, start, goal); err != nil {
		return err
	}
	startNode, goalNode := p.nodeAt[p.startIdx], p.nodeAt[p.goalIdx]
	startNode.SetCost(0)
	goalNode.SetCost(0)
	p.startTree[startNode] = nil
	p.goalTree[goalNode] = nil
	return nil
}

// SetEndpointSet falls back to growing only the start tree: a goal set has
// no fixed configuration to root a second tree at, so this mode degrades
// to single-tree RRT behavior (goal-biased sampling toward the goal set),
// a documented simplification of the original's goal-set rebuild path.
func (p *rrtConnectPlanner) SetEndpointSet(start Configuration, goalSet *GoalSet) error {
	if err := setEndpointSetWith(p.plannerBase, p.AddMilestone, start, goalSet); err != nil {
		return err
	}
	startNode := p.nodeAt[p.startIdx]
	startNode.SetCost(0)
	p.startTree[startNode] = nil
	return nil
}

func (p *rrtConnectPlanner) PlanMore(ctx context.Context, iterations int) error {
	if p.startIdx < 0 {
		return newInvalidArgument("PlanMore requires at least one start milestone")
	}
	p.cspace.OptimizeQueryOrder()

	growStart := true
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.iterations++
		p.metrics.incIteration()

		source, target := &p.startTree, &p.goalTree
		if !growStart {
			source, target = &p.goalTree, &p.startTree
		}
		if len(p.goalTree) == 0 {
			// No goal tree yet (SetEndpointSet mode): always grow the start
			// tree toward the goal set.
			source, target = &p.startTree, &p.startTree
		}
		growStart = !growStart

		sample, err := p.sampleTarget()
		if err != nil {
			return err
		}
		if err := p.extendAndConnect(ctx, source, target, sample); err != nil {
			return err
		}
	}
	return nil
}

func (p *rrtConnectPlanner) sampleTarget() (Configuration, error) {
	if p.goalSet != nil && p.rnd.Float64() < goalBiasProbability {
		return p.goalSet.SampleGoal(10)
	}
	return p.cspace.Sample()
}

// extendAndConnect grows source one step toward sample, then tries to link
// the new node to its nearest neighbor in target. A successful link is
// recorded as a candidate join rather than accepted outright, so
// GetSolution can pick the cheapest of possibly several joins (§4.B's
// spirit applied to path extraction, not just test scheduling).
func (p *rrtConnectPlanner) extendAndConnect(ctx context.Context, source, target *map[node]node, sample Configuration) error {
	nearest, err := nearestNeighbor(ctx, p.cspace, sample, *source)
	if err != nil {
		return err
	}
	if nearest == nil {
		return nil
	}

	dist, err := p.cspace.Distance(nearest.Q(), sample)
	if err != nil || dist == 0 {
		return err
	}

	step := p.opts.PerturbationRadius
	u := 1.0
	if step > 0 && dist > step {
		u = step / dist
	}
	newQ, err := p.cspace.Interpolate(nearest.Q(), sample, u)
	if err != nil {
		return err
	}

	visible, err := p.cspace.IsVisible(nearest.Q(), newQ)
	if err != nil || !visible {
		return err
	}

	idx, err := p.AddMilestone(newQ)
	if err != nil || idx < 0 {
		return err
	}
	newNode := p.nodeAt[idx]
	edgeDist, err := p.cspace.Distance(nearest.Q(), newQ)
	if err != nil {
		return err
	}
	parentCost := nearest.Cost()
	if math.IsNaN(parentCost) {
		parentCost = 0
	}
	newNode.SetCost(parentCost + edgeDist)
	(*source)[newNode] = nearest

	parentIdx := p.nodeIndex[nearest]
	p.roadmap.addEdge(parentIdx, idx)

	if len(*target) == 0 || target == source {
		return nil
	}
	nearestInTarget, err := nearestNeighbor(ctx, p.cspace, newQ, *target)
	if err != nil || nearestInTarget == nil {
		return err
	}
	connectVisible, err := p.cspace.IsVisible(newNode.Q(), nearestInTarget.Q())
	if err != nil {
		return err
	}
	if !connectVisible {
		return nil
	}
	targetIdx := p.nodeIndex[nearestInTarget]
	p.roadmap.addEdge(idx, targetIdx)
	p.connections = append(p.connections, &nodePair{a: newNode, b: nearestInTarget})
	return nil
}

// GetSolution overrides the base BFS path extraction to pick the
// cheapest-so-far tree join, matching the teacher's shortestPath
// (rrt.go) over accumulated nodePairs instead of an arbitrary shortest-hop
// roadmap path.
func (p *rrtConnectPlanner) GetSolution() ([]Configuration, error) {
	if len(p.connections) == 0 {
		return p.plannerBase.GetSolution()
	}
	best := p.connections[0]
	bestCost := best.sumCosts()
	for _, pair := range p.connections[1:] {
		if cost := pair.sumCosts(); cost < bestCost {
			best, bestCost = pair, cost
		}
	}
	path := extractPath(p.startTree, p.goalTree, best, false)
	out := make([]Configuration, len(path))
	for i, n := range path {
		out[i] = n.Q()
	}
	return out, nil
}
