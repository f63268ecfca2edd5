package motionplan

import (
	"context"
	"math"
	"math/rand"
)

// goalBiasProbability is the chance, on each PlanMore iteration, that the
// tree is extended toward the goal (or a goal-set sample) rather than a
// uniform C-space sample — the standard RRT goal-biasing heuristic.
const goalBiasProbability = 0.05

// rrtPlanner is a single-tree RRT driver rooted at the start milestone.
// Grounded on the teacher's rrt.go (rrtMaps/rrtPlanReturn shape,
// initRRTSolutions's "check IK solutions, else grow a tree" structure),
// with the pose/IK specifics stripped: growth here interpolates and tests
// visibility through the abstract CSpace instead of frame-system inputs.
type rrtPlanner struct {
	*plannerBase
	rnd *rand.Rand

	tree       map[node]node // child -> parent; root maps to nil
	nodeAt     []node        // roadmap index -> node
	nodeIndex  map[node]int  // node -> roadmap index
}

func newRRTPlanner(cspace *CSpace, opts *PlannerOptions, rnd *rand.Rand) *rrtPlanner {
	return &rrtPlanner{
		plannerBase: newPlannerBase(cspace, opts, nil),
		rnd:         rnd,
		tree:        make(map[node]node),
		nodeIndex:   make(map[node]int),
	}
}

// AddMilestone layers tree bookkeeping (a fresh, parentless node) onto the
// base insertion; PlanMore's extend step attaches the resulting node to its
// nearest tree neighbor separately.
func (p *rrtPlanner) AddMilestone(q Configuration) (int, error) {
	idx, err := p.plannerBase.AddMilestone(q)
	if err != nil || idx < 0 {
		return idx, err
	}
	n := &basicNode{q: q, cost: math.NaN()}
	p.tree[n] = nil
	for len(p.nodeAt) <= idx {
		p.nodeAt = append(p.nodeAt, nil)
	}
	p.nodeAt[idx] = n
	p.nodeIndex[n] = idx
	return idx, nil
}

// SetEndpoints roots the tree at start. The goal milestone is registered
// for indexing/roadmap purposes but deliberately kept out of the growable
// tree until attachGoal links it in: otherwise it would sit in p.tree as a
// second, permanently-parentless root, corrupting nearest-neighbor search
// and letting extensions build a branch that dangles from the goal instead
// of from the real tree.
func (p *rrtPlanner) SetEndpoints(start, goal Configuration) error {
	if err := setEndpointsWith(p.plannerBase, p.AddMilestone, start, goal); err != nil {
		return err
	}
	delete(p.tree, p.nodeAt[p.goalIdx])
	return nil
}

func (p *rrtPlanner) SetEndpointSet(start Configuration, goalSet *GoalSet) error {
	return setEndpointSetWith(p.plannerBase, p.AddMilestone, start, goalSet)
}

// PlanMore grows the tree by iterations extension attempts.
func (p *rrtPlanner) PlanMore(ctx context.Context, iterations int) error {
	if p.startIdx < 0 {
		return newInvalidArgument("PlanMore requires at least one start milestone")
	}
	p.cspace.OptimizeQueryOrder()

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.iterations++
		p.metrics.incIteration()

		target, isGoal, err := p.sampleTarget()
		if err != nil {
			return err
		}
		if _, err := p.extend(ctx, target, isGoal); err != nil {
			return err
		}
	}
	return nil
}

// sampleTarget draws an extension target, goal-biasing toward the fixed
// goal milestone when one is registered. The returned bool reports whether
// target is that exact registered goal configuration, so extend can attach
// the existing goal milestone to the tree on a full step instead of
// creating a coincident duplicate.
func (p *rrtPlanner) sampleTarget() (Configuration, bool, error) {
	if p.rnd.Float64() < goalBiasProbability {
		if p.goalSet != nil {
			q, err := p.goalSet.SampleGoal(10)
			return q, false, err
		}
		if p.goalIdx >= 0 {
			return p.roadmap.nodes[p.goalIdx], true, nil
		}
	}
	q, err := p.cspace.Sample()
	return q, false, err
}

// extend grows the tree one step toward target from its nearest existing
// node, bounded by the configured perturbation radius, and returns the new
// milestone's index (or -1 if the step was infeasible or not visible). When
// target is the registered goal and the step reaches it in full, the
// existing goal milestone is attached to the tree rather than inserted
// again under a fresh index.
func (p *rrtPlanner) extend(ctx context.Context, target Configuration, targetIsGoal bool) (int, error) {
	nearest, err := nearestNeighbor(ctx, p.cspace, target, p.tree)
	if err != nil {
		return -1, err
	}
	if nearest == nil {
		return -1, nil
	}

	dist, err := p.cspace.Distance(nearest.Q(), target)
	if err != nil {
		return -1, err
	}
	if dist == 0 {
		return -1, nil
	}

	step := p.opts.PerturbationRadius
	u := 1.0
	if step > 0 && dist > step {
		u = step / dist
	}

	if targetIsGoal && u >= 1.0 {
		return p.attachGoal(nearest, dist)
	}

	newQ, err := p.cspace.Interpolate(nearest.Q(), target, u)
	if err != nil {
		return -1, err
	}

	visible, err := p.cspace.IsVisible(nearest.Q(), newQ)
	if err != nil {
		return -1, err
	}
	if !visible {
		return -1, nil
	}

	idx, err := p.AddMilestone(newQ)
	if err != nil || idx < 0 {
		return -1, err
	}

	edgeDist, err := p.cspace.Distance(nearest.Q(), newQ)
	if err != nil {
		return -1, err
	}
	newNode := p.nodeAt[idx]
	parentCost := nearest.Cost()
	if math.IsNaN(parentCost) {
		parentCost = 0
	}
	newNode.SetCost(parentCost + edgeDist)
	p.tree[newNode] = nearest

	parentIdx, ok := p.nodeIndex[nearest]
	if ok {
		p.roadmap.addEdge(parentIdx, idx)
	}
	return idx, nil
}

// attachGoal links the already-registered goal milestone to the tree as a
// child of nearest, once an extension step can reach it without
// obstruction, instead of inserting a coincident duplicate milestone.
func (p *rrtPlanner) attachGoal(nearest node, dist float64) (int, error) {
	goalQ := p.roadmap.nodes[p.goalIdx]
	visible, err := p.cspace.IsVisible(nearest.Q(), goalQ)
	if err != nil {
		return -1, err
	}
	if !visible {
		return -1, nil
	}
	goalNode := p.nodeAt[p.goalIdx]
	if existingParent := p.tree[goalNode]; existingParent != nil {
		return p.goalIdx, nil
	}
	parentCost := nearest.Cost()
	if math.IsNaN(parentCost) {
		parentCost = 0
	}
	goalNode.SetCost(parentCost + dist)
	p.tree[goalNode] = nearest

	parentIdx, ok := p.nodeIndex[nearest]
	if ok {
		p.roadmap.addEdge(parentIdx, p.goalIdx)
	}
	return p.goalIdx, nil
}
