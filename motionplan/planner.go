package motionplan

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// Planner is the incremental roadmap/tree driver contract of §4.G. A
// concrete planner (PRM, single-tree RRT, RRT-Connect) is constructed by a
// PlannerFactory bound to a CSpace and, optionally, a GoalSet.
type Planner interface {
	AddMilestone(q Configuration) (int, error)
	SetEndpoints(start, goal Configuration) error
	SetEndpointSet(start Configuration, goalSet *GoalSet) error
	PlanMore(ctx context.Context, iterations int) error
	IsSolved() bool
	IsConnected(i, j int) bool
	GetSolution() ([]Configuration, error)
	GetPath(i, j int) ([]Configuration, error)
	GetRoadmap() *Roadmap
	GetStats() map[string]string
	GetData(key string) (float64, error)
	NumMilestones() int
	NumComponents() int
	NumIterations() int
	Dump(w io.Writer) error
}

// plannerBase holds the state and behavior common to every planner
// implementation: the roadmap, endpoint bookkeeping, goal-set membership
// tracking, and the metrics counters backing GetStats/GetData. Grounded on
// MotionPlannerInterface/PlannerInterface's shared fields
// (motionplanning.cpp lines 1353-1548).
type plannerBase struct {
	cspace  *CSpace
	goalSet *GoalSet
	opts    *PlannerOptions
	logger  *zap.Logger
	metrics *plannerMetrics

	roadmap *Roadmap

	startIdx      int
	goalIdx       int
	foundGoalIdx  int
	iterations    int
}

func newPlannerBase(cspace *CSpace, opts *PlannerOptions, logger *zap.Logger) *plannerBase {
	return &plannerBase{
		cspace:       cspace,
		opts:         opts,
		logger:       nopIfNil(logger),
		metrics:      newPlannerMetrics(),
		roadmap:      newRoadmap(),
		startIdx:     -1,
		goalIdx:      -1,
		foundGoalIdx: -1,
	}
}

// AddMilestone validates feasibility against the CSpace and, when the base
// has a goal set, checks goal-set membership too. Returns the new dense
// index, or -1 (no error) when q is infeasible (§8 Testable Property 7).
func (b *plannerBase) AddMilestone(q Configuration) (int, error) {
	ok, err := b.cspace.IsFeasible(q)
	if err != nil {
		return -1, err
	}
	if !ok {
		b.metrics.incRejection()
		return -1, nil
	}
	idx := b.roadmap.addNode(q)
	b.metrics.incAcceptance()
	b.metrics.setMilestones(len(b.roadmap.nodes))
	b.checkGoalMembership(idx, q)
	return idx, nil
}

func (b *plannerBase) checkGoalMembership(idx int, q Configuration) {
	if b.goalSet == nil || b.foundGoalIdx >= 0 {
		return
	}
	isGoal, err := b.goalSet.IsGoal(q)
	if err != nil || !isGoal {
		return
	}
	b.foundGoalIdx = idx
}

// setEndpointsWith adds start (which must land at index 0) and goal (index
// 1) through addFn, raising InfeasibleEndpoint if either is rejected (§4.G,
// §8 S3). addFn is the caller's own AddMilestone: concrete planner types
// that layer extra bookkeeping onto milestone insertion (the RRT family's
// tree parent links) pass their own method so that bookkeeping runs for
// the endpoints too, since Go's embedding does not let plannerBase call
// back into an overriding method on the concrete type.
func setEndpointsWith(b *plannerBase, addFn func(Configuration) (int, error), start, goal Configuration) error {
	startIdx, err := addFn(start)
	if err != nil {
		return err
	}
	if startIdx != 0 {
		return newInfeasibleEndpoint("start")
	}
	goalIdx, err := addFn(goal)
	if err != nil {
		return err
	}
	if goalIdx < 0 {
		return newInfeasibleEndpoint("goal")
	}
	b.startIdx = startIdx
	b.goalIdx = goalIdx
	return nil
}

// setEndpointSetWith is the GoalSet analogue of setEndpointsWith: adds
// start at index 0 through addFn and attaches goalSet. The first milestone
// that satisfies goalSet's membership predicate becomes the goal milestone,
// and IsSolved becomes true once start is connected to it; milestones that
// satisfy the predicate later are not tracked as goals. The original rebuilds a fresh planner instance
// bound to the goal set (motionplanning.cpp's setEndpointSet, lines
// 1353-1374); this module instead attaches the goal set to the
// already-constructed planner in place, an idiomatic simplification since
// Go has no exception-driven re-dispatch and the planner's internal state
// (roadmap, stats) carries over unchanged either way.
func setEndpointSetWith(b *plannerBase, addFn func(Configuration) (int, error), start Configuration, goalSet *GoalSet) error {
	startIdx, err := addFn(start)
	if err != nil {
		return err
	}
	if startIdx != 0 {
		return newInfeasibleEndpoint("start")
	}
	b.startIdx = startIdx
	b.goalSet = goalSet
	b.checkGoalMembership(startIdx, start)
	return nil
}

func (b *plannerBase) effectiveGoalIdx() int {
	if b.foundGoalIdx >= 0 {
		return b.foundGoalIdx
	}
	return b.goalIdx
}

// IsSolved reports whether the start milestone and the goal milestone (the
// fixed goal, or the first goal-set member found) are in the same roadmap
// component.
func (b *plannerBase) IsSolved() bool {
	goal := b.effectiveGoalIdx()
	if b.startIdx < 0 || goal < 0 {
		return false
	}
	return b.roadmap.IsConnected(b.startIdx, goal)
}

// IsConnected reports whether milestones i and j share a roadmap component.
func (b *plannerBase) IsConnected(i, j int) bool {
	return b.roadmap.IsConnected(i, j)
}

// GetSolution returns the path from start to the found goal, once solved.
func (b *plannerBase) GetSolution() ([]Configuration, error) {
	goal := b.effectiveGoalIdx()
	if b.startIdx < 0 || goal < 0 {
		return nil, newInvalidArgument("no solution: endpoints not set")
	}
	return b.GetPath(b.startIdx, goal)
}

// GetPath returns the milestone sequence connecting i to j, or an error if
// they are not connected.
func (b *plannerBase) GetPath(i, j int) ([]Configuration, error) {
	indices := b.roadmap.path(i, j)
	if indices == nil {
		return nil, newInvalidArgument("milestones %d and %d are not connected", i, j)
	}
	path := make([]Configuration, len(indices))
	for k, idx := range indices {
		path[k] = b.roadmap.nodes[idx]
	}
	return path, nil
}

// GetRoadmap exposes the underlying graph.
func (b *plannerBase) GetRoadmap() *Roadmap {
	return b.roadmap
}

// GetStats renders the metrics counters into the spec-mandated string map.
func (b *plannerBase) GetStats() map[string]string {
	return b.metrics.stats(b.iterations, len(b.roadmap.nodes), b.roadmap.NumComponents())
}

// GetData is the numeric analogue of GetStats for the three accessors the
// original exposes (motionplanning.cpp's getData, restored per SPEC_FULL §4.G).
func (b *plannerBase) GetData(key string) (float64, error) {
	switch key {
	case "iterations":
		return float64(b.iterations), nil
	case "milestones":
		return float64(len(b.roadmap.nodes)), nil
	case "components":
		return float64(b.roadmap.NumComponents()), nil
	default:
		return 0, newInvalidArgument("unknown data key %q", key)
	}
}

func (b *plannerBase) NumMilestones() int  { return len(b.roadmap.nodes) }
func (b *plannerBase) NumComponents() int  { return b.roadmap.NumComponents() }
func (b *plannerBase) NumIterations() int  { return b.iterations }

// Dump writes the roadmap via Roadmap.Dump.
func (b *plannerBase) Dump(w io.Writer) error {
	return b.roadmap.Dump(w)
}
