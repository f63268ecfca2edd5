package motionplan

import (
	"context"
	"math/rand"
)

// prmPlanner is the probabilistic roadmap driver: each PlanMore iteration
// samples a configuration, adds it as a milestone if feasible, and
// connects it to its k nearest existing milestones within
// connectionThreshold via visibility checks. No direct analogue survives in
// the teacher's flat motionplan package (PRM lives in its deleted
// armplanning/internal tree); built from spec.md §2/§8 S5 against the
// teacher's general milestone/roadmap idiom instead.
type prmPlanner struct {
	*plannerBase
	rnd *rand.Rand
}

func newPRMPlanner(cspace *CSpace, opts *PlannerOptions, rnd *rand.Rand) *prmPlanner {
	return &prmPlanner{
		plannerBase: newPlannerBase(cspace, opts, nil),
		rnd:         rnd,
	}
}

func (p *prmPlanner) SetEndpoints(start, goal Configuration) error {
	return setEndpointsWith(p.plannerBase, p.AddMilestone, start, goal)
}

func (p *prmPlanner) SetEndpointSet(start Configuration, goalSet *GoalSet) error {
	return setEndpointSetWith(p.plannerBase, p.AddMilestone, start, goalSet)
}

// PlanMore grows the roadmap by iterations samples, connecting each
// accepted milestone to its nearest neighbors. OptimizeQueryOrder runs once
// up front, matching §4.G's "amortized reorder before stepping."
func (p *prmPlanner) PlanMore(ctx context.Context, iterations int) error {
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

		q, err := p.sampleCandidate()
		if err != nil {
			return err
		}
		idx, err := p.AddMilestone(q)
		if err != nil {
			return err
		}
		if idx < 0 {
			continue
		}
		if err := p.connect(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}

func (p *prmPlanner) sampleCandidate() (Configuration, error) {
	if p.goalSet != nil && p.opts.RandomizeFrequency > 0 && p.iterations%p.opts.RandomizeFrequency == 0 {
		return p.goalSet.SampleGoal(10)
	}
	return p.cspace.Sample()
}

func (p *prmPlanner) connect(ctx context.Context, idx int) error {
	k := p.opts.KNN
	if k <= 0 {
		k = 1
	}
	neighbors, err := kNearestIndices(ctx, p.cspace, p.roadmap.nodes[idx], p.roadmap.nodes, idx, k)
	if err != nil {
		return err
	}
	for _, nIdx := range neighbors {
		dist, err := p.cspace.Distance(p.roadmap.nodes[idx], p.roadmap.nodes[nIdx])
		if err != nil {
			return err
		}
		if p.opts.ConnectionThreshold > 0 && dist > p.opts.ConnectionThreshold {
			continue
		}
		visible, err := p.cspace.IsVisible(p.roadmap.nodes[idx], p.roadmap.nodes[nIdx])
		if err != nil {
			return err
		}
		if visible {
			p.roadmap.addEdge(idx, nIdx)
		}
	}
	return nil
}
