package motionplan

// edgePlanner decides visibility of a segment (a,b), either by delegating
// to registered visibility predicates or by recursive straight-line
// bisection against feasibility. Grounded on PyEdgePlanner and
// PyCSpace::LocalPlanner's dispatch between them (motionplanning.cpp lines
// 644-768).
//
// constraintIdx == -1 selects the aggregated variant (all constraints);
// constraintIdx >= 0 selects the single-constraint variant used by
// CSpace.IsVisibleConstraint.
type edgePlanner struct {
	cs            *CSpace
	constraintIdx int
}

func newEdgePlanner(cs *CSpace, constraintIdx int) *edgePlanner {
	return &edgePlanner{cs: cs, constraintIdx: constraintIdx}
}

// IsVisible picks a strategy and runs it. Any callback error or missing
// predicate propagates as a fatal error (§4.D).
func (ep *edgePlanner) IsVisible(a, b Configuration) (bool, error) {
	if ep.constraintIdx >= 0 {
		return ep.isVisibleSingle(a, b)
	}
	return ep.isVisibleAggregated(a, b)
}

func (ep *edgePlanner) isVisibleSingle(a, b Configuration) (bool, error) {
	idx := ep.constraintIdx
	if ep.cs.constraints.visible[idx] != nil {
		return ep.cs.testVisibleAt(idx, a, b)
	}
	return ep.bisect(a, b, func(q Configuration) (bool, error) {
		return ep.cs.testFeasibleAt(idx, q)
	})
}

func (ep *edgePlanner) isVisibleAggregated(a, b Configuration) (bool, error) {
	order := ep.cs.constraints.visibilityOrder()
	if len(order) > 0 {
		for _, idx := range order {
			ok, err := ep.cs.testVisibleAt(idx, a, b)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
	return ep.bisect(a, b, ep.cs.IsFeasible)
}

// bisect recursively subdivides (a,b), testing the midpoint first and then
// recursing depth-first into the left half before the right half, so the
// visiting order is 1/2, 1/4, 1/8, ... down to the resolution, and only then
// 3/8, 3/4, and so on; it does not visit the points level by level (1/2,
// 1/4, 3/4, 1/8, ...). Recursion stops once the segment's C-space distance
// is at or below the configured resolution. A non-positive resolution is an
// InvalidArgument.
func (ep *edgePlanner) bisect(a, b Configuration, feasible func(Configuration) (bool, error)) (bool, error) {
	if ep.cs.Resolution <= 0 {
		return false, newInvalidArgument("edge resolution must be positive, got %g", ep.cs.Resolution)
	}
	dist, err := ep.cs.Distance(a, b)
	if err != nil {
		return false, err
	}
	if dist <= ep.cs.Resolution {
		return true, nil
	}
	mid, err := ep.cs.Interpolate(a, b, 0.5)
	if err != nil {
		return false, err
	}
	ok, err := feasible(mid)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	ok, err = ep.bisect(a, mid, feasible)
	if err != nil || !ok {
		return ok, err
	}
	return ep.bisect(mid, b, feasible)
}
