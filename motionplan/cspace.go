package motionplan

import (
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// SampleFunc draws a configuration from the C-space at large.
type SampleFunc func() (Configuration, error)

// SampleNeighborhoodFunc draws a configuration within radius of center.
type SampleNeighborhoodFunc func(center Configuration, radius float64) (Configuration, error)

// DistanceFunc measures the C-space distance between two configurations.
type DistanceFunc func(a, b Configuration) (float64, error)

// InterpolateFunc returns the configuration a fraction u of the way from a
// to b, u ∈ [0,1].
type InterpolateFunc func(a, b Configuration, u float64) (Configuration, error)

// CSpace is the host-defined configuration space: its callbacks, its named
// constraint set, and the adaptive scheduler's live state. Grounded on
// PyCSpace (motionplanning.cpp lines 315-630).
type CSpace struct {
	Sampler             SampleFunc
	NeighborhoodSampler SampleNeighborhoodFunc
	DistanceFn          DistanceFunc
	InterpolateFn       InterpolateFunc

	// Resolution is the edge planner's bisection epsilon ε.
	Resolution float64

	properties map[string]string
	constraints *constraintSet
	adaptive    bool
	logger      *zap.Logger
}

// NewCSpace constructs an empty C-space around the mandatory sample
// callback. Distance and Interpolate default to Euclidean/linear fallbacks
// (§4.C) when left nil; a nil neighborhood sampler falls back to the base
// sampler.
func NewCSpace(sampler SampleFunc, logger *zap.Logger) *CSpace {
	return &CSpace{
		Sampler:     sampler,
		Resolution:  0.01,
		properties:  make(map[string]string),
		constraints: newConstraintSet(),
		logger:      nopIfNil(logger),
	}
}

// Sample draws a configuration from the sampler callback.
func (cs *CSpace) Sample() (Configuration, error) {
	q, err := cs.Sampler()
	if err != nil {
		return nil, wrapCallbackError(err, "sample")
	}
	return q, nil
}

// SampleNeighborhood draws a configuration within radius of center, falling
// back to the base sampler (rejection-free; callers that need strict radius
// containment must supply NeighborhoodSampler) when none is registered.
func (cs *CSpace) SampleNeighborhood(center Configuration, radius float64) (Configuration, error) {
	if cs.NeighborhoodSampler != nil {
		q, err := cs.NeighborhoodSampler(center, radius)
		if err != nil {
			return nil, wrapCallbackError(err, "sample_neighborhood")
		}
		return q, nil
	}
	return cs.Sample()
}

// Distance returns the callback distance if registered, else the Euclidean
// norm of a−b (§4.C).
func (cs *CSpace) Distance(a, b Configuration) (float64, error) {
	if cs.DistanceFn != nil {
		d, err := cs.DistanceFn(a, b)
		if err != nil {
			return 0, wrapCallbackError(err, "distance")
		}
		return d, nil
	}
	return defaultDistance(a, b)
}

func defaultDistance(a, b Configuration) (float64, error) {
	if len(a) != len(b) {
		return 0, newInvalidArgument("distance: dimension mismatch (%d vs %d)", len(a), len(b))
	}
	diff := make([]float64, len(a))
	for i := range a {
		diff[i] = a[i] - b[i]
	}
	return floats.Norm(diff, 2), nil
}

// Interpolate returns the callback interpolation if registered, else
// componentwise linear interpolation (§4.C); Interpolate(x,y,0)=x and
// Interpolate(x,y,1)=y.
func (cs *CSpace) Interpolate(a, b Configuration, u float64) (Configuration, error) {
	if cs.InterpolateFn != nil {
		q, err := cs.InterpolateFn(a, b, u)
		if err != nil {
			return nil, wrapCallbackError(err, "interpolate")
		}
		return q, nil
	}
	return defaultInterpolate(a, b, u)
}

func defaultInterpolate(a, b Configuration, u float64) (Configuration, error) {
	if len(a) != len(b) {
		return nil, newInvalidArgument("interpolate: dimension mismatch (%d vs %d)", len(a), len(b))
	}
	out := make(Configuration, len(a))
	for i := range a {
		out[i] = a[i] + u*(b[i]-a[i])
	}
	return out, nil
}

// Properties returns the property map, seeded with default hints: a custom
// Distance callback clears the euclidean/metric hints it would otherwise
// carry, and a custom Interpolate clears the geodesic hint, per §4.C.
func (cs *CSpace) Properties() map[string]string {
	out := make(map[string]string, len(cs.properties)+3)
	for k, v := range cs.properties {
		out[k] = v
	}
	if cs.DistanceFn == nil {
		out["euclidean"] = "1"
		out["metric"] = "euclidean"
	}
	if cs.InterpolateFn == nil {
		out["geodesic"] = "1"
	}
	return out
}

// SetProperty stores a host-supplied property hint.
func (cs *CSpace) SetProperty(key, value string) {
	cs.properties[key] = value
}

// SetFeasibility registers (or overwrites) the feasibility predicate for a
// named constraint.
func (cs *CSpace) SetFeasibility(name string, fn FeasibilityFunc) {
	cs.constraints.setFeasibility(name, fn)
}

// SetVisibility registers (or overwrites) the visibility predicate for a
// named constraint.
func (cs *CSpace) SetVisibility(name string, fn VisibilityFunc) {
	cs.constraints.setVisibility(name, fn)
}

// AddFeasibleDependency records that prereq must be tested, and pass, before
// dependent is meaningfully tested in the feasibility order.
func (cs *CSpace) AddFeasibleDependency(dependent, prereq string) error {
	return cs.constraints.addFeasibleDependency(dependent, prereq)
}

// AddVisibleDependency is the visibility-DAG analogue of
// AddFeasibleDependency.
func (cs *CSpace) AddVisibleDependency(dependent, prereq string) error {
	return cs.constraints.addVisibleDependency(dependent, prereq)
}

// EnableAdaptiveQueries toggles online cost/probability learning and
// scheduler reordering.
func (cs *CSpace) EnableAdaptiveQueries(enabled bool) {
	cs.adaptive = enabled
}

// AdaptiveQueriesEnabled reports the live adaptive flag. The original
// (motionplanning.cpp lines 1167-1170) hard-codes this to false regardless
// of state; spec.md §9 calls that a bug and requires the live value.
func (cs *CSpace) AdaptiveQueriesEnabled() bool {
	return cs.adaptive
}

// SetFeasibilityPrior seeds a constraint's feasibility TesterStats without
// requiring any observations first.
func (cs *CSpace) SetFeasibilityPrior(name string, cost, probability, strength float64) error {
	idx, ok := cs.constraints.lookup(name)
	if !ok {
		return newUnknownConstraint(name)
	}
	cs.constraints.feasibleStats[idx].Reset(cost, probability, strength)
	return nil
}

// SetVisibilityPrior is the visibility analogue of SetFeasibilityPrior.
func (cs *CSpace) SetVisibilityPrior(name string, cost, probability, strength float64) error {
	idx, ok := cs.constraints.lookup(name)
	if !ok {
		return newUnknownConstraint(name)
	}
	cs.constraints.visibleStats[idx].Reset(cost, probability, strength)
	return nil
}

// IsFeasible evaluates every registered feasibility predicate against q, in
// the current feasibility order, short-circuiting on the first rejection.
func (cs *CSpace) IsFeasible(q Configuration) (bool, error) {
	for _, idx := range cs.constraints.feasibilityOrder() {
		ok, err := cs.testFeasibleAt(idx, q)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// IsFeasibleConstraint evaluates only the named constraint's feasibility
// predicate. A constraint registered without a feasibility slot is a fatal
// MissingPredicate, since the caller explicitly requested this kind of test
// on this name.
func (cs *CSpace) IsFeasibleConstraint(q Configuration, name string) (bool, error) {
	idx, ok := cs.constraints.lookup(name)
	if !ok {
		return false, newUnknownConstraint(name)
	}
	if cs.constraints.feasible[idx] == nil {
		return false, newMissingPredicate(name, "feasibility")
	}
	return cs.testFeasibleAt(idx, q)
}

func (cs *CSpace) testFeasibleAt(idx int, q Configuration) (bool, error) {
	fn := cs.constraints.feasible[idx]
	if fn == nil {
		return false, newMissingPredicate(cs.constraints.names[idx], "feasibility")
	}
	var start time.Time
	if cs.adaptive {
		start = time.Now()
	}
	ok, err := fn(q)
	if err != nil {
		return false, wrapCallbackError(err, "feasible(%s)", cs.constraints.names[idx])
	}
	if cs.adaptive {
		cs.constraints.feasibleStats[idx].Update(time.Since(start).Seconds(), ok, 1)
	}
	return ok, nil
}

// FeasibilityFailures returns the names of every registered feasibility
// constraint that rejects q, in feasibility order. Restored from the
// original's feasibilityFailures (motionplanning.cpp lines 1097-1110),
// dropped from spec.md's distillation.
func (cs *CSpace) FeasibilityFailures(q Configuration) ([]string, error) {
	var failed []string
	for _, idx := range cs.constraints.feasibilityOrder() {
		ok, err := cs.testFeasibleAt(idx, q)
		if err != nil {
			return nil, err
		}
		if !ok {
			failed = append(failed, cs.constraints.names[idx])
		}
	}
	return failed, nil
}

// IsVisible delegates to an EdgePlanner built for the full, aggregated
// constraint set (§4.D).
func (cs *CSpace) IsVisible(a, b Configuration) (bool, error) {
	ep := newEdgePlanner(cs, -1)
	return ep.IsVisible(a, b)
}

// IsVisibleConstraint delegates to an EdgePlanner scoped to a single named
// constraint.
func (cs *CSpace) IsVisibleConstraint(a, b Configuration, name string) (bool, error) {
	idx, ok := cs.constraints.lookup(name)
	if !ok {
		return false, newUnknownConstraint(name)
	}
	if cs.constraints.visible[idx] == nil && cs.constraints.feasible[idx] == nil {
		return false, newMissingPredicate(name, "visibility")
	}
	ep := newEdgePlanner(cs, idx)
	return ep.IsVisible(a, b)
}

// VisibilityFailures returns the names of every registered visibility
// constraint that rejects the segment (a,b), in visibility order. Restored
// from the original's visibilityFailures (motionplanning.cpp lines
// 1112-1125); per spec.md §9's Open Question, this iterates the
// *visibility* constraint list, not the feasibility one (the source's
// mismatched iteration bound is treated as a bug).
func (cs *CSpace) VisibilityFailures(a, b Configuration) ([]string, error) {
	var failed []string
	for _, idx := range cs.constraints.visibilityOrder() {
		ok, err := cs.testVisibleAt(idx, a, b)
		if err != nil {
			return nil, err
		}
		if !ok {
			failed = append(failed, cs.constraints.names[idx])
		}
	}
	return failed, nil
}

func (cs *CSpace) testVisibleAt(idx int, a, b Configuration) (bool, error) {
	fn := cs.constraints.visible[idx]
	if fn == nil {
		return false, newMissingPredicate(cs.constraints.names[idx], "visibility")
	}
	var start time.Time
	if cs.adaptive {
		start = time.Now()
	}
	ok, err := fn(a, b)
	if err != nil {
		return false, wrapCallbackError(err, "visible(%s)", cs.constraints.names[idx])
	}
	if cs.adaptive {
		cs.constraints.visibleStats[idx].Update(time.Since(start).Seconds(), ok, 1)
	}
	return ok, nil
}

// OptimizeQueryOrder re-derives the feasibility and visibility test orders
// from accumulated stats, when adaptive queries are enabled (§4.C).
func (cs *CSpace) OptimizeQueryOrder() {
	if !cs.adaptive {
		return
	}
	cs.constraints.feasibleOrder = OptimizeTestOrder(cs.constraints.feasibleStats, cs.constraints.feasibleDeps, cs.logger)
	cs.constraints.visibleOrder = OptimizeTestOrder(cs.constraints.visibleStats, cs.constraints.visibleDeps, cs.logger)
}

// FeasibilityQueryOrder returns the current feasibility test order as
// constraint names, in test order.
func (cs *CSpace) FeasibilityQueryOrder() []string {
	return cs.namesFor(cs.constraints.feasibilityOrder())
}

// VisibilityQueryOrder is the visibility analogue of FeasibilityQueryOrder.
func (cs *CSpace) VisibilityQueryOrder() []string {
	return cs.namesFor(cs.constraints.visibilityOrder())
}

func (cs *CSpace) namesFor(order []int) []string {
	names := make([]string, len(order))
	for i, idx := range order {
		names[i] = cs.constraints.names[idx]
	}
	return names
}
