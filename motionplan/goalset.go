package motionplan

// GoalSetSampleFunc draws a configuration believed to lie in the goal set.
type GoalSetSampleFunc func() (Configuration, error)

// GoalTestFunc reports whether a configuration is a member of the goal set.
type GoalTestFunc func(q Configuration) (bool, error)

// GoalSet wraps a base CSpace with a goal-membership predicate and an
// optional goal sampler, so a planner can target a region of C-space rather
// than a single point. Grounded on PyGoalSet (motionplanning.cpp lines
// 775-825).
type GoalSet struct {
	Base   *CSpace
	Test   GoalTestFunc
	Sample GoalSetSampleFunc
}

// NewGoalSet constructs a GoalSet over base with the given membership test.
// sample may be nil, in which case SampleGoal falls back to base rejection
// sampling (drawing from Base and discarding members that fail Test).
func NewGoalSet(base *CSpace, test GoalTestFunc, sample GoalSetSampleFunc) *GoalSet {
	return &GoalSet{Base: base, Test: test, Sample: sample}
}

// SampleGoal draws a configuration from the goal sampler if one was
// supplied, otherwise falls back to rejection sampling against the base
// C-space, trying at most maxAttempts times.
func (g *GoalSet) SampleGoal(maxAttempts int) (Configuration, error) {
	if g.Sample != nil {
		q, err := g.Sample()
		if err != nil {
			return nil, wrapCallbackError(err, "goal_sample")
		}
		return q, nil
	}
	for i := 0; i < maxAttempts; i++ {
		q, err := g.Base.Sample()
		if err != nil {
			return nil, err
		}
		ok, err := g.IsGoal(q)
		if err != nil {
			return nil, err
		}
		if ok {
			return q, nil
		}
	}
	return nil, newInvalidArgument("goal set rejection sampling exhausted %d attempts", maxAttempts)
}

// IsGoal reports goal-set membership alone (the goal_test predicate), not
// combined with base feasibility.
func (g *GoalSet) IsGoal(q Configuration) (bool, error) {
	ok, err := g.Test(q)
	if err != nil {
		return false, wrapCallbackError(err, "goal_test")
	}
	return ok, nil
}

// IsFeasible is the AND of the base C-space's feasibility and goal-set
// membership (§4.E).
func (g *GoalSet) IsFeasible(q Configuration) (bool, error) {
	ok, err := g.Base.IsFeasible(q)
	if err != nil || !ok {
		return false, err
	}
	return g.IsGoal(q)
}
