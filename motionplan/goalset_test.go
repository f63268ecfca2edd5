package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func TestGoalSetIsFeasibleRequiresBaseAndMembership(t *testing.T) {
	base := NewCSpace(func() (Configuration, error) { return Configuration{0}, nil }, nil)
	base.SetFeasibility("positive", func(q Configuration) (bool, error) { return q[0] > 0, nil })

	gs := NewGoalSet(base, func(q Configuration) (bool, error) { return q[0] > 10, nil }, nil)

	ok, err := gs.IsFeasible(Configuration{-1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse) // fails base feasibility

	ok, err = gs.IsFeasible(Configuration{5})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse) // base ok, not in goal set

	ok, err = gs.IsFeasible(Configuration{15})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestGoalSetSampleGoalUsesExplicitSampler(t *testing.T) {
	base := NewCSpace(func() (Configuration, error) { return Configuration{0}, nil }, nil)
	gs := NewGoalSet(base,
		func(q Configuration) (bool, error) { return true, nil },
		func() (Configuration, error) { return Configuration{42}, nil },
	)

	q, err := gs.SampleGoal(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q, test.ShouldResemble, Configuration{42})
}

func TestGoalSetSampleGoalRejectionSamplingFallback(t *testing.T) {
	calls := 0
	base := NewCSpace(func() (Configuration, error) {
		calls++
		return Configuration{float64(calls)}, nil
	}, nil)
	gs := NewGoalSet(base, func(q Configuration) (bool, error) { return q[0] >= 3, nil }, nil)

	q, err := gs.SampleGoal(10)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q, test.ShouldResemble, Configuration{3})
}

func TestGoalSetSampleGoalExhaustsAttempts(t *testing.T) {
	base := NewCSpace(func() (Configuration, error) { return Configuration{0}, nil }, nil)
	gs := NewGoalSet(base, func(q Configuration) (bool, error) { return false, nil }, nil)

	_, err := gs.SampleGoal(5)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errorKindOf(err), test.ShouldEqual, InvalidArgument)
}
