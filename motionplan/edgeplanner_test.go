package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func gapCSpace() *CSpace {
	cs := NewCSpace(func() (Configuration, error) { return Configuration{0.5}, nil }, nil)
	cs.Resolution = 0.01
	cs.SetFeasibility("gap", func(q Configuration) (bool, error) {
		return q[0] < 0.4 || q[0] > 0.6, nil
	})
	return cs
}

func TestEdgePlannerBisectionFallsBackToFeasibility(t *testing.T) {
	cs := gapCSpace()
	ep := newEdgePlanner(cs, -1)

	visible, err := ep.IsVisible(Configuration{0.0}, Configuration{1.0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, visible, test.ShouldBeFalse)

	visible, err = ep.IsVisible(Configuration{0.1}, Configuration{0.3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, visible, test.ShouldBeTrue)
}

func TestEdgePlannerUsesRegisteredVisibilityPredicate(t *testing.T) {
	cs := NewCSpace(func() (Configuration, error) { return Configuration{0}, nil }, nil)
	var seenA, seenB Configuration
	cs.SetVisibility("straight", func(a, b Configuration) (bool, error) {
		seenA, seenB = a, b
		return a[0] <= b[0], nil
	})

	visible, err := cs.IsVisible(Configuration{1}, Configuration{2})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, visible, test.ShouldBeTrue)
	test.That(t, seenA, test.ShouldResemble, Configuration{1})
	test.That(t, seenB, test.ShouldResemble, Configuration{2})

	visible, err = cs.IsVisible(Configuration{2}, Configuration{1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, visible, test.ShouldBeFalse)
}

// TestEdgePlannerSingleConstraintPassesDistinctEndpoints guards against the
// handle-clobbering bug where both recursive legs of a bisection could be
// passed the same (a,b) pair instead of (a,mid) and (mid,b): a midpoint
// rejection near the quarter mark must be caught even though neither
// endpoint itself is rejected.
func TestEdgePlannerSingleConstraintPassesDistinctEndpoints(t *testing.T) {
	cs := NewCSpace(func() (Configuration, error) { return Configuration{0}, nil }, nil)
	cs.Resolution = 0.01
	cs.SetFeasibility("notNearQuarter", func(q Configuration) (bool, error) {
		return q[0] < 0.24 || q[0] > 0.26, nil
	})
	idx, _ := cs.constraints.lookup("notNearQuarter")
	ep := newEdgePlanner(cs, idx)

	visible, err := ep.IsVisible(Configuration{0.0}, Configuration{1.0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, visible, test.ShouldBeFalse)

	visible, err = ep.IsVisible(Configuration{0.0}, Configuration{0.1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, visible, test.ShouldBeTrue)
}

func TestIsVisibleConstraintMissingPredicateIsFatal(t *testing.T) {
	cs := NewCSpace(func() (Configuration, error) { return Configuration{0}, nil }, nil)
	cs.constraints.indexOf("phantom")

	_, err := cs.IsVisibleConstraint(Configuration{0}, Configuration{1}, "phantom")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errorKindOf(err), test.ShouldEqual, MissingPredicate)
}

func TestIsVisibleConstraintUnknownNameIsFatal(t *testing.T) {
	cs := NewCSpace(func() (Configuration, error) { return Configuration{0}, nil }, nil)
	_, err := cs.IsVisibleConstraint(Configuration{0}, Configuration{1}, "nope")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errorKindOf(err), test.ShouldEqual, UnknownConstraint)
}
