package motionplan

import (
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func box2DSampler(rnd *rand.Rand) SampleFunc {
	return func() (Configuration, error) {
		return Configuration{rnd.Float64(), rnd.Float64()}, nil
	}
}

// TestSetEndpointsInfeasibleStart is scenario S3.
func TestSetEndpointsInfeasibleStart(t *testing.T) {
	cs := NewCSpace(func() (Configuration, error) { return Configuration{0}, nil }, nil)
	cs.SetFeasibility("positive_x", func(q Configuration) (bool, error) {
		return q[0] > 0, nil
	})

	factory := NewPlannerFactory(nil, rand.New(rand.NewSource(1)))
	planner, err := factory.Create(cs)
	test.That(t, err, test.ShouldBeNil)

	err = planner.SetEndpoints(Configuration{-1}, Configuration{1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errorKindOf(err), test.ShouldEqual, InfeasibleEndpoint)
	test.That(t, planner.NumMilestones(), test.ShouldEqual, 0)
}

func errorKindOf(err error) ErrorKind {
	pe, ok := err.(*PlanningError)
	if !ok {
		return -1
	}
	return pe.Kind
}

// TestVisibilityBisection is scenario S4.
func TestVisibilityBisection(t *testing.T) {
	cs := NewCSpace(func() (Configuration, error) { return Configuration{0.5}, nil }, nil)
	cs.Resolution = 0.01
	cs.SetFeasibility("gap", func(q Configuration) (bool, error) {
		return q[0] < 0.4 || q[0] > 0.6, nil
	})

	visible, err := cs.IsVisible(Configuration{0.0}, Configuration{1.0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, visible, test.ShouldBeFalse)

	visible, err = cs.IsVisible(Configuration{0.0}, Configuration{0.3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, visible, test.ShouldBeTrue)
}

// TestAdaptiveReorderPromotesCheapRejector is scenario S6.
func TestAdaptiveReorderPromotesCheapRejector(t *testing.T) {
	cs := NewCSpace(func() (Configuration, error) { return Configuration{0}, nil }, nil)
	cs.EnableAdaptiveQueries(true)

	cs.SetFeasibility("B_expensive_always_passes", func(q Configuration) (bool, error) {
		return true, nil
	})
	cs.SetFeasibility("A_cheap_rejects_90pct", func(q Configuration) (bool, error) {
		return q[0] > 0.9, nil
	})

	// Seed priors directly rather than relying on timed observations, which
	// are too noisy for a deterministic unit test: A is cheap with a low
	// pass probability, B is expensive with a high one.
	test.That(t, cs.SetFeasibilityPrior("A_cheap_rejects_90pct", 0.01, 0.1, 100), test.ShouldBeNil)
	test.That(t, cs.SetFeasibilityPrior("B_expensive_always_passes", 1.0, 1.0, 100), test.ShouldBeNil)

	cs.OptimizeQueryOrder()
	order := cs.FeasibilityQueryOrder()
	test.That(t, order, test.ShouldHaveLength, 2)
	test.That(t, order[0], test.ShouldEqual, "A_cheap_rejects_90pct")
}

func TestFeasibilityFailuresListsAllRejectors(t *testing.T) {
	cs := NewCSpace(func() (Configuration, error) { return Configuration{0}, nil }, nil)
	cs.SetFeasibility("positive", func(q Configuration) (bool, error) { return q[0] > 0, nil })
	cs.SetFeasibility("even", func(q Configuration) (bool, error) { return int(q[0])%2 == 0, nil })

	failures, err := cs.FeasibilityFailures(Configuration{-3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, failures, test.ShouldContain, "positive")
	test.That(t, failures, test.ShouldContain, "even")
}

func TestDefaultDistanceAndInterpolate(t *testing.T) {
	cs := NewCSpace(func() (Configuration, error) { return Configuration{0, 0}, nil }, nil)
	d, err := cs.Distance(Configuration{0, 0}, Configuration{3, 4})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldEqual, 5.0)

	start, err := cs.Interpolate(Configuration{0, 0}, Configuration{10, 10}, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, start, test.ShouldResemble, Configuration{0, 0})

	end, err := cs.Interpolate(Configuration{0, 0}, Configuration{10, 10}, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, end, test.ShouldResemble, Configuration{10, 10})
}
