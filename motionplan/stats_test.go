package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func TestTesterStatsUpdate(t *testing.T) {
	t.Run("fresh stats start at zero", func(t *testing.T) {
		var s TesterStats
		test.That(t, s.Cost, test.ShouldEqual, 0.0)
		test.That(t, s.Probability, test.ShouldEqual, 0.0)
		test.That(t, s.Count, test.ShouldEqual, 0.0)
	})

	t.Run("first update fully adopts the observation", func(t *testing.T) {
		var s TesterStats
		s.Update(2.0, true, 1)
		test.That(t, s.Cost, test.ShouldEqual, 2.0)
		test.That(t, s.Probability, test.ShouldEqual, 1.0)
		test.That(t, s.Count, test.ShouldEqual, 1.0)
	})

	t.Run("probability and cost stay bounded after many updates", func(t *testing.T) {
		var s TesterStats
		for i := 0; i < 50; i++ {
			s.Update(float64(i%3), i%4 != 0, 1)
			test.That(t, s.Probability, test.ShouldBeGreaterThanOrEqualTo, 0.0)
			test.That(t, s.Probability, test.ShouldBeLessThanOrEqualTo, 1.0)
			test.That(t, s.Cost, test.ShouldBeGreaterThanOrEqualTo, 0.0)
		}
	})

	t.Run("reset overwrites rather than blends", func(t *testing.T) {
		var s TesterStats
		s.Update(5.0, false, 3)
		s.Reset(1.0, 0.5, 10)
		test.That(t, s.Cost, test.ShouldEqual, 1.0)
		test.That(t, s.Probability, test.ShouldEqual, 0.5)
		test.That(t, s.Count, test.ShouldEqual, 10.0)
	})
}
