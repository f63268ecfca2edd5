package motionplan

// TesterStats is an online estimator of a constraint's expected test cost
// and pass-probability, updated from weighted observations as the planner
// runs. Grounded on the original engine's TesterStats struct
// (motionplanning.cpp lines 154-184): a zero TesterStats starts at
// cost=0, probability=0, count=0, matching its default constructor.
type TesterStats struct {
	// Cost is the running expected wall-clock cost of evaluating the test.
	Cost float64
	// Probability is the running expected pass rate of the test.
	Probability float64
	// Count is the accumulated evidence weight behind Cost and Probability.
	Count float64
}

// Reset overwrites all three fields, seeding a Bayesian prior rather than
// blending it with whatever evidence has already been accumulated.
func (s *TesterStats) Reset(cost, probability, count float64) {
	s.Cost = cost
	s.Probability = probability
	s.Count = count
}

// Update folds one new observation into the running weighted mean. The
// blend divisor is Count+strength, taken as 1 only when that sum is exactly
// zero; any other sum, negative included, is used as is, and Count always
// grows by strength. This is a zero-count guard, not a general clamp.
func (s *TesterStats) Update(observedCost float64, passed bool, strength float64) {
	newCount := s.Count + strength
	if newCount == 0 {
		newCount = 1
	}
	oldWeight := s.Count / newCount
	newWeight := 1.0 - oldWeight

	s.Cost = oldWeight*s.Cost + newWeight*observedCost
	if passed {
		s.Probability = oldWeight*s.Probability + newWeight
	} else {
		s.Probability = oldWeight * s.Probability
	}
	s.Count += strength
}
