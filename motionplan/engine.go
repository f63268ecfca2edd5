package motionplan

import (
	"math/rand"

	"go.uber.org/zap"
)

// Engine reifies the original's module-level globals (spaces/plans/
// goalSets and destroy(), motionplanning.cpp lines 832-836, 1579-1584) as
// an explicit Go value rather than package state, per §4.H/§6. It owns the
// three registries plus the shared PRNG that newly-created factories draw
// from.
type Engine struct {
	Logger *zap.Logger

	CSpaces  *Table[*CSpace]
	GoalSets *Table[*GoalSet]
	Planners *Table[Planner]

	rnd *rand.Rand
}

// NewEngine constructs an Engine with empty registries and a default-seeded
// PRNG.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		Logger:   nopIfNil(logger),
		CSpaces:  NewTable[*CSpace](),
		GoalSets: NewTable[*GoalSet](),
		Planners: NewTable[Planner](),
		rnd:      rand.New(rand.NewSource(1)),
	}
}

// DefaultEngine is a package-level Engine for callers that want the
// original's global-singleton ergonomics (setRandomSeed/destroy acting on
// one shared instance) rather than threading an *Engine explicitly.
var DefaultEngine = NewEngine(nil)

// SetRandomSeed seeds the engine's PRNG deterministically, matching the
// original's process-global Math::Srand (§6). Planners/factories created
// after this call draw from the reseeded source; planners already under
// construction are unaffected.
func (e *Engine) SetRandomSeed(seed int64) {
	e.rnd = rand.New(rand.NewSource(seed))
}

// NewPlannerFactory constructs a factory bound to this engine's PRNG and
// logger.
func (e *Engine) NewPlannerFactory() *PlannerFactory {
	return NewPlannerFactory(e.Logger, e.rnd)
}

// NewCSpace constructs a C-space bound to this engine's logger and
// registers it, returning its handle.
func (e *Engine) NewCSpace(sampler SampleFunc) (int, *CSpace) {
	cs := NewCSpace(sampler, e.Logger)
	return e.CSpaces.Add(cs), cs
}

// Destroy frees all three registries, matching the original's destroy()
// (motionplanning.cpp lines 1579-1584).
func (e *Engine) Destroy() {
	e.CSpaces = NewTable[*CSpace]()
	e.GoalSets = NewTable[*GoalSet]()
	e.Planners = NewTable[Planner]()
}
