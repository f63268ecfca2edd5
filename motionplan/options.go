package motionplan

import (
	json "github.com/goccy/go-json"
	"go.uber.org/multierr"
)

// PlannerOptions is the factory settings record of §4.F: planner type plus
// tuning knobs, JSON-tagged so it round-trips through LoadJSON/SaveJSON.
// Grounded on the teacher's plannerOptions.go JSON-tagged struct shape,
// generalized from IK/obstacle-specific fields to the abstract knob table
// the original's MotionPlannerFactory exposes via setPlanSetting
// (motionplanning.cpp lines 1297-1340).
type PlannerOptions struct {
	Type                      string  `json:"type"`
	KNN                       int     `json:"knn"`
	ConnectionThreshold       float64 `json:"connectionThreshold"`
	PerturbationRadius        float64 `json:"perturbationRadius"`
	Bidirectional             bool    `json:"bidirectional"`
	UseGrid                   bool    `json:"useGrid"`
	GridResolution            float64 `json:"gridResolution"`
	SuboptimalityFactor       float64 `json:"suboptimalityFactor"`
	IgnoreConnectedComponents bool    `json:"ignoreConnectedComponents"`
	RandomizeFrequency        int     `json:"randomizeFrequency"`
	Shortcut                  bool    `json:"shortcut"`
	Restart                   bool    `json:"restart"`
	PointLocation             string  `json:"pointLocation"`
	RestartTermCond           string  `json:"restartTermCond"`
}

// newDefaultPlannerOptions mirrors the teacher's newBasicPlannerOptions: a
// conservative, generally-applicable default for every field.
func newDefaultPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		Type:                "rrt",
		KNN:                 10,
		ConnectionThreshold: 1.0,
		PerturbationRadius:  0.1,
		GridResolution:      0.1,
		RandomizeFrequency:  100,
		PointLocation:       "kdtree",
	}
}

// SetNumeric is the typed-set operation for numeric (including boolean,
// following the original's double-valued setPlanSetting overload where
// nonzero means true) fields, the Go realization of the original's
// overloaded setPlanSetting(name, double).
func (o *PlannerOptions) SetNumeric(name string, value float64) error {
	switch name {
	case "knn":
		o.KNN = int(value)
	case "connectionThreshold":
		o.ConnectionThreshold = value
	case "perturbationRadius":
		o.PerturbationRadius = value
	case "gridResolution":
		o.GridResolution = value
	case "suboptimalityFactor":
		o.SuboptimalityFactor = value
	case "randomizeFrequency":
		o.RandomizeFrequency = int(value)
	case "bidirectional":
		o.Bidirectional = value != 0
	case "useGrid":
		o.UseGrid = value != 0
	case "ignoreConnectedComponents":
		o.IgnoreConnectedComponents = value != 0
	case "shortcut":
		o.Shortcut = value != 0
	case "restart":
		o.Restart = value != 0
	default:
		return newInvalidArgument("unknown numeric setting %q", name)
	}
	return nil
}

// SetString is the typed-set operation for string-valued fields, the Go
// realization of the original's overloaded setPlanSetting(name, const
// char*).
func (o *PlannerOptions) SetString(name, value string) error {
	switch name {
	case "type":
		o.Type = value
	case "pointLocation":
		o.PointLocation = value
	case "restartTermCond":
		o.RestartTermCond = value
	default:
		return newInvalidArgument("unknown string setting %q", name)
	}
	return nil
}

var plannerOptionsFields = map[string]struct{}{
	"type": {}, "knn": {}, "connectionThreshold": {}, "perturbationRadius": {},
	"bidirectional": {}, "useGrid": {}, "gridResolution": {}, "suboptimalityFactor": {},
	"ignoreConnectedComponents": {}, "randomizeFrequency": {}, "shortcut": {},
	"restart": {}, "pointLocation": {}, "restartTermCond": {},
}

// LoadJSON decodes settings from data, rejecting any key not in §4.F's
// table. goccy/go-json's Unmarshal has no DisallowUnknownFields option, so
// the unknown-key check is a hand-rolled pass over the raw object keys
// before delegating the real decode to the library.
func (o *PlannerOptions) LoadJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return newInvalidArgument("malformed settings JSON: %v", err)
	}
	var unknown error
	for key := range raw {
		if _, ok := plannerOptionsFields[key]; !ok {
			unknown = multierr.Append(unknown, newInvalidArgument("unknown settings key %q", key))
		}
	}
	if unknown != nil {
		return unknown
	}
	var decoded PlannerOptions
	if err := json.Unmarshal(data, &decoded); err != nil {
		return newInvalidArgument("malformed settings JSON: %v", err)
	}
	*o = decoded
	return nil
}

// SaveJSON encodes the full settings record.
func (o *PlannerOptions) SaveJSON() ([]byte, error) {
	return json.Marshal(o)
}
