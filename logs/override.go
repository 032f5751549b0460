package logs

// LevelOverrides maps event source names to the minimum initial level a span
// from that source must carry to be materialized at all. Gating happens before
// a span object exists, a gated-out span produces no record and no dispatch.
//
// The table is immutable after construction and safe for concurrent reads.
type LevelOverrides struct {
	defaultLevel Level
	bySource     map[string]Level
}

// NewOverrides returns a table which gates every source at defaultLevel.
func NewOverrides(defaultLevel Level) *LevelOverrides {
	return &LevelOverrides{
		defaultLevel: defaultLevel,
		bySource:     make(map[string]Level),
	}
}

// WithSource returns a copy of the table with the minimum initial level for
// source overridden.
func (o *LevelOverrides) WithSource(source string, min Level) *LevelOverrides {
	bySource := make(map[string]Level, len(o.bySource)+1)
	for k, v := range o.bySource {
		bySource[k] = v
	}
	bySource[source] = min

	return &LevelOverrides{
		defaultLevel: o.defaultLevel,
		bySource:     bySource,
	}
}

// GateLevel returns the severity threshold for source.
func (o *LevelOverrides) GateLevel(source string) Level {
	if o == nil {
		return TRACE
	}
	if lvl, has := o.bySource[source]; has {
		return lvl
	}

	return o.defaultLevel
}

// Admit reports whether a span requested at lvl from source passes the gate.
func (o *LevelOverrides) Admit(source string, lvl Level) bool {
	return lvl >= o.GateLevel(source)
}

// Elevate resolves the effective status level of a completed span. Elevation
// is monotonic: a span admitted at initial never completes below it, a severe
// outcome must not silently vanish from a trace recorded at a lower bar.
func Elevate(initial, completion Level) Level {
	return Max(initial, completion)
}
