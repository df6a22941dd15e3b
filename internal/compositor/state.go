package compositor

// State is the compositor's position in an export.
type State int

const (
	StateIdle State = iota
	StateMeasuring
	StateStretched
	StateExporting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMeasuring:
		return "measuring"
	case StateStretched:
		return "stretched"
	case StateExporting:
		return "exporting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}
