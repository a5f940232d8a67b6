package paging

// State represents where a search session is in its lifecycle.
type State int

// Set of states a session moves through. Idle is the neutral display.
const (
	Idle State = iota
	Searching
	Found
	NotFound
	Invalid
)

var stateNames = [...]string{"idle", "searching", "found", "not_found", "invalid"}

// String implements the fmt.Stringer interface.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
