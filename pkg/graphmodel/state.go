package graphmodel

// State is the display state shared by nodes and edges.
type State int

const (
	StateDefault State = iota
	StateOnPath
	StateEndpoint // source or sink
)

func (s State) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateOnPath:
		return "on-path"
	case StateEndpoint:
		return "endpoint"
	}
	return "unknown"
}
