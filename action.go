package fixtree

import "fmt"

// Action is the create/retrieve policy applied to a named file entry.
type Action int

const (
	// GetOrCreate creates the file if absent, otherwise retrieves it.
	GetOrCreate Action = iota
	// Create requires that the file does not exist yet.
	Create
	// Get requires that the file already exists.
	Get
)

func (a Action) String() string {
	switch a {
	case GetOrCreate:
		return "get_or_create"
	case Create:
		return "create"
	case Get:
		return "get"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

type entryOutcome int

const (
	entryCreate entryOutcome = iota
	entryRetrieve
)

// resolveEntry decides whether a declaration starts from a fresh empty file
// or from the existing one. The table is exhaustive:
//
//	Create      + absent  -> create
//	Create      + present -> ErrConflict
//	Get         + present -> retrieve
//	Get         + absent  -> ErrMissingTarget
//	GetOrCreate + absent  -> create
//	GetOrCreate + present -> retrieve
func resolveEntry(present bool, action Action) (entryOutcome, error) {
	switch action {
	case Create:
		if present {
			return 0, ErrConflict
		}
		return entryCreate, nil
	case Get:
		if !present {
			return 0, ErrMissingTarget
		}
		return entryRetrieve, nil
	case GetOrCreate:
		if present {
			return entryRetrieve, nil
		}
		return entryCreate, nil
	default:
		return 0, fmt.Errorf("unknown action %v", action)
	}
}
