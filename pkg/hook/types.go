package hook

// Stage is a point in the fetch/export pipeline where hooks run.
type Stage string

// Supported pipeline stages.
const (
	PreFetch   Stage = "pre-fetch"
	PostFetch  Stage = "post-fetch"
	PreExport  Stage = "pre-export"
	PostExport Stage = "post-export"
)

// Stages lists every stage in pipeline order.
func Stages() []Stage {
	return []Stage{PreFetch, PostFetch, PreExport, PostExport}
}

// IsValid reports whether s names a known stage.
func (s Stage) IsValid() bool {
	switch s {
	case PreFetch, PostFetch, PreExport, PostExport:
		return true
	}
	return false
}

// Hook is one script with its manifest id.
type Hook struct {
	ID      string
	Content string
}

// Context carries pipeline state into hook scripts.
type Context struct {
	DeviceCount int
	ReportDir   string
	DumpPath    string
	Vars        map[string]interface{}
}

// Executor runs hook scripts.
type Executor interface {
	// Execute runs the script registered under id, if any.
	Execute(id string, stage Stage, args []string, ctx Context) error

	// AddHook registers a script.
	AddHook(hook Hook) error

	// RemoveHook unregisters the script with the given id.
	RemoveHook(id string) error

	// HasHook reports whether a script is registered under id.
	HasHook(id string) bool
}
