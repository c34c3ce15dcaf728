package ui

// AppMode represents the top-level application mode.
type AppMode int

const (
	ModeDashboard AppMode = iota
	ModeResourceList
	ModeResourceCreate
)

func (m AppMode) String() string {
	switch m {
	case ModeDashboard:
		return "Dashboard"
	case ModeResourceList:
		return "ResourceList"
	case ModeResourceCreate:
		return "ResourceCreate"
	default:
		return "Unknown"
	}
}
