package model

// Workspace is a named working directory that maps onto one tmux session.
type Workspace struct {
	// Name is the display name and the tmux session name.
	Name string `json:"name" yaml:"name" toml:"name"`
	// Directory is the start directory for a newly created session.
	Directory string `json:"directory" yaml:"directory" toml:"directory"`
}

// Registry is the ordered set of configured workspaces.
// Declaration order is list order. Names are not required to be unique;
// Lookup returns the first match.
type Registry struct {
	Workspaces []Workspace `json:"workspaces"`
	// Namespace is the tmux socket name (-L). Empty selects the default server.
	Namespace string `json:"namespace,omitempty"`
}

// Lookup returns the first workspace with the given name.
func (r Registry) Lookup(name string) (Workspace, bool) {
	for _, ws := range r.Workspaces {
		if ws.Name == name {
			return ws, true
		}
	}
	return Workspace{}, false
}

// Names returns workspace names in declaration order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.Workspaces))
	for _, ws := range r.Workspaces {
		names = append(names, ws.Name)
	}
	return names
}

// Session is a live tmux session as reported by list-sessions.
// It is observed per call and never cached.
type Session struct {
	// ID is tmux's opaque session id (e.g., "$3").
	ID string `json:"id"`
	// Name is the session name.
	Name string `json:"name"`
}
