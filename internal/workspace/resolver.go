package workspace

import (
	"context"

	"github.com/timvw/tmw/internal/model"
	"github.com/timvw/tmw/internal/mux"
)

// Resolver finds live sessions by name.
//
// It lists every session and filters in Go rather than handing the name to
// tmux's -f filter syntax, so names never need quoting for tmux's format
// language.
type Resolver struct {
	Mux mux.Multiplexer
}

// FindSession returns the first live session whose name equals name, or
// nil when there is none. A failed listing is returned as an error.
func (r *Resolver) FindSession(ctx context.Context, name string) (*model.Session, error) {
	sessions, err := r.Mux.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s.Name == name {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}
