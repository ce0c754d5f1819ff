package attendance

import (
	"context"

	"daycare/internal/child"
	"daycare/internal/user"
)

// UnknownName labels a subject that no longer exists.
const UnknownName = "Unknown"

// Subject is what a Directory knows about an id referenced by an entry.
type Subject struct {
	ID   int64
	Name string
	Role string
}

// Directory resolves subject ids for one variant.
type Directory interface {
	// Lookup returns the subjects that exist among ids, keyed by id.
	Lookup(ctx context.Context, ids []int64) (map[int64]Subject, error)
}

type userDirectory struct {
	repo user.Repository
}

// Users is the directory of staff attendance subjects.
func Users(repo user.Repository) Directory {
	return userDirectory{repo: repo}
}

func (d userDirectory) Lookup(ctx context.Context, ids []int64) (map[int64]Subject, error) {
	found, err := d.repo.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]Subject, len(found))
	for id, u := range found {
		out[id] = Subject{ID: id, Name: u.Name, Role: string(u.Role)}
	}
	return out, nil
}

type childDirectory struct {
	repo child.Repository
}

// Children is the directory of child attendance subjects.
func Children(repo child.Repository) Directory {
	return childDirectory{repo: repo}
}

func (d childDirectory) Lookup(ctx context.Context, ids []int64) (map[int64]Subject, error) {
	found, err := d.repo.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]Subject, len(found))
	for id, p := range found {
		out[id] = Subject{ID: id, Name: p.Name}
	}
	return out, nil
}
