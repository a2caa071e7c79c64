package service

import "context"

// ProfileCache drops cached copies of a profile after it changes.
type ProfileCache interface {
	Evict(ctx context.Context, profileID string) error
}
