//go:generate mockgen -source=contracts.go -destination=events_mocks_test.go -package=events_test

package events

import "context"

// Invalidator drops cached entries by key prefix.
type Invalidator interface {
	Invalidate(ctx context.Context, prefix string) error
}
