// Package cache is the explicit query cache shared by the read paths.
// Entries are keyed by resource name plus parameters and are dropped by
// prefix after every mutation.
package cache

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Store caches JSON-encodable query results.
type Store interface {
	// Get decodes the cached value into dst. It reports false on a miss.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Invalidate drops every key starting with prefix.
	Invalidate(ctx context.Context, prefix string) error
}

// Resource names used in keys.
const (
	ResourceOrders   = "orders"
	ResourceInfo     = "info"
	ResourceCouriers = "couriers"
)

// Key builds "resource:k1=v1;k2=v2;" with parameters sorted by name. Every
// pair is terminated so that "id=1;" never prefixes "id=12;".
// Params are given as alternating name/value pairs; a trailing name without
// a value is ignored.
func Key(resource string, params ...string) string {
	type kv struct{ k, v string }
	pairs := make([]kv, 0, len(params)/2)
	for i := 0; i+1 < len(params); i += 2 {
		pairs = append(pairs, kv{params[i], params[i+1]})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	var b strings.Builder
	b.WriteString(resource)
	b.WriteByte(':')
	for _, p := range pairs {
		b.WriteString(p.k)
		b.WriteByte('=')
		b.WriteString(p.v)
		b.WriteByte(';')
	}
	return b.String()
}

// Prefix returns the invalidation prefix for a resource, optionally narrowed
// to one parameter. The parameter must sort first among the key's parameters.
func Prefix(resource string, params ...string) string {
	if len(params) < 2 {
		return resource + ":"
	}
	return Key(resource, params[0], params[1])
}
