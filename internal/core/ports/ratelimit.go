package ports

import "context"

// Limiter bounds request frequency per client origin. Allow reports whether
// the origin is still within its window budget, counting the call itself.
type Limiter interface {
	Allow(ctx context.Context, origin string) (bool, error)
}
