// Package access decides whether a chat caller may use the console.
package access

import "github.com/devantler-tech/tgops/pkg/apis/ops"

// Guard is an immutable allowlist of caller identities.
// It is safe for concurrent use.
type Guard struct {
	allowed map[ops.Identity]struct{}
}

// NewGuard creates a Guard admitting exactly the given identities.
func NewGuard(identities []ops.Identity) *Guard {
	allowed := make(map[ops.Identity]struct{}, len(identities))
	for _, id := range identities {
		allowed[id] = struct{}{}
	}

	return &Guard{allowed: allowed}
}

// IsAuthorized reports whether id is in the allowlist.
func (g *Guard) IsAuthorized(id ops.Identity) bool {
	if g == nil {
		return false
	}

	_, ok := g.allowed[id]

	return ok
}

// Size returns the number of distinct allowed identities.
func (g *Guard) Size() int {
	if g == nil {
		return 0
	}

	return len(g.allowed)
}
