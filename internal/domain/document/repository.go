package document

import "context"

type Repository interface {
	// AllOwnedBy reports whether every referenced document belongs to
	// the given user. A missing document counts as not owned.
	AllOwnedBy(ctx context.Context, documentIDs []string, userID string) (bool, error)
}
