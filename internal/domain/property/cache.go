package property

import "time"

// Cache sits in front of the directory's hot read path (availability
// checks during admission). Mutating operations in other domains go
// straight to the repository and invalidate by ID.
type Cache interface {
	Get(propertyID string) (*Property, bool)
	Set(propertyID string, p *Property, ttl time.Duration)
	Delete(propertyID string)
}

type noopCache struct{}

func (noopCache) Get(string) (*Property, bool)         { return nil, false }
func (noopCache) Set(string, *Property, time.Duration) {}
func (noopCache) Delete(string)                        {}
