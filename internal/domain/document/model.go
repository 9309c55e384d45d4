// Package document exposes the ownership check the admission controller
// needs. Storage and retrieval of the files themselves live in a
// separate system; only the ownership index is mirrored here.
package document

import "time"

type Document struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	OwnerID   string    `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
