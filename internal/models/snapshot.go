package models

import "time"

// IntegrityVersion is the current snapshot schema tag. Snapshots carrying a
// different version still load; the validator surfaces the drift as a warning.
const IntegrityVersion = 3

// DataStats is the derived aggregate over one profile's record arrays.
// Always recomputed from the arrays, never hand-edited, so two stats values
// can be compared structurally.
type DataStats struct {
	CollectionCards int `json:"collectionCards"`
	TotalQuantity   int `json:"totalQuantity"`
	UniqueCardIDs   int `json:"uniqueCardIds"`
	WishlistCards   int `json:"wishlistCards"`
	Achievements    int `json:"achievements"`
}

// IsZero reports whether every counter is zero.
func (s DataStats) IsZero() bool {
	return s == DataStats{}
}

// DataSnapshot is the full exportable state for one profile. Written whole
// at a sync checkpoint and superseded by the next one, never patched in place.
type DataSnapshot struct {
	Version      int                       `json:"version"`
	CreatedAt    int64                     `json:"createdAt"` // unix milliseconds
	Checksum     int64                     `json:"checksum"`
	Collection   []PersistenceCard         `json:"collection"`
	Wishlist     []PersistenceWishlistCard `json:"wishlist"`
	Achievements []PersistenceAchievement  `json:"achievements"`
	Stats        DataStats                 `json:"stats"`
}

// LocalChecksum is the lightweight per-profile record stored next to the full
// snapshot; cheap to read when only a comparison is needed.
type LocalChecksum struct {
	Checksum int64     `json:"checksum"`
	Stats    DataStats `json:"stats"`
	SavedAt  time.Time `json:"savedAt"`
}

// ChecksumResult is the outcome of a full checksum computation.
type ChecksumResult struct {
	Checksum   int64     `json:"checksum"`
	Stats      DataStats `json:"stats"`
	ComputedAt time.Time `json:"computedAt"`
}
