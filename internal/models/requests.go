package models

// SnapshotRequest is the POST / payload: one profile's full record arrays,
// sent by the host application at a sync checkpoint.
type SnapshotRequest struct {
	ProfileID    string                    `json:"profileId"`
	Collection   []PersistenceCard         `json:"collection"`
	Wishlist     []PersistenceWishlistCard `json:"wishlist"`
	Achievements []PersistenceAchievement  `json:"achievements"`
}

// SnapshotReceipt is returned after a snapshot checkpoint; Persisted is false
// when the local store could not be written (the checksum is still computed).
type SnapshotReceipt struct {
	Version   int       `json:"version"`
	CreatedAt int64     `json:"createdAt"`
	Checksum  int64     `json:"checksum"`
	Stats     DataStats `json:"stats"`
	Persisted bool      `json:"persisted"`
}

// CompareRequest carries the server side of a comparison. Fetching it from
// the remote service is the caller's responsibility.
type CompareRequest struct {
	ProfileID      string    `json:"profileId"`
	ServerChecksum int64     `json:"serverChecksum"`
	ServerStats    DataStats `json:"serverStats"`
}

// DiffRequest carries two raw collections for a field-level diff.
type DiffRequest struct {
	Local  []PersistenceCard `json:"local"`
	Server []PersistenceCard `json:"server"`
}
