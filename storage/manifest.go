package storage

import "time"

// AssetManifest records what is known about a stored blob. Local backends
// persist one manifest per object next to the object bytes.
type AssetManifest struct {
	Name        string
	ContentType string
	Size        uint64
	Checksum    string // hex-encoded BLAKE2b digest of the object bytes
	StoredAt    time.Time
}
