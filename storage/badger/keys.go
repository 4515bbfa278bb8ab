package badger

// Key prefixes for different data types
const (
	assetObjectPrefix   = "astobj"
	assetManifestPrefix = "astmf"
)

// makeObjectKey generates the key holding an object's bytes.
func makeObjectKey(name string) []byte {
	return []byte(assetObjectPrefix + ":" + name)
}

// makeManifestKey generates the key holding an object's manifest.
func makeManifestKey(name string) []byte {
	return []byte(assetManifestPrefix + ":" + name)
}
