// Package ingestion orchestrates the end-to-end product submission flow.
//
// The Pipeline type sequences the heterogeneous stores that together hold
// one logical product record:
//
//   - Both images are uploaded to the asset store (concurrently, and the
//     pipeline waits for both)
//   - A garment description is derived from the product photo
//   - The description is embedded and upserted into the vector index
//
// A single id, generated once per submission after validation, keys every
// artifact. The physical writes are NOT atomic across stores: assets are
// written before the index entry, and a failure in between leaves orphaned
// blobs with no corresponding index record. No compensating delete is
// attempted; callers resubmit (with a fresh id) on failure. There are no
// automatic retries at any step.
package ingestion
