// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the storage abstraction layer for stitch.
//
// Two independent stores back one logical product record:
//
//   - AssetStore: durable blob storage for the product photo and texture
//     swatch, keyed by generated object names, resolvable to public URLs
//   - VectorIndex: an upsert-only vector index keyed by product id,
//     holding the description embedding plus scalar metadata
//
// There is no transaction spanning the two stores. The ingestion pipeline
// writes assets first and the index entry last; package ingestion documents
// the resulting consistency gap.
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction and keep
// backends swappable:
//
//	assets, err := supabase.NewStore(cfg)   // returns storage.AssetStore
//	index, err := pinecone.NewIndex(cfg)    // returns storage.VectorIndex
//
// The badger and memory sub-packages provide local implementations with the
// same contracts for development and tests.
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines under distinct keys.
package storage
