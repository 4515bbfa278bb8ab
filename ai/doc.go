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


// Package ai provides abstractions for the AI services used in Stitch.
//
// This package defines interfaces for describing garment images with a
// vision-capable model and for generating text embeddings. It follows the
// dependency inversion principle, allowing the ingestion pipeline to depend
// on abstractions rather than concrete implementations.
//
// The package is designed around two interfaces:
//
//   - Describer: derives a garment description from an image
//   - Embedder: generates vector embeddings from text
//
// # Implementation Packages
//
// The ai package includes three implementation sub-packages:
//
//   - ai/ollama: image description via an Ollama vision model
//   - ai/openai: embeddings via OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (ollama.NewDescriber, openai.NewEmbedder) return
// INTERFACE types to enforce abstraction. Test utility constructors
// (mock.NewMockDescriber, mock.NewMockEmbedder) return CONCRETE types to
// enable assertions and behavior injection via the mocks' public fields.
//
// # Usage Example
//
//	config := ai.NewConfig(
//	    ai.WithVisionHost("http://localhost:11434"),
//	    ai.WithVisionModel("llava"),
//	)
//	describer, err := ollama.NewDescriber(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	description, err := describer.DescribeImage(ctx, "image/jpeg", photo)
package ai
