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


package ollama

import (
	"context"
	"log/slog"

	"github.com/poiesic/stitch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Describer implements ai.Describer using an Ollama vision model.
type Describer struct {
	client *ollama.LLM
	prompt string
	logger *slog.Logger
}

// newDescriber is an internal constructor that returns the concrete type.
func newDescriber(config *ai.Config) (*Describer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := ollama.New(
		ollama.WithServerURL(config.VisionHost),
		ollama.WithModel(config.VisionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Describer{
		client: client,
		prompt: buildDescribePrompt(config.DescriptionWords),
		logger: slog.Default().With("component", "ollama-describer"),
	}, nil
}

// NewDescriber creates a new image describer using the provided configuration.
//
// Returns ai.Describer interface to enforce abstraction.
func NewDescriber(config *ai.Config) (ai.Describer, error) {
	return newDescriber(config)
}

// DescribeImage derives a garment description from a single image.
// The whole image is sent as one payload in a single blocking call, and
// temperature is pinned to zero so repeated calls on the same image are
// stable. An empty model response is returned as an empty string.
func (d *Describer) DescribeImage(ctx context.Context, mimeType string, image []byte) (string, error) {
	d.logger.Debug("describing image", "mime_type", mimeType, "bytes", len(image))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mimeType, image),
				llms.TextPart(d.prompt),
			},
		},
	}

	response, err := d.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		d.logger.Error("failed to generate description", "err", err)
		return "", err
	}

	if len(response.Choices) == 0 {
		d.logger.Warn("vision model returned no choices")
		return "", nil
	}

	return response.Choices[0].Content, nil
}
