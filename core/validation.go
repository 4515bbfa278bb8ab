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


package core

import (
	"fmt"
	"mime"
	"strings"
)

// ValidateImageFile validates an uploaded image payload.
//
// Validation rules:
//   - Data must be non-empty
//   - The declared MIME type must parse and its primary type must be "image"
//
// Image contents are NOT inspected beyond the declared MIME type.
func ValidateImageFile(file *ImageFile) error {
	if file == nil || len(file.Data) == 0 {
		return ErrMissingImage
	}

	mediaType, _, err := mime.ParseMediaType(file.ContentType)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrNotAnImage, file.ContentType)
	}

	primary, _, _ := strings.Cut(mediaType, "/")
	if primary != "image" {
		return fmt.Errorf("%w: %q", ErrNotAnImage, file.ContentType)
	}

	return nil
}

// ValidateSubmission validates a ProductSubmission according to domain rules.
//
// Validation rules:
//   - Both the product photo and the texture swatch must be present
//   - Both must declare an image/* MIME type
//
// NOT validated (populated by the pipeline):
//   - Description, ImageURL, TextureURL
//   - Scalar product fields (the submission echoes whatever the client sent)
func ValidateSubmission(sub *ProductSubmission) error {
	if sub == nil {
		return fmt.Errorf("%w: submission is nil", ErrInvalidSubmission)
	}

	if err := ValidateImageFile(&sub.Image); err != nil {
		return fmt.Errorf("%w: image: %w", ErrInvalidSubmission, err)
	}

	if err := ValidateImageFile(&sub.Texture); err != nil {
		return fmt.Errorf("%w: texture: %w", ErrInvalidSubmission, err)
	}

	return nil
}
