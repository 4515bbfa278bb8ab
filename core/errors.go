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

import "errors"

// Domain validation errors
var (
	// ErrInvalidSubmission indicates a ProductSubmission failed validation.
	ErrInvalidSubmission = errors.New("invalid product submission")

	// ErrMissingImage indicates a required image payload is absent.
	ErrMissingImage = errors.New("image file not present")

	// ErrNotAnImage indicates a payload's declared MIME type is not image/*.
	ErrNotAnImage = errors.New("file is not an image")
)
