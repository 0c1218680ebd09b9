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
	// ErrNoSections indicates an analysis run was requested with no sections.
	ErrNoSections = errors.New("no sections to analyze")

	// ErrEmptyQuery indicates an analysis run was requested with an empty query.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrDimensionMismatch indicates vectors of different lengths were compared.
	// This is the symptom of mixing embedding backends within one run.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrNoContent indicates a page had no extractable text content.
	ErrNoContent = errors.New("no extractable content")
)
