// Copyright 2026 Forgeline Systems
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
	// ErrInvalidCatalogRow indicates a catalog row failed validation.
	ErrInvalidCatalogRow = errors.New("invalid catalog row")

	// ErrInvalidRequirement indicates a Requirement failed validation.
	ErrInvalidRequirement = errors.New("invalid requirement")

	// ErrEmptyPartNumber indicates the part number field is empty.
	ErrEmptyPartNumber = errors.New("part number cannot be empty")

	// ErrEmptyDescription indicates the description field is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidUnitPrice indicates the unit price is missing or unparseable.
	ErrInvalidUnitPrice = errors.New("unit price must be a valid decimal")

	// ErrNegativeAvailability indicates a negative quantity on hand.
	ErrNegativeAvailability = errors.New("availability cannot be negative")

	// ErrEmptyRawText indicates the requirement raw text is empty.
	ErrEmptyRawText = errors.New("raw text cannot be empty")

	// ErrInvalidScore indicates a similarity score outside [0,1].
	ErrInvalidScore = errors.New("score must be in [0,1]")
)
