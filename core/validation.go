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

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateCatalogRow validates a raw catalog row according to domain rules.
//
// Validation rules:
//   - PartNumber must not be empty
//   - Description must not be empty
//   - UnitPrice must parse as a decimal if present
//   - Availability must not be negative
//
// NOT validated (optional in source data):
//   - Material, Form, Dimensions, Supplier, WeightPerUnit
func ValidateCatalogRow(row *CatalogRow) error {
	if row == nil {
		return fmt.Errorf("%w: row is nil", ErrInvalidCatalogRow)
	}
	if strings.TrimSpace(row.PartNumber) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCatalogRow, ErrEmptyPartNumber)
	}
	if strings.TrimSpace(row.Description) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCatalogRow, ErrEmptyDescription)
	}
	if row.UnitPrice != "" {
		if _, err := decimal.NewFromString(row.UnitPrice); err != nil {
			return fmt.Errorf("%w: %w: %q", ErrInvalidCatalogRow, ErrInvalidUnitPrice, row.UnitPrice)
		}
	}
	if row.Availability < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalogRow, ErrNegativeAvailability)
	}
	return nil
}

// PartFromRow validates a catalog row and converts it into a PartRecord.
// Timestamps are left unset; the storage layer populates them.
func PartFromRow(row *CatalogRow) (*PartRecord, error) {
	if err := ValidateCatalogRow(row); err != nil {
		return nil, err
	}

	price := decimal.Zero
	if row.UnitPrice != "" {
		price, _ = decimal.NewFromString(row.UnitPrice)
	}

	return &PartRecord{
		PartNumber:    strings.TrimSpace(row.PartNumber),
		Description:   strings.TrimSpace(row.Description),
		Material:      strings.TrimSpace(row.Material),
		Form:          strings.TrimSpace(row.Form),
		Dimensions:    strings.TrimSpace(row.Dimensions),
		UnitPrice:     price,
		Availability:  row.Availability,
		Supplier:      strings.TrimSpace(row.Supplier),
		WeightPerUnit: row.WeightPerUnit,
	}, nil
}

// RowFromPart converts a PartRecord back into its interchange row form.
// PartFromRow(RowFromPart(p)) reproduces p minus vectors and timestamps.
func RowFromPart(part *PartRecord) *CatalogRow {
	return &CatalogRow{
		PartNumber:    part.PartNumber,
		Description:   part.Description,
		Material:      part.Material,
		Form:          part.Form,
		Dimensions:    part.Dimensions,
		UnitPrice:     part.UnitPrice.String(),
		Availability:  part.Availability,
		Supplier:      part.Supplier,
		WeightPerUnit: part.WeightPerUnit,
	}
}

// ValidateRequirement validates a Requirement according to domain rules.
//
// Validation rules:
//   - RawText must not be empty
//
// NOT validated (optional structured attributes from extraction):
//   - Material, Form, Dimensions, Quantity, Urgency
func ValidateRequirement(req *Requirement) error {
	if req == nil {
		return fmt.Errorf("%w: requirement is nil", ErrInvalidRequirement)
	}
	if strings.TrimSpace(req.RawText) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequirement, ErrEmptyRawText)
	}
	return nil
}
