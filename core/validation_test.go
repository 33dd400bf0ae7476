package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() *CatalogRow {
	return &CatalogRow{
		PartNumber:    "SB-4140-2-36",
		Description:   "4140 Alloy Steel Round Bar 2in x 36in",
		Material:      "4140",
		Form:          "bar",
		Dimensions:    "2in x 36in",
		UnitPrice:     "42.50",
		Availability:  120,
		Supplier:      "Forgeline Supply",
		WeightPerUnit: 8.9,
	}
}

func TestValidateCatalogRow(t *testing.T) {
	t.Run("valid row passes", func(t *testing.T) {
		assert.NoError(t, ValidateCatalogRow(validRow()))
	})

	t.Run("nil row rejected", func(t *testing.T) {
		err := ValidateCatalogRow(nil)
		assert.ErrorIs(t, err, ErrInvalidCatalogRow)
	})

	t.Run("empty part number rejected", func(t *testing.T) {
		row := validRow()
		row.PartNumber = "   "
		err := ValidateCatalogRow(row)
		assert.ErrorIs(t, err, ErrEmptyPartNumber)
	})

	t.Run("empty description rejected", func(t *testing.T) {
		row := validRow()
		row.Description = ""
		err := ValidateCatalogRow(row)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("bad price rejected", func(t *testing.T) {
		row := validRow()
		row.UnitPrice = "forty-two"
		err := ValidateCatalogRow(row)
		assert.ErrorIs(t, err, ErrInvalidUnitPrice)
	})

	t.Run("empty price allowed", func(t *testing.T) {
		row := validRow()
		row.UnitPrice = ""
		assert.NoError(t, ValidateCatalogRow(row))
	})

	t.Run("negative availability rejected", func(t *testing.T) {
		row := validRow()
		row.Availability = -1
		err := ValidateCatalogRow(row)
		assert.ErrorIs(t, err, ErrNegativeAvailability)
	})
}

func TestPartFromRow(t *testing.T) {
	t.Run("converts and trims fields", func(t *testing.T) {
		row := validRow()
		row.PartNumber = "  SB-4140-2-36  "
		row.Material = " 4140 "

		part, err := PartFromRow(row)
		require.NoError(t, err)
		assert.Equal(t, "SB-4140-2-36", part.PartNumber)
		assert.Equal(t, "4140", part.Material)
		assert.Equal(t, "42.5", part.UnitPrice.String())
		assert.Equal(t, int64(120), part.Availability)
	})

	t.Run("invalid row returns error", func(t *testing.T) {
		part, err := PartFromRow(&CatalogRow{})
		assert.Error(t, err)
		assert.Nil(t, part)
	})

	t.Run("round trips through row form", func(t *testing.T) {
		part, err := PartFromRow(validRow())
		require.NoError(t, err)

		back, err := PartFromRow(RowFromPart(part))
		require.NoError(t, err)
		assert.Equal(t, part.PartNumber, back.PartNumber)
		assert.Equal(t, part.Description, back.Description)
		assert.True(t, part.UnitPrice.Equal(back.UnitPrice))
		assert.Equal(t, part.WeightPerUnit, back.WeightPerUnit)
	})
}

func TestValidateRequirement(t *testing.T) {
	t.Run("valid requirement passes", func(t *testing.T) {
		req := &Requirement{Id: IDFromContent("x"), RawText: "4140 steel round bar 2 inch"}
		assert.NoError(t, ValidateRequirement(req))
	})

	t.Run("empty raw text rejected", func(t *testing.T) {
		err := ValidateRequirement(&Requirement{RawText: "  "})
		assert.ErrorIs(t, err, ErrEmptyRawText)
	})

	t.Run("nil requirement rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRequirement(nil), ErrInvalidRequirement)
	})
}

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, IDFromContent("4140 bar"), IDFromContent("4140 bar"))
	})

	t.Run("distinct content gives distinct ids", func(t *testing.T) {
		assert.NotEqual(t, IDFromContent("4140 bar"), IDFromContent("6061 sheet"))
	})
}
