// Command seeder loads a demonstration parts catalog into a partmatch
// database using the deterministic mock embedder, so the search commands
// work without a running embedding service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/forgeline/partmatch"
	"github.com/forgeline/partmatch/ai/mock"
	"github.com/forgeline/partmatch/core"
)

type seedPart struct {
	grade    string
	form     string
	material string
}

var seedParts = []seedPart{
	{"4140", "bar", "4140"},
	{"4140", "plate", "4140"},
	{"4340", "bar", "4340"},
	{"4142", "bar", "4142"},
	{"1018", "bar", "1018"},
	{"1018", "sheet", "1018"},
	{"1045", "bar", "1045"},
	{"A36", "plate", "A36"},
	{"6061-T6", "bar", "6061-T6"},
	{"6061-T6", "sheet", "6061-T6"},
	{"6061-T6", "tube", "6061-T6"},
	{"6063-T5", "tube", "6063-T5"},
	{"5052", "sheet", "5052"},
	{"7075-T6", "bar", "7075-T6"},
	{"2024-T3", "sheet", "2024-T3"},
	{"304", "bar", "304"},
	{"304", "sheet", "304"},
	{"304L", "tube", "304L"},
	{"316", "bar", "316"},
	{"316L", "sheet", "316L"},
	{"321", "tube", "321"},
	{"C360", "bar", "C360"},
}

var materialNames = map[string]string{
	"4140": "Alloy Steel", "4340": "Alloy Steel", "4142": "Alloy Steel",
	"1018": "Carbon Steel", "1045": "Carbon Steel", "A36": "Structural Steel",
	"6061-T6": "Aluminum", "6063-T5": "Aluminum", "5052": "Aluminum",
	"7075-T6": "Aluminum", "2024-T3": "Aluminum",
	"304": "Stainless Steel", "304L": "Stainless Steel", "316": "Stainless Steel",
	"316L": "Stainless Steel", "321": "Stainless Steel",
	"C360": "Brass",
}

var dimensionsByForm = map[string][]string{
	"bar":   {"1in x 36in", "2in x 36in", "3in x 72in"},
	"plate": {"0.5in x 12in x 12in", "1in x 24in x 24in"},
	"sheet": {"0.063in x 48in x 96in", "0.125in x 48in x 96in"},
	"tube":  {"1in OD x 0.12in wall x 72in", "2in OD x 0.25in wall x 72in"},
}

// Part number prefixes by form; bar sizes follow the SB-<grade>-<dia>-36
// convention so SB-4140-2-36 is the 2in x 36in 4140 round bar.
var prefixByForm = map[string]string{
	"bar":   "SB",
	"plate": "PL",
	"sheet": "SH",
	"tube":  "TU",
}

func main() {
	dbPath := flag.String("db", "partmatch-db", "path to the catalog database directory")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	rows := buildRows()

	service, err := partmatch.NewService(*dbPath, partmatch.WithProvider(mock.NewMockProvider()))
	if err != nil {
		logger.Error("failed to open service", "err", err)
		os.Exit(1)
	}
	defer service.Close()

	report, err := service.LoadCatalog(context.Background(), rows)
	if err != nil {
		logger.Error("failed to load catalog", "err", err)
		os.Exit(1)
	}

	logger.Info("demo catalog loaded",
		"db", *dbPath,
		"loaded", report.LoadedParts,
		"skipped", report.SkippedRows,
		"embedded", report.EmbeddedParts)
}

func buildRows() []core.CatalogRow {
	var rows []core.CatalogRow
	for _, sp := range seedParts {
		sizes := dimensionsByForm[sp.form]
		for i, dims := range sizes {
			partNumber := fmt.Sprintf("%s-%s-%d-%d", prefixByForm[sp.form], sp.grade, i+1, 36)
			description := fmt.Sprintf("%s %s %s %s %s",
				sp.grade, materialNames[sp.material], formTitle(sp.form), dims, "mill finish")

			rows = append(rows, core.CatalogRow{
				PartNumber:    partNumber,
				Description:   description,
				Material:      sp.material,
				Form:          sp.form,
				Dimensions:    dims,
				UnitPrice:     fmt.Sprintf("%d.%02d", 10+7*i+len(sp.grade), (13*i+29)%100),
				Availability:  int64(25 + 50*i),
				Supplier:      "Forgeline Supply",
				WeightPerUnit: float64(2+i) * 1.75,
			})
		}
	}
	return rows
}

func formTitle(form string) string {
	switch form {
	case "bar":
		return "Round Bar"
	case "plate":
		return "Plate"
	case "sheet":
		return "Sheet"
	case "tube":
		return "Tube"
	}
	return form
}
