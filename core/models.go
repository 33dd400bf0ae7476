package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/shopspring/decimal"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical content
// always produces the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// StrategyName identifies one of the retrieval strategies.
type StrategyName string

const (
	// StrategyFuzzy is fuzzy lexical matching over descriptions and part numbers.
	StrategyFuzzy StrategyName = "fuzzy"
	// StrategyMaterial is exact/family matching on the normalized material grade.
	StrategyMaterial StrategyName = "material"
	// StrategyAlternative matches acceptable substitute materials.
	StrategyAlternative StrategyName = "alternative"
	// StrategySemantic is embedding-based similarity search.
	StrategySemantic StrategyName = "semantic"
)

// StrategyNames lists all strategies in fusion order.
var StrategyNames = []StrategyName{StrategyFuzzy, StrategyMaterial, StrategyAlternative, StrategySemantic}

// PartRecord is one catalog part. Records are immutable once loaded; search
// results reference them by pointer and never copy-and-mutate.
type PartRecord struct {
	PartNumber    string
	Description   string
	Material      string
	Form          string // bar, sheet, tube, plate, ...
	Dimensions    string
	UnitPrice     decimal.Decimal
	Availability  int64 // quantity on hand
	Supplier      string
	WeightPerUnit float64
	Vector        []float32 // embedding of the description (populated at load)
	InsertedAt    time.Time
	UpdatedAt     time.Time
}

// CatalogRow is a raw catalog row as exchanged with external parsers.
// Rows are validated into PartRecords during load; malformed rows are
// skipped and counted, never fatal.
type CatalogRow struct {
	PartNumber    string  `json:"part_number"`
	Description   string  `json:"description"`
	Material      string  `json:"material"`
	Form          string  `json:"form"`
	Dimensions    string  `json:"dimensions"`
	UnitPrice     string  `json:"unit_price"`
	Availability  int64   `json:"availability"`
	Supplier      string  `json:"supplier"`
	WeightPerUnit float64 `json:"weight_per_unit"`
}

// Requirement is one extracted line item a customer wants fulfilled.
// Requirements are created per job and read-only within the matching core.
type Requirement struct {
	Id         ID     `json:"id"`
	RawText    string `json:"raw_text"`
	Material   string `json:"material,omitempty"`
	Form       string `json:"form,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
	Urgency    string `json:"urgency,omitempty"` // application/urgency hint for substitutions
}

// SearchCandidate is one (requirement, part) hit surfaced by a single
// strategy. Duplicate part numbers across strategies are expected and are
// preserved distinctly until fusion.
type SearchCandidate struct {
	Part        *PartRecord
	PartNumber  string
	Description string
	Strategy    StrategyName
	Score       float64 // in [0,1]
}

// FusedCandidate is a candidate with its combined score and the per-strategy
// contribution breakdown, preserved for traceability in match explanations.
type FusedCandidate struct {
	Part          *PartRecord              `json:"-"`
	PartNumber    string                   `json:"part_number"`
	Description   string                   `json:"description"`
	CombinedScore float64                  `json:"combined_score"`
	Breakdown     map[StrategyName]float64 `json:"breakdown"`
}

// MatchStatus is the outcome of matching one requirement.
type MatchStatus string

const (
	// MatchStatusMatched means a candidate cleared the acceptance threshold.
	MatchStatusMatched MatchStatus = "matched"
	// MatchStatusNoMatch means no candidate was accepted. This is a normal
	// business outcome, not an error.
	MatchStatusNoMatch MatchStatus = "no_match"
	// MatchStatusError means matching failed for this requirement; the cause
	// is recorded on the result and the job proceeds.
	MatchStatusError MatchStatus = "error"
)

// MatchResult is the match decision for one requirement.
type MatchResult struct {
	RequirementId ID               `json:"requirement_id"`
	RawText       string           `json:"raw_text"`
	SelectedPart  string           `json:"selected_part,omitempty"`
	Confidence    float64          `json:"confidence"`
	Reasoning     string           `json:"reasoning"`
	Alternatives  []FusedCandidate `json:"alternatives,omitempty"`
	Status        MatchStatus      `json:"status"`
	Err           string           `json:"error,omitempty"`
}

// IssueSeverity ranks review issues: error > no_match > borderline_match.
type IssueSeverity string

const (
	SeverityError      IssueSeverity = "error"
	SeverityNoMatch    IssueSeverity = "no_match"
	SeverityBorderline IssueSeverity = "borderline_match"
)

// Rank returns the numeric severity rank, higher is more severe.
func (s IssueSeverity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityNoMatch:
		return 2
	case SeverityBorderline:
		return 1
	}
	return 0
}

// ReviewIssue is one outcome requiring a human decision before the order is
// finalized.
type ReviewIssue struct {
	LineItem    int           `json:"line_item"`
	Description string        `json:"description"`
	Severity    IssueSeverity `json:"severity"`
}

// OrderTotals counts line items by status.
// MatchedItems + NoMatchItems + ErrorItems always equals TotalLineItems.
type OrderTotals struct {
	TotalLineItems int `json:"total_line_items"`
	MatchedItems   int `json:"matched_items"`
	NoMatchItems   int `json:"no_match_items"`
	ErrorItems     int `json:"error_items"`
}

// AssembledOrder is the final order document for one job. It is created once
// after all line items resolve and is immutable thereafter.
type AssembledOrder struct {
	JobId                 string        `json:"job_id"`
	OrderSummary          string        `json:"order_summary"`
	LineItems             []MatchResult `json:"line_items"`
	ConfidenceScore       float64       `json:"confidence_score"`
	IssuesRequiringReview []ReviewIssue `json:"issues_requiring_review"`
	Totals                OrderTotals   `json:"totals"`
	AssembledAt           time.Time     `json:"assembled_at"`
}
