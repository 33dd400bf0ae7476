package pipeline

import (
	"fmt"
	"strings"

	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/core"
)

// detectDuplicates flags requirements whose normalized text repeats an
// earlier line item. Duplicates are not removed: the order may genuinely
// repeat a part, so they surface as review issues for sign-off instead.
func detectDuplicates(requirements []core.Requirement) []core.ReviewIssue {
	var issues []core.ReviewIssue
	seen := make(map[string]int, len(requirements))

	for i, req := range requirements {
		key := strings.Join(catalog.Tokenize(req.RawText), " ")
		if key == "" {
			continue
		}
		if first, ok := seen[key]; ok {
			issues = append(issues, core.ReviewIssue{
				LineItem: i,
				Description: fmt.Sprintf(
					"possible duplicate of line item %d: %q", first, req.RawText),
				Severity: core.SeverityBorderline,
			})
			continue
		}
		seen[key] = i
	}

	return issues
}
