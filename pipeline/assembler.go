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

package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/forgeline/partmatch/core"
)

// Assembler aggregates line-item match results into the final order
// document. The borderline threshold marks accepted matches that still need
// human sign-off before auto-approval.
type Assembler struct {
	BorderlineThreshold float64
}

// Assemble builds the order for a job from its match results and any
// cross-line validation issues. Totals always account for every line item;
// the aggregate confidence is the mean over matched items only, 0 when
// nothing matched. Issues are ordered most severe first.
func (a Assembler) Assemble(jobId string, results []core.MatchResult, validationIssues []core.ReviewIssue) *core.AssembledOrder {
	order := &core.AssembledOrder{
		JobId:       jobId,
		LineItems:   results,
		AssembledAt: time.Now().UTC(),
	}
	order.Totals.TotalLineItems = len(results)

	var confidenceSum float64
	for i, result := range results {
		switch result.Status {
		case core.MatchStatusMatched:
			order.Totals.MatchedItems++
			confidenceSum += result.Confidence
			if result.Confidence < a.BorderlineThreshold {
				order.IssuesRequiringReview = append(order.IssuesRequiringReview, core.ReviewIssue{
					LineItem: i,
					Description: fmt.Sprintf(
						"matched %s at confidence %.2f, below the auto-approve bar %.2f",
						result.SelectedPart, result.Confidence, a.BorderlineThreshold),
					Severity: core.SeverityBorderline,
				})
			}
		case core.MatchStatusNoMatch:
			order.Totals.NoMatchItems++
			order.IssuesRequiringReview = append(order.IssuesRequiringReview, core.ReviewIssue{
				LineItem:    i,
				Description: fmt.Sprintf("no match for %q: %s", result.RawText, result.Reasoning),
				Severity:    core.SeverityNoMatch,
			})
		case core.MatchStatusError:
			order.Totals.ErrorItems++
			order.IssuesRequiringReview = append(order.IssuesRequiringReview, core.ReviewIssue{
				LineItem:    i,
				Description: fmt.Sprintf("matching failed for %q: %s", result.RawText, result.Err),
				Severity:    core.SeverityError,
			})
		}
	}

	order.IssuesRequiringReview = append(order.IssuesRequiringReview, validationIssues...)

	sort.SliceStable(order.IssuesRequiringReview, func(i, j int) bool {
		si, sj := order.IssuesRequiringReview[i], order.IssuesRequiringReview[j]
		if si.Severity.Rank() != sj.Severity.Rank() {
			return si.Severity.Rank() > sj.Severity.Rank()
		}
		return si.LineItem < sj.LineItem
	})

	if order.Totals.MatchedItems > 0 {
		order.ConfidenceScore = confidenceSum / float64(order.Totals.MatchedItems)
	}

	order.OrderSummary = fmt.Sprintf("%d line items: %d matched, %d no match, %d errors",
		order.Totals.TotalLineItems, order.Totals.MatchedItems,
		order.Totals.NoMatchItems, order.Totals.ErrorItems)

	return order
}
