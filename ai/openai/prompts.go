package openai

import (
	"fmt"
	"strings"

	"github.com/forgeline/partmatch/ai"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "line_items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "raw_text": {
            "type": "string"
          },
          "material": {
            "type": "string"
          },
          "form": {
            "type": "string"
          },
          "dimensions": {
            "type": "string"
          },
          "quantity": {
            "type": "integer",
            "minimum": 0
          },
          "urgency": {
            "type": "string",
            "enum": ["", "standard", "expedite", "critical"]
          }
        },
        "required": ["raw_text"],
        "additionalProperties": false
      }
    }
  },
  "required": ["line_items"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `Extract every purchasable line item from the given purchase-order text and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- raw_text is the original line-item text, verbatim, one entry per item the customer wants to buy.
- material is the alloy or grade code if one is stated (e.g. "4140", "6061-T6", "304"); otherwise "".
- form must be one of: %s, or "" when the stock form cannot be determined.
- dimensions is the size specification as written (e.g. "2in dia x 36in"); otherwise "".
- quantity is the number of units requested; 0 when not stated.
- urgency reflects any delivery pressure stated for the item; "" when none is stated.
- Preserve document order. Do not merge, split, or invent line items.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Need 10 pcs 4140 steel round bar 2 inch dia x 36, ASAP. Also one 6061-T6 plate 12x12x0.5."
Output:
{
  "line_items": [
    {"raw_text":"Need 10 pcs 4140 steel round bar 2 inch dia x 36, ASAP","material":"4140","form":"bar","dimensions":"2 inch dia x 36","quantity":10,"urgency":"expedite"},
    {"raw_text":"Also one 6061-T6 plate 12x12x0.5","material":"6061-T6","form":"plate","dimensions":"12x12x0.5","quantity":1,"urgency":""}
  ]
}

Example (nothing to buy):
Input: "Please confirm receipt of our previous order."
Output:
{
  "line_items": []
}`

// buildExtractionPrompt creates the system prompt with stock forms embedded.
func buildExtractionPrompt() string {
	return fmt.Sprintf(extractionPromptTemplate,
		extractionResponseSchema,
		strings.Join(ai.Forms, ", "))
}

const classificationPromptTemplate = `Classify how difficult the given order is to fulfill. Respond with JSON only:

{"complexity": "<level>"}

where <level> is exactly one of: %s.

- simple: standard stock items, common alloys, no special processing.
- moderate: custom cuts, likely substitutions, or unusual quantities.
- complex: exotic materials, tight tolerances, certifications, or anything needing engineering review.

Output nothing but the JSON object.`

// buildClassificationPrompt creates the complexity classification prompt.
func buildClassificationPrompt() string {
	levels := make([]string, len(ai.ComplexityLevels))
	for i, l := range ai.ComplexityLevels {
		levels[i] = string(l)
	}
	return fmt.Sprintf(classificationPromptTemplate, strings.Join(levels, ", "))
}
