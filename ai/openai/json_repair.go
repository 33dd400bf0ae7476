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

package openai

import "strings"

// repairJSON mends a malformation small local models regularly produce when
// extracting requirements: object keys missing their opening quote, as in
// `{raw_text": "4140 bar"}`. Well-formed input passes through unchanged.
func repairJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 16)

	for i := 0; i < len(s); {
		c := s[i]
		out.WriteByte(c)
		i++
		if c != '{' && c != ',' {
			continue
		}

		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
			out.WriteByte(s[i])
			i++
		}
		if i >= len(s) || !isKeyByte(s[i]) {
			continue
		}

		// A bare identifier after { or , is only a broken key when it
		// runs straight into `":`. Anything else is copied untouched.
		j := i
		for j < len(s) && (isKeyByte(s[j]) || s[j] == ' ') {
			j++
		}
		if j+1 < len(s) && s[j] == '"' && s[j+1] == ':' {
			out.WriteByte('"')
			out.WriteString(strings.TrimRight(s[i:j], " "))
		} else {
			out.WriteString(s[i:j])
		}
		i = j
	}

	return out.String()
}

func isKeyByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
