// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"strings"

	"github.com/eraflo/compass/internal/document"
)

// RequiredPlaceholders returns the distinct placeholder names required
// by a step's code blocks, in first-seen order. Placeholders are
// extracted at parse time and carried on each block.
func RequiredPlaceholders(step document.Step) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, block := range step.CodeBlocks {
		for _, name := range block.Placeholders {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// BuildCommand concatenates a step's code blocks into one executable
// string, substituting both placeholder forms from values. Unknown
// placeholders are left untouched so the failure surfaces at run time
// rather than silently executing an empty value.
func BuildCommand(step document.Step, values map[string]string) string {
	var sb strings.Builder
	for _, block := range step.CodeBlocks {
		content := block.Content
		for name, value := range values {
			content = strings.ReplaceAll(content, "<"+name+">", value)
			content = strings.ReplaceAll(content, "{{"+name+"}}", value)
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String()
}
