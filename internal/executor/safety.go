// SPDX-License-Identifier: MPL-2.0

package executor

import "strings"

// CheckSafety scans content for the first blacklisted pattern in list order
// and returns it. Deliberately coarse: a plain substring scan is advisory
// defense-in-depth and cannot catch obfuscated or dynamically-built commands.
func CheckSafety(content string, patterns []string) (pattern string, found bool) {
	for _, p := range patterns {
		if strings.Contains(content, p) {
			return p, true
		}
	}
	return "", false
}
