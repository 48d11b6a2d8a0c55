// SPDX-License-Identifier: MPL-2.0

package language

import (
	"fmt"
	"os"
)

// writeScript writes source to a fresh uniquely-named file under tempDir.
// The pattern follows os.CreateTemp conventions ("compass-script-*.py").
func writeScript(source, tempDir, pattern, langName string) (string, error) {
	f, err := os.CreateTemp(tempDir, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to write %s script: %w", langName, err)
	}
	if _, err := f.WriteString(source); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s script to %s: %w", langName, f.Name(), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close %s script %s: %w", langName, f.Name(), err)
	}
	return f.Name(), nil
}
