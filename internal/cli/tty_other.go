//go:build !linux && !darwin

package cli

import "os"

// isTerminal falls back to the file mode where termios is unavailable.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
