//go:build !windows

package history

// hideFile is a no-op; dot-prefixed paths are already hidden.
func hideFile(string) {}
