//go:build windows

package history

import "syscall"

// hideFile sets the hidden attribute on the history directory.
func hideFile(path string) {
	p, err := syscall.UTF16PtrFromString(path)
	if err == nil {
		syscall.SetFileAttributes(p, syscall.FILE_ATTRIBUTE_HIDDEN)
	}
}
