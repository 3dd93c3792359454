//go:build windows

package main

import "golang.org/x/sys/windows"

// raisePriority moves the process to the above-normal class. HIGH starves
// the desktop once every core runs a worker.
func raisePriority() error {
	return windows.SetPriorityClass(windows.CurrentProcess(), windows.ABOVE_NORMAL_PRIORITY_CLASS)
}
