//go:build !windows

package main

// raisePriority is a no-op here; run under nice(1) to change scheduling.
func raisePriority() error { return nil }
