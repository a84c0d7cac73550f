package demo

import (
	"os/exec"
	"runtime"
)

// OpenCommand returns the viewer command for goos.
func OpenCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		// The empty argument is the window title expected by start.
		return "cmd", []string{"/c", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open launches the platform image viewer on path without waiting for it.
func Open(path string) error {
	name, args := OpenCommand(runtime.GOOS, path)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
