// Package platform hands paths and URLs to the desktop's default handler.
package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Opener launches the default handler for a target
type Opener interface {
	Open(target string) error
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(target string) error

// Open calls f(target)
func (f OpenerFunc) Open(target string) error { return f(target) }

// System opens targets with the OS handler
var System Opener = OpenerFunc(open)

// OpenDir opens a directory in the file manager. The directory must exist.
func OpenDir(o Opener, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot open %s: not a directory", dir)
	}
	return o.Open(dir)
}

// command builds the launcher for goos
func command(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform %s", goos)
	}
}

func open(target string) error {
	cmd, err := command(runtime.GOOS, target)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	go cmd.Wait()
	return nil
}
