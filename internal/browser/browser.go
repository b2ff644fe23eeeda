// Package browser launches the user's web browser.
package browser

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/abelbrown/hncli/internal/logging"
)

// Opener starts a browser on a URL without waiting for it to exit.
type Opener struct {
	// Command overrides the platform launcher, e.g. "firefox --new-tab".
	// The URL is appended as the last argument.
	Command string

	goos  string
	start func(name string, args ...string) error
}

// New returns an Opener for the running platform. An empty command uses
// open, rundll32 or xdg-open.
func New(command string) *Opener {
	return &Opener{Command: command, goos: runtime.GOOS, start: startDetached}
}

// Open launches the browser on url.
func (o *Opener) Open(url string) error {
	if url == "" {
		return errors.New("browser: empty url")
	}
	name, args := o.commandFor(url)
	logging.Debug("opening url", "url", url, "cmd", name)
	return o.start(name, args...)
}

// commandFor returns the program and arguments that open url.
func (o *Opener) commandFor(url string) (string, []string) {
	if fields := strings.Fields(o.Command); len(fields) > 0 {
		return fields[0], append(fields[1:], url)
	}
	switch o.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// startDetached starts the command and reaps it in the background.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Warn("browser exited with error", "cmd", name, "err", err)
		}
	}()
	return nil
}
