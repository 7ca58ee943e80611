// Package browser opens content links in the user's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher starts an external program without waiting for it.
type Launcher func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // #nosec G204 -- URL validated by Validate
}

// Opener opens validated http(s) links for one operating system.
type Opener struct {
	goos   string
	launch Launcher
}

// Option configures an Opener.
type Option func(*Opener)

// WithLauncher replaces process launching, mainly for tests.
func WithLauncher(l Launcher) Option {
	return func(o *Opener) {
		o.launch = l
	}
}

// WithOS overrides the detected operating system.
func WithOS(goos string) Option {
	return func(o *Opener) {
		o.goos = goos
	}
}

// New returns an Opener for the running platform.
func New(opts ...Option) *Opener {
	o := &Opener{goos: runtime.GOOS, launch: startCommand}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate accepts only absolute http and https URLs so nothing else reaches
// the system launcher.
func Validate(urlString string) error {
	parsedURL, err := url.Parse(urlString)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q (only http and https allowed)", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("invalid URL: %q has no host", urlString)
	}
	return nil
}

// Open opens urlString in the default browser.
func (o *Opener) Open(urlString string) error {
	if err := Validate(urlString); err != nil {
		return err
	}

	switch o.goos {
	case "linux", "freebsd", "openbsd":
		return o.launch("xdg-open", urlString)
	case "darwin":
		return o.launch("open", urlString)
	case "windows":
		return o.launch("rundll32", "url.dll,FileProtocolHandler", urlString)
	default:
		return fmt.Errorf("unsupported platform: %s", o.goos)
	}
}

// Open opens urlString with the platform defaults.
func Open(urlString string) error {
	return New().Open(urlString)
}
