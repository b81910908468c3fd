package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"introcut/internal/services"
)

var commandContext = exec.CommandContext

// Prober runs ffmpeg filter probes over the head of a media file and scrapes
// the measurements ffmpeg prints to stderr.
type Prober struct {
	binary  string
	timeout time.Duration
}

// Option configures the prober.
type Option func(*Prober)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(p *Prober) {
		if strings.TrimSpace(binary) != "" {
			p.binary = binary
		}
	}
}

// WithTimeout caps the wall time of a single probe. Zero disables the cap.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		p.timeout = timeout
	}
}

// NewProber constructs a Prober using defaults.
func NewProber(opts ...Option) *Prober {
	prober := &Prober{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(prober)
	}
	return prober
}

// run executes ffmpeg restricted to the first window seconds of path with the
// given filter arguments and returns the combined output. ffmpeg reports
// filter measurements on stderr, so stdout and stderr are captured together.
func (p *Prober) run(ctx context.Context, path string, window float64, filterArgs ...string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", services.Wrap(services.ErrConfiguration, "ffmpeg", "probe", "empty media path", nil)
	}
	if window <= 0 {
		return "", services.Wrap(services.ErrConfiguration, "ffmpeg", "probe", "non-positive analysis window", nil)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := []string{"-hide_banner", "-nostats", "-t", formatSeconds(window), "-i", path}
	args = append(args, filterArgs...)
	args = append(args, "-f", "null", "-")

	cmd := commandContext(ctx, p.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", services.Wrap(services.ErrTimeout, "ffmpeg", "probe", fmt.Sprintf("exceeded %s", p.timeout), err)
		}
		return "", services.Wrap(services.ErrExternalTool, "ffmpeg", "probe", strings.TrimSpace(string(output)), err)
	}
	return string(output), nil
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
