package gridder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const stderrTailLines = 5

// Exec runs the gridding entry point as an external command. The timeout is
// the per-invocation budget enforced here, at the boundary; the driver
// itself carries no per-item timeout.
type Exec struct {
	command string
	timeout time.Duration
}

var _ Gridder = (*Exec)(nil)

func NewExec(command string, timeout time.Duration) *Exec {
	return &Exec{command: command, timeout: timeout}
}

func (e *Exec) Grid(ctx context.Context, infile, outputDir, prefix string, standardNaming bool) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := []string{infile, "--output", outputDir, "--prefix", prefix}
	if standardNaming {
		args = append(args, "--standard-naming")
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.command, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s timed out after %s on %s", e.command, e.timeout, infile)
		}
		if tail := stderrTail(stderr.String()); tail != "" {
			return fmt.Errorf("%s on %s: %w: %s", e.command, infile, err, tail)
		}
		return fmt.Errorf("%s on %s: %w", e.command, infile, err)
	}
	return nil
}

func stderrTail(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) > stderrTailLines {
		lines = lines[len(lines)-stderrTailLines:]
	}
	return strings.TrimSpace(strings.Join(lines, " | "))
}
