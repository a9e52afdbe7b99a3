// Package llm invokes an external language-model CLI.
//
// The contract is a black box: prompt text in, reply text out. Failures
// propagate to the caller unchanged; this package has no retry policy
// because it has no context for an informed one.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Invoker is the model-invocation contract consumed by callers.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Runner invokes a configurable model CLI as a subprocess.
type Runner struct {
	// Command is the executable, e.g. "claude".
	Command string

	// Args are passed before the prompt, e.g. ["-p", "--output-format", "stream-json"].
	Args []string
}

// NewRunner returns a Runner with the default claude CLI invocation.
func NewRunner(command string, args []string) *Runner {
	if command == "" {
		command = "claude"
	}
	if len(args) == 0 {
		args = []string{"-p", "--output-format", "stream-json", "--verbose"}
	}
	return &Runner{Command: command, Args: args}
}

// Invoke runs the model CLI with the prompt as the final argument and
// returns the reply text. Stream-JSON output is decoded to its final
// result; plain-text output is returned as is.
func (r *Runner) Invoke(ctx context.Context, prompt string) (string, error) {
	args := make([]string, 0, len(r.Args)+1)
	args = append(args, r.Args...)
	args = append(args, prompt)

	cmd := exec.CommandContext(ctx, r.Command, args...)

	var stdout bytes.Buffer
	stderr := &cappedBuffer{limit: 10 * 1024}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("model command %s: %w: %s", r.Command, err, msg)
		}
		return "", fmt.Errorf("model command %s: %w", r.Command, err)
	}

	reply, err := DecodeReply(stdout.Bytes())
	if err != nil {
		return "", fmt.Errorf("model command %s: %w", r.Command, err)
	}
	return reply, nil
}

// cappedBuffer keeps at most limit bytes, dropping the rest.
type cappedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - b.buf.Len()
	if remaining > 0 {
		if len(p) > remaining {
			b.buf.Write(p[:remaining])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}
