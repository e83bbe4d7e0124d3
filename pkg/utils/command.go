package utils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gl2gh/gl2gh/pkg/logger"
)

// RedactedMask replaces secrets in anything the runner surfaces.
const RedactedMask = "***"

// Redactor masks secrets in command lines and captured output.
type Redactor func(text string) string

// NewRedactor returns a Redactor replacing every non-empty secret with
// RedactedMask.
func NewRedactor(secrets ...string) Redactor {
	masked := make([]string, 0, len(secrets))
	for _, secret := range secrets {
		if secret != "" {
			masked = append(masked, secret)
		}
	}
	return func(text string) string {
		for _, secret := range masked {
			text = strings.ReplaceAll(text, secret, RedactedMask)
		}
		return text
	}
}

// RunOptions describes a single external command invocation.
type RunOptions struct {
	Name string
	Args []string
	// Dir is the working directory, empty means the current directory.
	Dir string
	// Env entries are appended to the inherited environment.
	Env map[string]string
}

// Runner executes external commands and returns their combined output.
type Runner interface {
	Run(ctx context.Context, opts RunOptions) (string, error)
}

// ExecRunner runs commands through os/exec, streaming combined stdout and
// stderr line by line through the logger. Every streamed line, the echoed
// command, and the returned output are passed through the redactor first.
type ExecRunner struct {
	redact Redactor
}

// NewExecRunner creates a runner masking output with the given redactor.
func NewExecRunner(redact Redactor) *ExecRunner {
	if redact == nil {
		redact = NewRedactor()
	}
	return &ExecRunner{redact: redact}
}

// Run executes the command, blocking until it exits. The returned string is
// the redacted combined output; on a non-zero exit it is also embedded in the
// returned error for diagnostics.
func (r *ExecRunner) Run(ctx context.Context, opts RunOptions) (string, error) {
	display := r.redact(strings.TrimSpace(opts.Name + " " + strings.Join(opts.Args, " ")))
	logger.Debug("Executing command", "cmd", display, "dir", opts.Dir)

	cmd := exec.CommandContext(ctx, opts.Name, opts.Args...)
	cmd.Dir = opts.Dir
	cmd.Env = mergeEnv(os.Environ(), opts.Env)

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	var output strings.Builder
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := r.redact(scanner.Text())
			output.WriteString(line)
			output.WriteByte('\n')
			logger.Debug(line)
		}
	}()

	err := cmd.Run()
	pw.Close()
	<-done

	if err != nil {
		return output.String(), fmt.Errorf("command failed: %s: %w\nOutput: %s", display, err, output.String())
	}
	return output.String(), nil
}

// mergeEnv appends extra variables to base; later entries win in os/exec.
func mergeEnv(base []string, extra map[string]string) []string {
	env := base
	for key, value := range extra {
		env = append(env, key+"="+value)
	}
	return env
}

// CleanupDirectory removes a working directory tree.
func CleanupDirectory(dir string) error {
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clean up directory: %w", err)
	}
	return nil
}
