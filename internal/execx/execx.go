package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

var ErrNotFound = exec.ErrNotFound

// ExternalCommandError describes a command that ran but exited unsuccessfully
type ExternalCommandError struct {
	Message  string
	ExitCode int
	StdErr   string
}

func (e *ExternalCommandError) Error() string {
	return e.Message
}

// Command describes a single external tool invocation
type Command struct {
	Name string
	Args []string
	Dir  string

	// Interactive connects the command to the terminal instead of capturing stdout
	Interactive bool
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes external tools
type Runner interface {
	// Run executes the command and returns its stdout
	Run(ctx context.Context, c Command) (string, error)

	// LookPath reports the location of a tool on PATH
	LookPath(name string) (string, error)
}

// ExecRunner runs commands as real subprocesses
type ExecRunner struct{}

// NewRunner creates a runner backed by os/exec
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// LookPath implements Runner
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner
func (r *ExecRunner) Run(ctx context.Context, c Command) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	// forward the current environment
	cmd.Env = os.Environ()

	var stdoutBuf, stderrBuf bytes.Buffer
	if c.Interactive {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	logrus.Debugf("Exec: [%s]", c)

	err := cmd.Run()
	if err != nil {
		var exerr *exec.ExitError
		if errors.As(err, &exerr) {
			return stdoutBuf.String(), &ExternalCommandError{
				Message:  fmt.Sprintf("%s exited unsuccessfully: %d", c.Name, exerr.ExitCode()),
				ExitCode: exerr.ExitCode(),
				StdErr:   stderrBuf.String(),
			}
		}

		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrNotFound
		}

		return "", &ExternalCommandError{
			Message: fmt.Sprintf("%s failed to run: %v", c.Name, err),
			StdErr:  stderrBuf.String(),
		}
	}

	return stdoutBuf.String(), nil
}

// Lines splits command output into trimmed, non-empty lines
func Lines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
