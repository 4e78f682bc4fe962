//go:generate mockgen -source=exec.go -destination=mocks/mock_exec.go -package=mocks

package harness

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

// waitDelay bounds how long Wait keeps copying output after the process
// was killed, in case a grandchild still holds the pipe open.
const waitDelay = 5 * time.Second

// childEnvBlocked lists variables not passed to children. A child must write
// its result file into its working directory, where the harness reads it.
var childEnvBlocked = []string{"FIBBENCH_OUTPUT_DIR"}

func childEnv(environ []string) []string {
	env := make([]string, 0, len(environ))
next:
	for _, kv := range environ {
		for _, key := range childEnvBlocked {
			if strings.HasPrefix(kv, key+"=") {
				continue next
			}
		}
		env = append(env, kv)
	}
	return env
}

// CommandRunner runs a command in dir and calls onLine for every line the
// command writes to stdout or stderr, in order of arrival.
type CommandRunner interface {
	Run(ctx context.Context, dir string, argv []string, onLine func(string)) error
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

// Run starts argv in dir with stdout and stderr merged into one pipe. One
// goroutine scans the pipe while another waits for the process to exit and
// then closes the pipe's write end, so every line is delivered before Run
// returns. When ctx ends before the process exits, the returned error wraps
// ctx.Err().
func (ExecRunner) Run(ctx context.Context, dir string, argv []string, onLine func(string)) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = childEnv(os.Environ())
	cmd.WaitDelay = waitDelay

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return apperrors.WrapError(err, "start %s", argv[0])
	}

	var g errgroup.Group
	g.Go(func() error {
		sc := bufio.NewScanner(pr)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			onLine(sc.Text())
		}
		// Keep draining so the child never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, pr)
		return sc.Err()
	})
	g.Go(func() error {
		err := cmd.Wait()
		pw.Close()
		if err != nil && ctx.Err() != nil {
			// Killed by the context: report why, keep the exit status in the text.
			return apperrors.WrapError(ctx.Err(), "%s: %v", argv[0], err)
		}
		return apperrors.WrapError(err, "%s", argv[0])
	})
	return g.Wait()
}
