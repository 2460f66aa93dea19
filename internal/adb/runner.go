package adb

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single invocation unless overridden.
const DefaultTimeout = 30 * time.Second

// Invocation describes one finished process call.
type Invocation struct {
	ID        string
	Program   string
	Args      []string
	ExitCode  int
	Err       string
	StartedAt time.Time
	Duration  time.Duration
}

// Recorder receives every invocation after it finishes.
type Recorder interface {
	RecordInvocation(ctx context.Context, inv Invocation) error
}

// Option configures a client.
type Option func(*runner)

// WithTimeout sets the per-invocation timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *runner) { r.timeout = d }
}

// WithLogger sets the logger used for invocation tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(r *runner) { r.log = l }
}

// WithRecorder sets where finished invocations are recorded.
func WithRecorder(rec Recorder) Option {
	return func(r *runner) { r.rec = rec }
}

// runner executes one external binary and classifies its failures.
type runner struct {
	path    string
	timeout time.Duration
	log     zerolog.Logger
	rec     Recorder
}

func newRunner(path string, opts []Option) runner {
	r := runner{
		path:    path,
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&r)
	}
	r.log = r.log.With().Str("component", filepath.Base(path)).Logger()
	return r
}

// ready stats the executable.
func (r *runner) ready() bool {
	if r.path == "" {
		return false
	}
	info, err := os.Stat(r.path)
	return err == nil && !info.IsDir()
}

// run spawns the binary and returns its stdout. The executable is checked
// before spawning.
func (r *runner) run(ctx context.Context, args []string) (string, error) {
	if !r.ready() {
		return "", &SpawnError{Path: r.path, Err: ErrNotInstalled}
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.path, args...)
	// adb start-server leaves a daemon behind; don't wait on inherited pipes forever.
	cmd.WaitDelay = 2 * time.Second
	hideWindow(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	took := time.Since(start)

	out := strings.ToValidUTF8(stdout.String(), "�")
	errText := strings.ToValidUTF8(stderr.String(), "�")

	inv := Invocation{
		ID:        uuid.NewString(),
		Program:   filepath.Base(r.path),
		Args:      args,
		StartedAt: start,
		Duration:  took,
	}
	err = r.classify(ctx, runCtx, args, err, errText)
	if err != nil {
		inv.Err = err.Error()
		inv.ExitCode = -1
		var ee *ExitError
		if errors.As(err, &ee) {
			inv.ExitCode = ee.Code
		}
	}
	r.record(ctx, inv)

	r.log.Debug().Err(err).Strs("args", args).Dur("took", took).Str("id", inv.ID).Msg("exec")
	if err != nil {
		return "", err
	}
	return out, nil
}

func (r *runner) classify(parent, runCtx context.Context, args []string, err error, stderr string) error {
	if err == nil {
		return nil
	}
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Args: args, After: r.timeout}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Args: args, Code: exitErr.ExitCode(), Stderr: stderr}
	}
	return &SpawnError{Path: r.path, Err: err}
}

func (r *runner) record(ctx context.Context, inv Invocation) {
	if r.rec == nil {
		return
	}
	// Recording must not fail the call itself.
	if err := r.rec.RecordInvocation(context.WithoutCancel(ctx), inv); err != nil {
		r.log.Warn().Err(err).Msg("record invocation")
	}
}
