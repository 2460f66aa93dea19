package debloat

import (
	"context"

	"github.com/rs/zerolog"
)

// PackageManager is the subset of the adb client the runner needs.
type PackageManager interface {
	PackageInstalled(ctx context.Context, serial, pkg string) (bool, error)
	UninstallForUser(ctx context.Context, serial, pkg string) error
}

// Status is what happened to one package.
type Status string

const (
	Removed      Status = "removed"
	NotInstalled Status = "not_installed"
	Skipped      Status = "skipped"
)

// Outcome records the result for one package.
type Outcome struct {
	Package Package `json:"package"`
	Status  Status  `json:"status"`
	Error   string  `json:"error,omitempty"`
}

// Result summarizes a debloat run on one device.
type Result struct {
	DeviceSerial string    `json:"deviceSerial"`
	Removed      int       `json:"removed"`
	NotInstalled int       `json:"notInstalled"`
	Skipped      int       `json:"skipped"`
	Outcomes     []Outcome `json:"outcomes"`
}

// Runner removes packages from a device.
type Runner struct {
	PM  PackageManager
	Log zerolog.Logger
	// OnOutcome, if set, is called after each package is handled.
	OnOutcome func(Outcome)
}

// Run handles pkgs in order. A failure on one package is recorded and the
// run moves on; only context cancellation stops it early.
func (r *Runner) Run(ctx context.Context, serial string, pkgs []Package) Result {
	result := Result{DeviceSerial: serial}
	for _, p := range pkgs {
		if ctx.Err() != nil {
			break
		}
		o := r.handle(ctx, serial, p)
		switch o.Status {
		case Removed:
			result.Removed++
		case NotInstalled:
			result.NotInstalled++
		case Skipped:
			result.Skipped++
		}
		result.Outcomes = append(result.Outcomes, o)
		if r.OnOutcome != nil {
			r.OnOutcome(o)
		}
	}
	r.Log.Info().
		Str("serial", serial).
		Int("removed", result.Removed).
		Int("not_installed", result.NotInstalled).
		Int("skipped", result.Skipped).
		Msg("debloat finished")
	return result
}

func (r *Runner) handle(ctx context.Context, serial string, p Package) Outcome {
	installed, err := r.PM.PackageInstalled(ctx, serial, p.Package)
	if err != nil {
		r.Log.Warn().Err(err).Str("package", p.Package).Msg("check failed")
		return Outcome{Package: p, Status: Skipped, Error: err.Error()}
	}
	if !installed {
		return Outcome{Package: p, Status: NotInstalled}
	}
	if err := r.PM.UninstallForUser(ctx, serial, p.Package); err != nil {
		r.Log.Warn().Err(err).Str("package", p.Package).Msg("uninstall failed")
		return Outcome{Package: p, Status: Skipped, Error: err.Error()}
	}
	r.Log.Info().Str("package", p.Package).Msg("removed")
	return Outcome{Package: p, Status: Removed}
}
