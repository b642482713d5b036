// Package steps runs an explicit ordered list of named provisioning
// steps. The original provisioning flow was a shell script whose
// ordering and error tolerance were implicit; here the sequence, the
// preconditions and the best-effort semantics are visible in code and
// every outcome lands in the run report.
package steps

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/homeset/pkg/errors"
	"github.com/arthur-debert/homeset/pkg/logging"
	"github.com/arthur-debert/homeset/pkg/report"
)

// Step is one named provisioning action
type Step struct {
	// Name identifies the step in the report
	Name string

	// Description is a human-readable summary
	Description string

	// Precondition, when set, is checked before Run. A returned error
	// skips the step with that reason; it does not fail the run.
	Precondition func(ctx context.Context) error

	// Run performs the step
	Run func(ctx context.Context) error

	// BestEffort steps record their failure and let the run continue.
	// A non-best-effort failure aborts the remaining steps.
	BestEffort bool
}

// Runner executes steps in declared order
type Runner struct {
	title  string
	steps  []Step
	logger zerolog.Logger
}

// NewRunner creates a runner for the given ordered steps
func NewRunner(title string, steps ...Step) *Runner {
	return &Runner{
		title:  title,
		steps:  steps,
		logger: logging.GetLogger("steps"),
	}
}

// Run executes every step in order. The returned report always covers
// the steps that were reached; the error is non-nil only when a
// non-best-effort step failed and aborted the run.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	rep := report.New(r.title)

	for _, step := range r.steps {
		if ctx.Err() != nil {
			return rep, ctx.Err()
		}

		if step.Precondition != nil {
			if err := step.Precondition(ctx); err != nil {
				r.logger.Info().Str("step", step.Name).Err(err).Msg("Precondition not met, skipping")
				rep.AddSkipped(step.Name, err.Error())
				continue
			}
		}

		r.logger.Info().Str("step", step.Name).Msg("Running step")
		if err := step.Run(ctx); err != nil {
			if step.BestEffort {
				r.logger.Warn().Err(err).Str("step", step.Name).Msg("Step failed, continuing")
				rep.AddFailed(step.Name, err)
				continue
			}
			r.logger.Error().Err(err).Str("step", step.Name).Msg("Step failed, aborting")
			rep.AddFailed(step.Name, err)
			return rep, errors.Wrapf(err, errors.ErrStepFailed, "step %q failed", step.Name)
		}
		rep.AddSuccess(step.Name)
	}

	return rep, nil
}
