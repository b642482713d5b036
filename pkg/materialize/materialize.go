// Package materialize turns a dotfiles source tree into destination
// state under a target user's home. Two strategies exist: per-category
// symlink placement and a full synchronize-with-deletion copy. The
// target account must already exist; homeset never creates users.
package materialize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/homeset/pkg/errors"
	"github.com/arthur-debert/homeset/pkg/execute"
	"github.com/arthur-debert/homeset/pkg/logging"
	"github.com/arthur-debert/homeset/pkg/paths"
	"github.com/arthur-debert/homeset/pkg/report"
)

// Strategy selects how dotfiles are applied
type Strategy string

const (
	// StrategyLink places per-category symlinks
	StrategyLink Strategy = "link"

	// StrategyCopy mirrors the whole source tree into .config
	StrategyCopy Strategy = "copy"
)

// ParseStrategy converts a config string into a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyLink, StrategyCopy:
		return Strategy(s), nil
	default:
		return "", errors.Newf(errors.ErrConfigValid, "unknown strategy %q (want link or copy)", s)
	}
}

// Options is the explicit configuration for one materialization run.
// It is constructed once at startup and passed in; the materializer
// reads no ambient state.
type Options struct {
	SourceRoot string
	TargetHome string
	TargetUser string
	Strategy   Strategy
	DryRun     bool
}

// Materializer applies a dotfiles tree to a target home
type Materializer struct {
	opts   Options
	paths  *paths.Paths
	exec   *execute.Executor
	owner  Owner
	logger zerolog.Logger
}

// New creates a Materializer with OS-backed ownership handling
func New(opts Options) (*Materializer, error) {
	return NewWithOwner(opts, NewOSOwner())
}

// NewWithOwner creates a Materializer with a custom Owner, used by tests
func NewWithOwner(opts Options, owner Owner) (*Materializer, error) {
	p, err := paths.New(opts.TargetHome, opts.TargetUser)
	if err != nil {
		return nil, err
	}

	allowed := append(p.OwnedRoots(),
		filepath.Dir(p.AvatarIconPath()), filepath.Dir(p.AvatarDescriptorPath()))

	return &Materializer{
		opts:   opts,
		paths:  p,
		exec:   execute.New(opts.DryRun, allowed...),
		owner:  owner,
		logger: logging.GetLogger("materialize"),
	}, nil
}

// Materialize applies the source tree to the target home using the
// configured strategy. A missing source root is a reported no-op; a
// missing target home is fatal because it means the target account was
// never created. Individual category or sync failures are recorded in
// the report and do not abort the run.
func (m *Materializer) Materialize(ctx context.Context) (*report.Report, error) {
	done := logging.LogOperationStart(m.logger, fmt.Sprintf("materialize-%s", m.opts.Strategy))
	defer done()

	rep := report.New(fmt.Sprintf("materialize (%s)", m.opts.Strategy))

	// The target home check comes first: a missing home means the user
	// account was never created, and a missing source must not mask that.
	if info, err := os.Stat(m.paths.TargetHome()); err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrTargetMissing,
			"target home %s does not exist; was the user account created?", m.paths.TargetHome())
	}

	srcInfo, err := os.Stat(m.opts.SourceRoot)
	switch {
	case err != nil:
		m.logger.Warn().Str("source", m.opts.SourceRoot).Msg("Source root missing, nothing to materialize")
		rep.AddSkipped("source", fmt.Sprintf("source root %s does not exist", m.opts.SourceRoot))
		return rep, nil
	case !srcInfo.IsDir():
		m.logger.Warn().Str("source", m.opts.SourceRoot).Msg("Source root is not a directory, nothing to materialize")
		rep.AddSkipped("source", fmt.Sprintf("source root %s is not a directory", m.opts.SourceRoot))
		return rep, nil
	}

	switch m.opts.Strategy {
	case StrategyLink:
		m.linkAll(ctx, rep)
	case StrategyCopy:
		m.syncAll(ctx, rep)
	default:
		return nil, errors.Newf(errors.ErrConfigValid, "unknown strategy %q", m.opts.Strategy)
	}

	m.fixOwnership(rep)

	return rep, nil
}

// fixOwnership recursively hands the managed trees to the target user.
// Failures are reported, not fatal: a partially chowned tree is still
// usable and the step is idempotent on re-run.
func (m *Materializer) fixOwnership(rep *report.Report) {
	const stepName = "ownership"

	if m.opts.DryRun {
		rep.AddSkipped(stepName, "dry run")
		return
	}

	uid, gid, err := m.owner.Lookup(m.paths.TargetUser())
	if err != nil {
		m.logger.Warn().Err(err).Str("user", m.paths.TargetUser()).Msg("Cannot resolve target user")
		rep.AddFailed(stepName, err)
		return
	}

	for _, root := range m.paths.OwnedRoots() {
		if err := m.owner.ChownTree(root, uid, gid); err != nil {
			m.logger.Warn().Err(err).Str("root", root).Msg("Ownership fixup failed")
			rep.AddFailed(stepName, err)
			return
		}
	}
	rep.AddSuccess(stepName)
}
