// Package execute runs planned filesystem operations through synthfs
// pipelines. One call to Execute is one pipeline; callers get failure
// isolation by executing independent batches separately.
package execute

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/homeset/pkg/errors"
	"github.com/arthur-debert/homeset/pkg/logging"
	"github.com/arthur-debert/homeset/pkg/paths"
)

// Executor executes planned operations using synthfs
type Executor struct {
	logger       zerolog.Logger
	dryRun       bool
	filesystem   synthfs.FileSystem
	allowedRoots []string
}

// New creates an executor. Operations targeting paths outside
// allowedRoots are rejected; an empty list disables the check.
func New(dryRun bool, allowedRoots ...string) *Executor {
	return &Executor{
		logger:       logging.GetLogger("execute"),
		dryRun:       dryRun,
		filesystem:   filesystem.NewOSFileSystem("/"),
		allowedRoots: allowedRoots,
	}
}

// Execute runs the given operations in order as one synthfs pipeline.
// Existing entries at symlink, copy and write destinations are removed
// first: materialization always overwrites.
func (e *Executor) Execute(ctx context.Context, ops []Operation) error {
	if len(ops) == 0 {
		return nil
	}

	if e.dryRun {
		e.logger.Info().Msg("Dry run mode - operations would be executed:")
		for _, op := range ops {
			e.logOperation(op)
		}
		return nil
	}

	for _, op := range ops {
		if err := e.validateTarget(op.Target); err != nil {
			return err
		}
		if op.Type != OperationCreateDir {
			e.removeExisting(op.Target)
		}
	}

	synthOps := make([]synthfs.Operation, 0, len(ops))
	for _, op := range ops {
		synthOp, err := e.convert(op)
		if err != nil {
			return err
		}
		synthOps = append(synthOps, synthOp)
	}

	pipeline := synthfs.NewMemPipeline()
	for _, op := range synthOps {
		if err := pipeline.Add(op); err != nil {
			return errors.Wrap(err, errors.ErrOpExecute, "failed to add operation to pipeline")
		}
	}

	executor := synthfs.NewExecutor()
	e.logger.Debug().Int("operationCount", len(synthOps)).Msg("Executing operations")

	result := executor.Run(ctx, pipeline, e.filesystem)
	if result.GetError() != nil {
		e.logger.Error().Err(result.GetError()).Msg("Pipeline execution failed")
		return errors.Wrap(result.GetError(), errors.ErrOpExecute, "failed to execute operations")
	}

	return nil
}

// removeExisting clears a pre-existing entry at a destination so that
// synthfs validation does not fail on it. The entry may be a populated
// directory, left behind when the strategy switches from copy to link,
// so removal is recursive; validateTarget has already confined the path
// to the managed roots. Removal errors are left for the operation
// itself to surface.
func (e *Executor) removeExisting(target string) {
	if _, err := os.Lstat(target); err != nil {
		return
	}
	e.logger.Debug().Str("target", target).Msg("Removing existing entry before overwrite")
	if err := os.RemoveAll(target); err != nil {
		e.logger.Warn().Err(err).Str("target", target).Msg("Failed to remove existing entry")
	}
}

func (e *Executor) validateTarget(target string) error {
	if target == "" {
		return errors.New(errors.ErrOpInvalid, "operation requires a target path")
	}
	if !filepath.IsAbs(target) {
		return errors.Newf(errors.ErrOpInvalid, "operation target must be absolute: %s", target)
	}
	if len(e.allowedRoots) == 0 {
		return nil
	}
	for _, root := range e.allowedRoots {
		if paths.IsUnder(root, target) {
			return nil
		}
	}
	return errors.Newf(errors.ErrOpInvalid, "operation target outside managed directories: %s", target)
}

func (e *Executor) convert(op Operation) (synthfs.Operation, error) {
	switch op.Type {
	case OperationCreateDir:
		return e.convertCreateDir(op)
	case OperationCreateSymlink:
		return e.convertCreateSymlink(op)
	case OperationCopyFile:
		return e.convertCopyFile(op)
	case OperationWriteFile:
		return e.convertWriteFile(op)
	default:
		return nil, errors.Newf(errors.ErrOpInvalid, "unsupported operation type: %s", op.Type)
	}
}

func (e *Executor) convertCreateDir(op Operation) (synthfs.Operation, error) {
	relPath, err := relToRoot(op.Target)
	if err != nil {
		return nil, err
	}

	mode := op.Mode
	if mode == 0 {
		mode = 0755
	}

	opID := core.OperationID(fmt.Sprintf("create-dir-%s", op.Target))
	createOp := operations.NewCreateDirectoryOperation(opID, relPath)
	createOp.SetItem(&directoryItem{path: relPath, mode: mode})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

func (e *Executor) convertCreateSymlink(op Operation) (synthfs.Operation, error) {
	if op.Source == "" {
		return nil, errors.New(errors.ErrOpInvalid, "symlink operation requires a source")
	}

	relPath, err := relToRoot(op.Target)
	if err != nil {
		return nil, err
	}
	relSource, err := relToRoot(op.Source)
	if err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("source", op.Source).
		Str("target", op.Target).
		Msg("Creating symlink operation")

	opID := core.OperationID(fmt.Sprintf("symlink-%s", op.Target))
	symlinkOp := operations.NewCreateSymlinkOperation(opID, relPath)
	symlinkOp.SetDescriptionDetail("target", relSource)
	symlinkOp.SetItem(&symlinkItem{path: relPath, target: relSource})

	return synthfs.NewOperationsPackageAdapter(symlinkOp), nil
}

func (e *Executor) convertCopyFile(op Operation) (synthfs.Operation, error) {
	if op.Source == "" {
		return nil, errors.New(errors.ErrOpInvalid, "copy operation requires a source")
	}

	relSource, err := relToRoot(op.Source)
	if err != nil {
		return nil, err
	}
	relTarget, err := relToRoot(op.Target)
	if err != nil {
		return nil, err
	}

	opID := core.OperationID(fmt.Sprintf("copy-%s-to-%s", filepath.Base(op.Source), op.Target))
	copyOp := operations.NewCopyOperation(opID, relTarget)
	copyOp.SetPaths(relSource, relTarget)

	return synthfs.NewOperationsPackageAdapter(copyOp), nil
}

func (e *Executor) convertWriteFile(op Operation) (synthfs.Operation, error) {
	relPath, err := relToRoot(op.Target)
	if err != nil {
		return nil, err
	}

	mode := op.Mode
	if mode == 0 {
		mode = 0644
	}

	opID := core.OperationID(fmt.Sprintf("write-file-%s", op.Target))
	createOp := operations.NewCreateFileOperation(opID, relPath)
	createOp.SetItem(&fileItem{path: relPath, content: op.Content, mode: mode})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

func (e *Executor) logOperation(op Operation) {
	event := e.logger.Info().
		Str("type", string(op.Type)).
		Str("target", op.Target)
	if op.Source != "" {
		event = event.Str("source", op.Source)
	}
	event.Msg("Would execute operation")
}

// relToRoot converts an absolute path to the root-relative form synthfs
// filesystems expect.
func relToRoot(path string) (string, error) {
	rel, err := filepath.Rel("/", path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrOpInvalid, "failed to convert path: %s", path)
	}
	return rel, nil
}
