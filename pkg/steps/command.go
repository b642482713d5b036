package steps

import (
	"context"
	"os/exec"

	"github.com/arthur-debert/homeset/pkg/errors"
	"github.com/arthur-debert/homeset/pkg/logging"
)

// NewCommandStep wraps an external command as a provisioning step.
// Output goes to the log; a non-zero exit is the step's failure.
func NewCommandStep(name, command string, args []string, bestEffort bool) Step {
	return Step{
		Name:        name,
		Description: command,
		BestEffort:  bestEffort,
		Run: func(ctx context.Context) error {
			logging.LogCommand(command, args)

			cmd := exec.CommandContext(ctx, command, args...)
			output, err := cmd.CombinedOutput()

			logger := logging.GetLogger("steps.command")
			if len(output) > 0 {
				logger.Debug().Str("command", command).Bytes("output", output).Msg("Command output")
			}
			if err != nil {
				return errors.Wrapf(err, errors.ErrStepCommand, "%s failed", command)
			}
			return nil
		},
	}
}
