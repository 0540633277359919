// Package ml runs the external meal recommendation script
package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/infrastructure/config"
	"github.com/nutrimate/v1/internal/ports/outbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

const (
	defaultInterpreter = "python3"
	defaultTimeout     = 30 * time.Second
	maxDetailBytes     = 2048
)

// ScriptRunner feeds a profile to the model script on stdin and returns
// whatever it prints on stdout. Any stderr output counts as failure.
type ScriptRunner struct {
	interpreter string
	script      string
	timeout     time.Duration
	logger      *zap.Logger
}

// NewScriptRunner creates a runner from the ml config section
func NewScriptRunner(cfg config.MLConfig, logger *zap.Logger) *ScriptRunner {
	r := &ScriptRunner{
		interpreter: cfg.Interpreter,
		script:      cfg.Script,
		timeout:     cfg.Timeout,
		logger:      logger.Named("ml-runner"),
	}
	if r.interpreter == "" {
		r.interpreter = defaultInterpreter
	}
	if r.timeout <= 0 {
		r.timeout = defaultTimeout
	}
	return r
}

// Predict runs the script once for p
func (r *ScriptRunner) Predict(ctx context.Context, p *profile.Profile) ([]byte, error) {
	input, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.interpreter, r.script)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	log := r.logger.With(
		zap.String("script", r.script),
		zap.Duration("duration", duration),
	)

	switch {
	case ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		log.Error("Meal model timed out", zap.Duration("timeout", r.timeout))
		return nil, apperrors.NewMLScriptError(fmt.Sprintf("script timed out after %s", r.timeout), ctx.Err())
	case runErr != nil:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			log.Error("Meal model exited with error",
				zap.Int("exit_code", exitErr.ExitCode()),
				zap.String("stderr", truncate(stderr.String())))
			return nil, apperrors.NewMLScriptError(
				fmt.Sprintf("exit code %d: %s", exitErr.ExitCode(), truncate(stderr.String())), runErr)
		}
		log.Error("Could not execute meal model", zap.Error(runErr))
		return nil, apperrors.NewMLScriptError("could not execute the ML script", runErr)
	case stderr.Len() > 0:
		log.Error("Meal model wrote to stderr", zap.String("stderr", truncate(stderr.String())))
		return nil, apperrors.NewMLScriptError(truncate(stderr.String()), errors.New("unexpected stderr output"))
	}

	log.Debug("Meal model finished", zap.Int("output_bytes", stdout.Len()))
	return bytes.TrimSpace(stdout.Bytes()), nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxDetailBytes {
		return s[:maxDetailBytes] + "..."
	}
	return s
}

var _ outbound.MealPredictor = (*ScriptRunner)(nil)
