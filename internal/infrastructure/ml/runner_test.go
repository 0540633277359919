package ml

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/infrastructure/config"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newRunner(t *testing.T, body string, timeout time.Duration) *ScriptRunner {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return NewScriptRunner(config.MLConfig{
		Interpreter: "sh",
		Script:      writeScript(t, body),
		Timeout:     timeout,
	}, zap.NewNop())
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		Gender:         profile.GenderFemale,
		DietPreference: profile.DietVegetarian,
		ActivityLevel:  profile.ActivityModerate,
		Conditions:     []string{"Diabetes"},
	}
}

func TestScriptRunner_Predict(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsStdout", func(t *testing.T) {
		r := newRunner(t, `echo '[{"meal":"poha"}]'`, time.Second*5)

		out, err := r.Predict(ctx, testProfile())
		require.NoError(t, err)
		assert.JSONEq(t, `[{"meal":"poha"}]`, string(out))
	})

	t.Run("ProfileIsPassedOnStdin", func(t *testing.T) {
		r := newRunner(t, `cat`, time.Second*5)

		out, err := r.Predict(ctx, testProfile())
		require.NoError(t, err)

		var echoed map[string]interface{}
		require.NoError(t, json.Unmarshal(out, &echoed))
		assert.Equal(t, "Vegetarian", echoed["dietPreference"])
	})

	t.Run("NonZeroExit_ShouldFail", func(t *testing.T) {
		r := newRunner(t, `echo '{}'; exit 3`, time.Second*5)

		_, err := r.Predict(ctx, testProfile())
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeMLScriptFailed))
		assert.Contains(t, err.Error(), "exit code 3")
	})

	t.Run("StderrOutput_ShouldFail", func(t *testing.T) {
		r := newRunner(t, `echo '{}'; echo 'warning: model stale' >&2`, time.Second*5)

		_, err := r.Predict(ctx, testProfile())
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeMLScriptFailed))
		assert.Contains(t, err.Error(), "model stale")
	})

	t.Run("Timeout_ShouldFail", func(t *testing.T) {
		r := newRunner(t, `exec sleep 5`, 100*time.Millisecond)

		start := time.Now()
		_, err := r.Predict(ctx, testProfile())
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeMLScriptFailed))
		assert.Less(t, time.Since(start), 4*time.Second)
	})

	t.Run("MissingInterpreter_ShouldFail", func(t *testing.T) {
		r := NewScriptRunner(config.MLConfig{
			Interpreter: filepath.Join(t.TempDir(), "no-such-python"),
			Script:      "model.py",
		}, zap.NewNop())

		_, err := r.Predict(ctx, testProfile())
		assert.True(t, apperrors.Is(err, apperrors.CodeMLScriptFailed))
	})
}
