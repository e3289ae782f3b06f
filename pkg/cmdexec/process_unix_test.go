//go:build unix

package cmdexec

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKillProcGroup tests the behavior of killProcGroup.
//
// It verifies:
//   - Nil command process returns nil error
//   - Running processes are killed successfully
//   - Exited processes return an error
func TestKillProcGroup(t *testing.T) {
	t.Run("nil command returns nil", func(t *testing.T) {
		assert.NoError(t, killProcGroup(&exec.Cmd{}))
	})

	t.Run("kills running process", func(t *testing.T) {
		cmd := exec.Command("sleep", "60")
		setProcGroup(cmd)
		require.NoError(t, cmd.Start())
		time.Sleep(50 * time.Millisecond)

		assert.NoError(t, killProcGroup(cmd))
		_ = cmd.Wait()
	})

	t.Run("error on exited process", func(t *testing.T) {
		cmd := exec.Command("true")
		setProcGroup(cmd)
		require.NoError(t, cmd.Run())
		assert.Error(t, killProcGroup(cmd))
	})
}

// TestSetProcGroup tests that the process group attribute is set.
func TestSetProcGroup(t *testing.T) {
	cmd := exec.Command("true")
	assert.Nil(t, cmd.SysProcAttr)

	setProcGroup(cmd)
	require.NotNil(t, cmd.SysProcAttr)
	assert.True(t, cmd.SysProcAttr.Setpgid)
}
