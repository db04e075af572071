package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtw/internal/apperror"
)

func TestScriptForEachShell(t *testing.T) {
	for _, name := range []string{"bash", "zsh", "BASH", " zsh "} {
		script, err := Script(name)
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(script, Marker), name)
		assert.Contains(t, script, "wtw() {")
		assert.Contains(t, script, "command wtw")
	}

	for _, name := range []string{"pwsh", "powershell"} {
		script, err := Script(name)
		require.NoError(t, err, name)
		assert.Contains(t, script, "function wtw")
		assert.Contains(t, script, "Register-ArgumentCompleter")
	}
}

func TestScriptUnsupportedShell(t *testing.T) {
	_, err := Script("fish")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUser))
	assert.Equal(t, "unsupported shell: fish (supported: bash, pwsh, zsh)", err.Error())
}

// TestPosixScriptChangesDirectory sources the bash script against a stub
// wtw binary that prints a directory for "cd".
func TestPosixScriptChangesDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	bash, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not available")
	}

	bin := t.TempDir()
	dest := t.TempDir()
	stub := "#!/bin/sh\nif [ \"$1\" = cd ]; then echo \"" + dest + "\"; else echo \"ran $* $WTP_SHELL_INTEGRATION\"; fi\n"
	require.NoError(t, os.WriteFile(filepath.Join(bin, "wtw"), []byte(stub), 0o755))

	script, err := Script("bash")
	require.NoError(t, err)

	cmd := exec.Command(bash, "--noprofile", "--norc", "-c", script+"\nwtw list\nwtw cd x && pwd -P")
	cmd.Env = append(os.Environ(), "PATH="+bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	resolved, err := filepath.EvalSymlinks(dest)
	require.NoError(t, err)
	assert.Equal(t, "ran list 1\n"+resolved+"\n", string(out))
}
