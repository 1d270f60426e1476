package cli

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Skpow1234/passkit/internal/config"
	"github.com/Skpow1234/passkit/internal/util"
)

const envPluginConflictChild = "PASSKIT_TEST_PLUGIN_CONFLICT_CHILD"

const shadowSHA256Plugin = `#!/bin/sh
if [ "$1" = "--passkit-list" ]; then
  echo '[{"arg":"sha256","name":"Plugin SHA-256"}]'
  exit 0
fi
exit 3
`

// TestExecute_PluginReusingBuiltinArgExits runs Execute in a child process
// whose plugin directory holds a plugin claiming the built-in sha256.
func TestExecute_PluginReusingBuiltinArgExits(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell-script plugins need a POSIX shell")
	}
	if testing.Short() {
		t.Skip("spawns a subprocess")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shadow"), []byte(shadowSHA256Plugin), 0o755); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExecuteChild$")
	cmd.Env = append(os.Environ(),
		envPluginConflictChild+"=1",
		config.EnvConfigPath+"="+filepath.Join(t.TempDir(), "none.yaml"),
		config.EnvProfile+"=",
		config.EnvPluginDir+"="+dir,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("child ended with %v, want a non-zero exit", err)
	}
	if code := exitErr.ExitCode(); code != util.ExitDuplicatePass {
		t.Errorf("exit code = %d, want %d\n%s", code, util.ExitDuplicatePass, stderr.String())
	}
	for _, s := range []string{"--sha256", "SHA-256 digest", "Plugin SHA-256"} {
		if !strings.Contains(stderr.String(), s) {
			t.Errorf("stderr should mention %q:\n%s", s, stderr.String())
		}
	}
}

func TestExecuteChild(t *testing.T) {
	if os.Getenv(envPluginConflictChild) != "1" {
		t.Skip("only runs inside TestExecute_PluginReusingBuiltinArgExits")
	}
	Execute()
	t.Fatal("Execute should have exited on the conflicting plugin")
}
