package plugin

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Skpow1234/passkit/internal/util"
)

type execPass struct {
	path string
	arg  string
}

// Run pipes in through the plugin and returns its stdout.
func (p *execPass) Run(ctx context.Context, in []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, p.path, "run", "--pass", p.arg)
	cmd.Stdin = bytes.NewReader(in)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%w: %s --pass %s: %w: %s", util.ErrPluginFailed, p.path, p.arg, err, msg)
		}
		return nil, fmt.Errorf("%w: %s --pass %s: %w", util.ErrPluginFailed, p.path, p.arg, err)
	}
	return stdout.Bytes(), nil
}
