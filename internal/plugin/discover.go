// Package plugin registers passes provided by external executables.
//
// A plugin is any executable in the plugin directory that answers
//
//	<plugin> --passkit-list
//
// with a JSON array of {"arg": "...", "name": "..."} objects on stdout. Each
// entry becomes a pass. Running the pass executes
//
//	<plugin> run --pass <arg>
//
// with the artifact on stdin and reads the result from stdout.
package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/rs/zerolog"
)

// ListFlag is the argument a plugin must answer with its pass list.
const ListFlag = "--passkit-list"

// Listing is one entry of a plugin's pass list.
type Listing struct {
	Arg  string `json:"arg"`
	Name string `json:"name"`
}

// Discover scans dir for plugin executables and registers every pass they
// list, in directory order. Executables that fail to list are skipped.
// It returns the number of passes registered. A missing dir is not an error.
func Discover(dir string, reg *pass.Registry, logger zerolog.Logger) (int, error) {
	if dir == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read plugin dir: %w", err)
	}

	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if runtime.GOOS == "windows" && strings.ToLower(filepath.Ext(name)) != ".exe" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
			continue
		}
		path := filepath.Join(dir, name)
		listings, err := List(path)
		if err != nil {
			logger.Warn().Err(err).Str("plugin", path).Msg("skipping plugin")
			continue
		}
		for _, l := range listings {
			reg.Register(Descriptor(path, l))
			n++
		}
		logger.Debug().Str("plugin", path).Int("passes", len(listings)).Msg("plugin loaded")
	}
	return n, nil
}

// List asks the plugin at path for its passes.
func List(path string) ([]Listing, error) {
	cmd := exec.Command(path, ListFlag)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", path, ListFlag, err)
	}
	var listings []Listing
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(out))), &listings); err != nil {
		return nil, fmt.Errorf("%s %s output: %w", path, ListFlag, err)
	}
	return listings, nil
}

// Descriptor builds the pass descriptor for one listing of the plugin at
// path. A listing with an empty arg yields a descriptor that no option
// will admit.
func Descriptor(path string, l Listing) *pass.Descriptor {
	name := l.Name
	if name == "" {
		name = l.Arg + " (" + filepath.Base(path) + ")"
	}
	return &pass.Descriptor{
		Arg:  l.Arg,
		Name: name,
		New:  func() pass.Pass { return &execPass{path: path, arg: l.Arg} },
	}
}
