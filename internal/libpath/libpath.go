// Package libpath collects the directories holding shared libraries built in
// the current invocation and injects them into a child process environment so
// that freshly linked test binaries can find them.
package libpath

import (
	"strings"

	"github.com/AndreyAkinshin/unitrun/internal/graph"
)

// Set is an ordered set of directories. The first insertion of a directory
// fixes its position.
type Set struct {
	dirs []string
	seen map[string]struct{}
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add appends dir unless it is already present. It reports whether dir was added.
func (s *Set) Add(dir string) bool {
	if _, ok := s.seen[dir]; ok {
		return false
	}
	s.seen[dir] = struct{}{}
	s.dirs = append(s.dirs, dir)
	return true
}

// Dirs returns the directories in first-seen order.
func (s *Set) Dirs() []string {
	return append([]string(nil), s.dirs...)
}

// Len returns the number of directories.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dirs)
}

// Collect returns the output directory of every target that performs a link
// step, deduplicated in first-seen order.
func Collect(targets []*graph.Target) *Set {
	set := NewSet()
	for _, t := range targets {
		if dir, ok := t.Link.OutputDir(); ok {
			set.Add(dir)
		}
	}
	return set
}

// Variables returns the environment variables that the dynamic loader of goos
// consults. Apple systems get both loader variables because a test may have
// been linked to rely on either of them.
func Variables(goos string) []string {
	switch goos {
	case "windows":
		return []string{"PATH"}
	case "darwin", "ios":
		return []string{"DYLD_LIBRARY_PATH", "LD_LIBRARY_PATH"}
	default:
		return []string{"LD_LIBRARY_PATH"}
	}
}

func listSeparator(goos string) string {
	if goos == "windows" {
		return ";"
	}
	return ":"
}

// Environ returns a copy of environ in which the loader variables of goos
// start with the directories of set. Existing values are kept as a suffix.
// An empty set returns environ unchanged.
func Environ(set *Set, environ []string, goos string) []string {
	env := append([]string(nil), environ...)
	if set.Len() == 0 {
		return env
	}

	sep := listSeparator(goos)
	prefix := strings.Join(set.dirs, sep)
	for _, name := range Variables(goos) {
		env = prepend(env, name, prefix, sep, goos == "windows")
	}
	return env
}

// prepend puts prefix in front of the value of name. Windows variable names
// are case-insensitive, so "Path" is updated in place there.
func prepend(env []string, name, prefix, sep string, foldCase bool) []string {
	for i, kv := range env {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if key != name && !(foldCase && strings.EqualFold(key, name)) {
			continue
		}
		if value == "" {
			env[i] = key + "=" + prefix
		} else {
			env[i] = key + "=" + prefix + sep + value
		}
		return env
	}
	return append(env, name+"="+prefix)
}
