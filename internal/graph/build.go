package graph

import (
	"sync"

	"github.com/AndreyAkinshin/unitrun/internal/config"
)

// Build commands known to unitrun.
const (
	CommandBuild = config.CommandBuild
	CommandCheck = config.CommandCheck
)

// Build is the root context of one build invocation: the graph, the command
// that started it, and the hooks to call once every build step has finished.
type Build struct {
	Graph   *Graph
	Command string

	commands map[string]bool

	mu       sync.Mutex
	postFuns []func()
}

// NewBuild creates the context for running command over g. The activation
// table marks command as active; check also activates build because it
// consumes built artifacts.
func NewBuild(g *Graph, command string) *Build {
	commands := map[string]bool{
		CommandBuild: false,
		CommandCheck: false,
	}
	commands[command] = true
	if command == CommandCheck {
		commands[CommandBuild] = true
	}
	return &Build{
		Graph:    g,
		Command:  command,
		commands: commands,
	}
}

// Active reports whether command is active in this invocation.
func (b *Build) Active(command string) bool {
	return b.commands[command]
}

// Commands returns a copy of the activation table.
func (b *Build) Commands() map[string]bool {
	out := make(map[string]bool, len(b.commands))
	for k, v := range b.commands {
		out[k] = v
	}
	return out
}

// AddPostFun registers fn to run after the build completes.
func (b *Build) AddPostFun(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.postFuns = append(b.postFuns, fn)
}

// RunPostFuns calls the registered hooks in registration order.
func (b *Build) RunPostFuns() {
	b.mu.Lock()
	funs := append([]func(){}, b.postFuns...)
	b.mu.Unlock()

	for _, fn := range funs {
		fn()
	}
}
