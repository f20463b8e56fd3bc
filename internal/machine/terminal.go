package machine

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// Terminal is the host collaborator the VM talks to: raw character
// output for the `out` opcode and operator diagnostics, and line-at-a-time
// input (with history) for the `in` opcode and the control channel.
type Terminal interface {
	io.Writer
	ReadLine() (string, error)
	Close() error
}

// ReadlineTerminal adapts github.com/chzyer/readline to Terminal, giving
// the operator arrow-key history navigation across `in` prompts the same
// way an interactive console would.
type ReadlineTerminal struct {
	rl *readline.Instance
	w  io.Writer
}

// NewReadlineTerminal opens a readline-backed terminal. historyFile may be
// empty to disable cross-session history persistence.
func NewReadlineTerminal(prompt, historyFile string) (*ReadlineTerminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: historyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("machine: open terminal: %w", err)
	}
	return &ReadlineTerminal{rl: rl, w: rl.Stdout()}, nil
}

func (t *ReadlineTerminal) ReadLine() (string, error) {
	return t.rl.Readline()
}

func (t *ReadlineTerminal) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

func (t *ReadlineTerminal) Close() error {
	return t.rl.Close()
}
