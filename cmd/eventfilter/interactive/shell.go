package interactive

import (
	"context"
	"fmt"

	"github.com/chzyer/readline"
)

// Shell runs a Session on a readline terminal.
type Shell struct {
	session *Session
	rl      *readline.Instance
}

// NewShell creates a shell around a fresh session.
func NewShell() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "eventfilter> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{session: NewSession(), rl: rl}, nil
}

// Run starts the interactive command loop. It returns on exit, EOF or
// when ctx is cancelled.
func (sh *Shell) Run(ctx context.Context) {
	defer sh.rl.Close()

	printHelp(sh.rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := sh.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return
		}

		if sh.session.Execute(line, sh.rl.Stdout()) {
			return
		}
	}
}
