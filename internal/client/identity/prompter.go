package identity

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/crossclip/internal/common"
	"golang.org/x/term"
)

// Prompter shows the consent URL and collects the pasted code.
type Prompter interface {
	Show(msg string)
	ReadCode(prompt string) (string, error)
}

// isTerminal and readPassword are seams for tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// TerminalPrompter hides the pasted code when Fd is a terminal and falls
// back to ReadLine otherwise (piped input, tests).
type TerminalPrompter struct {
	Out      io.Writer
	Fd       int
	ReadLine func() (string, bool)
}

func (p *TerminalPrompter) Show(msg string) {
	fmt.Fprintln(p.Out, msg)
}

func (p *TerminalPrompter) ReadCode(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)

	if isTerminal(p.Fd) {
		b, err := readPassword(p.Fd)
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("read code: %w", err)
		}
		defer common.WipeByteArray(b)
		return strings.TrimSpace(string(b)), nil
	}

	if p.ReadLine == nil {
		return "", errors.New("no input available")
	}
	line, ok := p.ReadLine()
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}
