package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user a question and returns the line they typed.
type Prompter interface {
	Prompt(message string) (string, error)
}

// PrompterFunc adapts a plain function to Prompter.
type PrompterFunc func(message string) (string, error)

// Prompt calls f.
func (f PrompterFunc) Prompt(message string) (string, error) { return f(message) }

// FixedAnswer answers every prompt with the same text.
type FixedAnswer string

// Prompt ignores the message and returns the fixed answer.
func (a FixedAnswer) Prompt(string) (string, error) { return string(a), nil }

// ConsolePrompter writes the question to out and blocks until a line arrives on in.
// There is no timeout, so it only suits interactive use.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompter wires a prompter to the given streams, usually os.Stdin and os.Stdout.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out}
}

// Prompt prints message and returns the next line without its line ending.
// A final line without a newline is still returned.
func (c *ConsolePrompter) Prompt(message string) (string, error) {
	if _, err := fmt.Fprint(c.out, message); err != nil {
		return "", err
	}
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm treats only "y" (any case) as consent; a nil prompter or a failed read declines.
func confirm(p Prompter, message string) bool {
	if p == nil {
		return false
	}
	answer, err := p.Prompt(message)
	if err != nil {
		pkgLog.Warn("confirmation prompt failed", "error", err)
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
