package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Prompter reads answers from a command's input. Passwords are read
// without echo only when the input is a terminal, so scripts can pipe
// answers in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok {
		p.fd = int(f.Fd())
		p.tty = isTerminal(p.fd)
	}
	return p
}

// Line prints label and reads one trimmed line.
func (p *Prompter) Line(label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password prints label and reads a password.
func (p *Prompter) Password(label string) (string, error) {
	if !p.tty {
		return p.Line(label)
	}

	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}
	pw, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
