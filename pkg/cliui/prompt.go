package cliui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when stdin is closed before a value is read.
var ErrNoInput = errors.New("no input received on stdin")

// Prompter reads values for a command. On a terminal it prints prompts and
// hides secrets; when input is piped it reads one line per value silently.
type Prompter struct {
	out    io.Writer
	reader *bufio.Reader
	fd     int
	tty    bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:    out,
		reader: bufio.NewReader(in),
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Interactive reports whether input comes from a terminal.
func (p *Prompter) Interactive() bool {
	return p.tty
}

// Line reads one visible line.
func (p *Prompter) Line(prompt string) (string, error) {
	if p.tty {
		fmt.Fprint(p.out, prompt)
	}
	return p.readLine()
}

// Secret reads one line without echoing it on a terminal.
func (p *Prompter) Secret(prompt string) (string, error) {
	if !p.tty {
		return p.readLine()
	}

	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out) // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(b), nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrNoInput
	}
	return strings.TrimRight(line, "\r\n"), nil
}
