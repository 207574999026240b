// Package prompt asks line-based questions on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

var (
	ErrNotTerminal = errors.New("interactive mode requires a terminal on stdin")
	ErrInputClosed = errors.New("input closed before an answer was given")
	ErrNoOptions   = errors.New("nothing to choose from")
)

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// NewTerminal returns a Prompter on stdin/stdout, or ErrNotTerminal when
// stdin is redirected.
func NewTerminal() (*Prompter, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotTerminal
	}
	return New(os.Stdin, os.Stdout), nil
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Input asks a free-form question. An empty answer yields def; with no
// default the question is repeated.
func (p *Prompter) Input(label, def string) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", label, def)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		if def != "" {
			return def, nil
		}
	}
}

// Select asks for one of options, by number or by value. An empty answer
// yields def, or the first option when def is empty.
func (p *Prompter) Select(label string, options []string, def string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%s: %w", label, ErrNoOptions)
	}
	if def == "" {
		def = options[0]
	}
	for {
		fmt.Fprintf(p.out, "%s\n", label)
		p.list(options)
		fmt.Fprintf(p.out, "> [%s]: ", def)

		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			return def, nil
		}
		if choice, ok := pick(options, line); ok {
			return choice, nil
		}
		fmt.Fprintf(p.out, "invalid choice %q\n", line)
	}
}

// MultiSelect asks for a comma separated subset of options, by number or by
// value. An empty answer selects every option. The result keeps option order.
func (p *Prompter) MultiSelect(label string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("%s: %w", label, ErrNoOptions)
	}
	for {
		fmt.Fprintf(p.out, "%s (comma separated, empty for all)\n", label)
		p.list(options)
		fmt.Fprint(p.out, "> ")

		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return append([]string(nil), options...), nil
		}

		chosen := map[string]bool{}
		var bad []string
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if choice, ok := pick(options, part); ok {
				chosen[choice] = true
			} else {
				bad = append(bad, part)
			}
		}
		if len(bad) > 0 || len(chosen) == 0 {
			fmt.Fprintf(p.out, "invalid choice %q\n", strings.Join(bad, ", "))
			continue
		}

		var out []string
		for _, o := range options {
			if chosen[o] {
				out = append(out, o)
			}
		}
		return out, nil
	}
}

func (p *Prompter) list(options []string) {
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
}

func pick(options []string, answer string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, o := range options {
		if strings.EqualFold(o, answer) {
			return o, true
		}
	}
	return "", false
}
