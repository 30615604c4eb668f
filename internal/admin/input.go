package admin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// field is one value a command may collect interactively.
type field struct {
	value  *string
	prompt string
}

// prompter asks the operator for values that were not given as flags.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, fd: int(os.Stdin.Fd())}
}

// ask prints prompt and returns the trimmed answer. A last line without a
// trailing newline is accepted.
func (p *prompter) ask(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(prompt), err)
	}
	return strings.TrimSpace(line), nil
}

// fill asks for every field that is still empty, in order.
func (p *prompter) fill(fields []field) error {
	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		v, err := p.ask(f.prompt)
		if err != nil {
			return err
		}
		*f.value = v
	}
	return nil
}

// secret reads a password without echo. The caller wipes the result.
func (p *prompter) secret(prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
