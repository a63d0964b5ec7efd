package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fakhrymubarak/weather-station/internal/presenter"
)

// ErrInputClosed is returned once standard input has no more lines.
var ErrInputClosed = errors.New("input closed")

type line struct {
	text string
	err  error
}

// Prompter asks a question on out and reads the answer from in, one line at a time.
type Prompter struct {
	in        *bufio.Reader
	out       io.Writer
	presenter *presenter.Presenter

	once  sync.Once
	lines chan line
}

func NewPrompter(in io.Reader, out io.Writer, p *presenter.Presenter) *Prompter {
	return &Prompter{
		in:        bufio.NewReader(in),
		out:       out,
		presenter: p,
	}
}

// readLoop feeds lines to Prompt. After a cancelled Prompt it stays blocked on
// in until the next line or process exit.
func (p *Prompter) readLoop() {
	defer close(p.lines)
	for {
		text, err := p.in.ReadString('\n')
		p.lines <- line{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// Prompt prints message and returns the next input line without surrounding whitespace.
// A last line missing its newline still counts; after that ErrInputClosed is returned.
func (p *Prompter) Prompt(ctx context.Context, message string) (string, error) {
	p.once.Do(func() {
		p.lines = make(chan line)
		go p.readLoop()
	})

	if _, err := fmt.Fprintln(p.out, p.presenter.Style(presenter.AccentBrightGreen, message)); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		switch {
		case !ok:
			return "", ErrInputClosed
		case l.err == nil:
			return strings.TrimSpace(l.text), nil
		case errors.Is(l.err, io.EOF):
			if l.text == "" {
				return "", ErrInputClosed
			}
			return strings.TrimSpace(l.text), nil
		default:
			return "", fmt.Errorf("reading input: %w", l.err)
		}
	}
}
