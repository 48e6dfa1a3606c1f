package screen

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var ErrInputClosed = errors.New("input closed")

// Input is the only reader of the terminal. "q" always quits. Any other line
// answers the open prompt when the payment sheet has one; otherwise it is a
// tap on the pay button.
type Input struct {
	out   io.Writer
	onTap func()

	lines chan string
	quit  chan struct{}
	once  sync.Once

	mu     sync.Mutex
	prompt chan string
}

func NewInput(out io.Writer, onTap func()) *Input {
	return &Input{
		out:   out,
		onTap: onTap,
		lines: make(chan string),
		quit:  make(chan struct{}),
	}
}

// Run reads lines until in is exhausted, the user quits or ctx is done.
func (i *Input) Run(ctx context.Context, in io.Reader) {
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case i.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		close(i.lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-i.lines:
			if !ok {
				i.Quit()
				return
			}
			if !i.dispatch(line) {
				return
			}
		}
	}
}

func (i *Input) dispatch(line string) bool {
	if strings.EqualFold(strings.TrimSpace(line), "q") {
		i.Quit()
		return false
	}

	i.mu.Lock()
	prompt := i.prompt
	i.prompt = nil
	i.mu.Unlock()

	if prompt != nil {
		prompt <- line
		return true
	}
	i.onTap()
	return true
}

// Ask shows prompt and waits for the next line.
func (i *Input) Ask(ctx context.Context, prompt string) (string, error) {
	answer := make(chan string, 1)

	i.mu.Lock()
	i.prompt = answer
	i.mu.Unlock()

	fmt.Fprintf(i.out, "%s ", prompt)

	select {
	case line := <-answer:
		return line, nil
	case <-i.quit:
		return "", ErrInputClosed
	case <-ctx.Done():
		i.mu.Lock()
		if i.prompt == answer {
			i.prompt = nil
		}
		i.mu.Unlock()
		return "", ctx.Err()
	}
}

func (i *Input) Quit() {
	i.once.Do(func() { close(i.quit) })
}

// Done is closed once the user quits or input ends.
func (i *Input) Done() <-chan struct{} {
	return i.quit
}
