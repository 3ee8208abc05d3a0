// internal/adapters/repl/console.go
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// Console is the terminal notifier and confirmer. Notices and prompts go to
// out; answers are read line by line from in.
type Console struct {
	in  *bufio.Reader
	tty *os.File
	out io.Writer
	mu  sync.Mutex

	// AssumeYes answers every confirmation with yes (--yes)
	AssumeYes bool
}

var (
	_ ports.Notifier  = (*Console)(nil)
	_ ports.Confirmer = (*Console)(nil)
)

// NewConsole creates a console over in and out
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.tty = f
	}
	return c
}

// Out returns the writer command output goes to
func (c *Console) Out() io.Writer { return c.out }

// Success prints a success notice
func (c *Console) Success(_ context.Context, title, message string) {
	c.notice("OK", title, message)
}

// Error prints an error notice
func (c *Console) Error(_ context.Context, title, message string) {
	c.notice("ERROR", title, message)
}

func (c *Console) notice(tag, title, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if message == "" {
		fmt.Fprintf(c.out, "[%s] %s\n", tag, title)
		return
	}
	fmt.Fprintf(c.out, "[%s] %s: %s\n", tag, title, message)
}

// Confirm shows prompt and waits for y or n. Anything but yes declines; end
// of input declines without error.
func (c *Console) Confirm(ctx context.Context, prompt ports.Prompt) (bool, error) {
	if c.AssumeYes {
		return true, nil
	}

	c.mu.Lock()
	fmt.Fprintf(c.out, "%s\n", prompt.Title)
	if prompt.Text != "" {
		fmt.Fprintf(c.out, "  %s\n", prompt.Text)
	}
	fmt.Fprintf(c.out, "%s / %s [y/N]: ", prompt.ConfirmLabel, prompt.CancelLabel)
	c.mu.Unlock()

	answer, err := c.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes", "s", "si":
		return true, nil
	default:
		return false, nil
	}
}

// Ask prints label, with current shown as the default, and returns the
// trimmed answer or current when the answer is blank.
func (c *Console) Ask(ctx context.Context, label, current string) (string, error) {
	c.mu.Lock()
	if current != "" {
		fmt.Fprintf(c.out, "  %s [%s]: ", label, current)
	} else {
		fmt.Fprintf(c.out, "  %s: ", label)
	}
	c.mu.Unlock()

	answer, err := c.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// AskSecret prompts for a value that must not be echoed. On a terminal the
// input is read with echo off; piped input is read as a plain line. The
// answer is returned as typed, without trimming.
func (c *Console) AskSecret(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCancelled, err)
	}

	c.mu.Lock()
	fmt.Fprintf(c.out, "  %s: ", label)
	c.mu.Unlock()

	if c.tty != nil {
		secret, err := term.ReadPassword(int(c.tty.Fd()))
		fmt.Fprintln(c.out)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		return string(secret), nil
	}

	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// ReadLine reads one trimmed line. A final line without a newline is
// returned before io.EOF is reported.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCancelled, err)
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Printf writes command output
func (c *Console) Printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}
