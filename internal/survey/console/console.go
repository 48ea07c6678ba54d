package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used for console output. On writers that
// are not terminals they render as plain text.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Question lipgloss.Style
	Notice   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Section:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Question: r.NewStyle().Foreground(lipgloss.Color("252")),
		Notice:   r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

type readResult struct {
	line string
	err  error
}

// Console is the line based terminal the questionnaire runs on. Input is read
// by one goroutine so a blocked read can be abandoned when ctx ends.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	styles Styles

	startReader sync.Once
	lines       chan readResult
	readErr     error
}

// New wraps the given input and output streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Out exposes the output stream for components that print directly.
func (c *Console) Out() io.Writer {
	return c.out
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Title prints a highlighted banner line.
func (c *Console) Title(s string) {
	fmt.Fprintln(c.out, c.styles.Title.Render(s))
}

// Section prints a section delimiter such as "===== 開始問卷調查 =====".
func (c *Console) Section(s string) {
	fmt.Fprintln(c.out, c.styles.Section.Render(s))
}

// Notice prints a warning or informational line.
func (c *Console) Notice(s string) {
	fmt.Fprintln(c.out, c.styles.Notice.Render(s))
}

func (c *Console) readLoop() {
	for {
		line, err := c.in.ReadString('\n')
		c.lines <- readResult{line: line, err: err}
		if err != nil {
			close(c.lines)
			return
		}
	}
}

// ReadLine shows label and blocks for one line of input, returned without the
// line terminator. A final line without newline is returned with a nil error;
// io.EOF is reported only when nothing was read. A cancelled ctx returns
// ctx.Err() at once.
func (c *Console) ReadLine(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	if c.readErr != nil {
		return "", c.readErr
	}
	c.startReader.Do(func() {
		c.lines = make(chan readResult)
		go c.readLoop()
	})

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case r := <-c.lines:
		line := strings.TrimRight(r.line, "\r\n")
		if r.err != nil {
			c.readErr = r.err
			if errors.Is(r.err, io.EOF) && r.line != "" {
				return line, nil
			}
			return "", r.err
		}
		return line, nil
	}
}

// Prompt reads a trimmed line, returning def when the input is blank or
// closed. Only a cancelled ctx is reported as an error.
func (c *Console) Prompt(ctx context.Context, label, def string) (string, error) {
	line, err := c.ReadLine(ctx, label)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil {
		return def, nil
	}
	if s := strings.TrimSpace(line); s != "" {
		return s, nil
	}
	return def, nil
}

// PromptInt reads an integer. Blank input yields def silently; unparsable or
// negative input yields def and a notice.
func (c *Console) PromptInt(ctx context.Context, label string, def int) (int, error) {
	line, err := c.ReadLine(ctx, label)
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	if err != nil {
		return def, nil
	}
	s := strings.TrimSpace(line)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		c.Notice(fmt.Sprintf("輸入無效，使用預設問題數量: %d", def))
		return def, nil
	}
	return n, nil
}

// Confirm asks a yes/no question; only "y" (any case) counts as yes.
func (c *Console) Confirm(ctx context.Context, label string) (bool, error) {
	line, err := c.ReadLine(ctx, label)
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return false, nil
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y", nil
}
