package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates markup and remembers the first write error so component
// bodies can emit a sequence of fragments and check once at the end.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as-is.
func (hw *Writer) Raw(markup string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, markup)
}

// Text writes an escaped value, safe for element bodies and quoted attributes.
func (hw *Writer) Text(value string) {
	hw.Raw(templ.EscapeString(value))
}

// Rawf formats trusted markup. Callers escape user values with templ.EscapeString.
func (hw *Writer) Rawf(format string, args ...any) {
	hw.Raw(fmt.Sprintf(format, args...))
}

// Component renders a nested component into the same stream.
func (hw *Writer) Component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

func (hw *Writer) Err() error {
	return hw.err
}
