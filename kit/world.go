// Package kit provides ready-to-use implementations of the interfaces
// the shaping engine consumes: a font world backed by a FontBook and a
// simple span mapper.
package kit

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/boergens/typeset/font"
	"github.com/boergens/typeset/layout"
)

// FontWorld provides font access for shaping. It implements
// inline.World.
type FontWorld struct {
	book *font.FontBook
}

// Option configures a FontWorld.
type Option func(*FontWorld) error

// WithFontBook uses an existing font book.
func WithFontBook(book *font.FontBook) Option {
	return func(w *FontWorld) error {
		w.book = book
		return nil
	}
}

// WithFonts adds the given fonts.
func WithFonts(fonts ...*font.Font) Option {
	return func(w *FontWorld) error {
		w.ensureBook()
		w.book.Add(fonts...)
		return nil
	}
}

// WithFontDirs loads all fonts found in the given directories.
func WithFontDirs(dirs ...string) Option {
	return func(w *FontWorld) error {
		fonts, err := font.DiscoverFonts(dirs)
		if err != nil {
			return fmt.Errorf("discover fonts: %w", err)
		}
		w.ensureBook()
		w.book.Add(fonts...)
		return nil
	}
}

// WithFontFS loads all fonts found in a filesystem.
func WithFontFS(fsys fs.FS, root string) Option {
	return func(w *FontWorld) error {
		fonts, err := font.LoadFromFS(fsys, root)
		if err != nil {
			return fmt.Errorf("load fonts: %w", err)
		}
		w.ensureBook()
		w.book.Add(fonts...)
		return nil
	}
}

// NewFontWorld creates a world from the given options. Without any
// option, system fonts are loaded.
func NewFontWorld(opts ...Option) (*FontWorld, error) {
	w := &FontWorld{}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	if w.book == nil {
		book, err := font.SystemFontBook()
		if err != nil {
			return nil, fmt.Errorf("load system fonts: %w", err)
		}
		w.book = book
	}
	return w, nil
}

func (w *FontWorld) ensureBook() {
	if w.book == nil {
		w.book = font.NewFontBook()
	}
}

// Book returns the font book.
func (w *FontWorld) Book() *font.FontBook {
	return w.book
}

// Font returns the font with the given id, or nil.
func (w *FontWorld) Font(id font.ID) *font.Font {
	return w.book.Font(id)
}

// SpanMap maps paragraph byte offsets to source spans. It implements
// inline.SpanMapper for callers that track where each piece of a
// paragraph's text came from.
type SpanMap struct {
	entries []spanEntry
}

type spanEntry struct {
	length int
	span   layout.Span
}

// Push records that the next length bytes of the paragraph stem from
// the given span.
func (m *SpanMap) Push(length int, span layout.Span) {
	m.entries = append(m.entries, spanEntry{length: length, span: span})
}

// SpanAt returns the span at the given paragraph byte offset and the
// offset within it.
func (m *SpanMap) SpanAt(offset int) (layout.Span, uint16) {
	remaining := offset
	for i, entry := range m.entries {
		if remaining < entry.length || i == len(m.entries)-1 {
			within := min(max(remaining, 0), math.MaxUint16)
			return entry.span, uint16(within)
		}
		remaining -= entry.length
	}
	return layout.Detached, 0
}
