package font

import (
	"math"
	"sort"
	"strings"
	"sync"
)

// FontBook manages a collection of fonts and provides lookup by family
// and variant as well as coverage-driven fallback selection.
type FontBook struct {
	// fonts is the list of all loaded fonts, indexed by ID.
	fonts []*Font

	// byFamily groups font ids by normalized family name.
	byFamily map[string][]ID

	mu sync.RWMutex
}

// NewFontBook creates a new empty FontBook.
func NewFontBook() *FontBook {
	return &FontBook{
		byFamily: make(map[string][]ID),
	}
}

// Add adds fonts to the book.
func (b *FontBook) Add(fonts ...*Font) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, f := range fonts {
		id := ID(len(b.fonts))
		b.fonts = append(b.fonts, f)

		family := normalizeFamily(f.Info.Family)
		b.byFamily[family] = append(b.byFamily[family], id)
	}
}

// Len returns the number of fonts in the book.
func (b *FontBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.fonts)
}

// Font returns the font with the given id, or nil if the id is out of
// bounds.
func (b *FontBook) Font(id ID) *Font {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if id < 0 || int(id) >= len(b.fonts) {
		return nil
	}
	return b.fonts[id]
}

// Families returns all unique family names in the book, sorted.
func (b *FontBook) Families() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	families := make([]string, 0, len(b.byFamily))
	for family := range b.byFamily {
		families = append(families, family)
	}
	sort.Strings(families)
	return families
}

// Select selects the font of the given family that best matches the
// variant. The second return is false if the family is unknown.
func (b *FontBook) Select(family string, variant Variant) (ID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	candidates := b.byFamily[normalizeFamily(family)]
	return b.selectBestVariant(candidates, variant)
}

// SelectFallback selects a font that covers the given text, preferring
// fonts close to the hinted font's family and the requested variant.
// The hint is typically the info of the first font used in the current
// shaping run and biases selection towards visually matching fonts.
func (b *FontBook) SelectFallback(hint *FontInfo, variant Variant, text string) (ID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	// A font from the hinted family that covers the text wins outright.
	if hint != nil {
		if ids := b.byFamily[normalizeFamily(hint.Family)]; len(ids) > 0 {
			for _, id := range ids {
				if b.fonts[id].Covers(text) {
					return id, true
				}
			}
		}
	}

	// Otherwise pick the font with the best coverage, breaking ties by
	// variant distance.
	best := ID(-1)
	bestCoverage := 0
	bestScore := math.MaxFloat64
	for id, f := range b.fonts {
		coverage := f.coverage(text)
		if coverage == 0 {
			continue
		}
		score := variantDistance(f.Info, variant)
		if coverage > bestCoverage || (coverage == bestCoverage && score < bestScore) {
			best = ID(id)
			bestCoverage = coverage
			bestScore = score
		}
	}
	return best, best >= 0
}

// selectBestVariant finds the candidate closest to the variant.
// Callers must hold the read lock.
func (b *FontBook) selectBestVariant(ids []ID, variant Variant) (ID, bool) {
	best := ID(-1)
	bestScore := math.MaxFloat64

	for _, id := range ids {
		score := variantDistance(b.fonts[id].Info, variant)
		if score < bestScore {
			bestScore = score
			best = id
		}
	}
	return best, best >= 0
}

// variantDistance calculates the distance between a font's properties
// and a target variant. Lower is better.
func variantDistance(info FontInfo, target Variant) float64 {
	var distance float64

	// Style mismatch is significant.
	if info.Style != target.Style {
		distance += 10.0

		// Oblique is somewhat close to italic.
		if (info.Style == StyleOblique && target.Style == StyleItalic) ||
			(info.Style == StyleItalic && target.Style == StyleOblique) {
			distance -= 5.0
		}
	}

	// Weight distance, normalized for the 100-900 range.
	weightDiff := math.Abs(float64(info.Weight-target.Weight)) / 400.0
	distance += weightDiff * 5.0

	// Stretch distance.
	stretchDiff := math.Abs(float64(info.Stretch - target.Stretch))
	distance += stretchDiff * 2.0

	return distance
}

// normalizeFamily normalizes a font family name for comparison.
func normalizeFamily(family string) string {
	s := strings.ToLower(family)
	s = strings.TrimSuffix(s, " regular")
	s = strings.TrimSuffix(s, " normal")
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// SystemFontBook creates a FontBook loaded with system fonts.
func SystemFontBook() (*FontBook, error) {
	fonts, err := DiscoverSystemFonts()
	if err != nil {
		return nil, err
	}

	book := NewFontBook()
	book.Add(fonts...)
	return book, nil
}
