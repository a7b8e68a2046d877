package font

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-text/typesetting/font"
)

// LoadFromFile loads fonts from a file path.
// Returns multiple fonts for TTC (font collection) files.
func LoadFromFile(path string) ([]*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}

	return LoadFromBytes(data, path)
}

// LoadFromBytes loads fonts from raw bytes.
// The path parameter is used for metadata (can be empty for embedded fonts).
func LoadFromBytes(data []byte, path string) ([]*Font, error) {
	if len(data) < 4 {
		return nil, errors.New("font data too short")
	}

	if isTTC(data) {
		return loadTTC(data, path)
	}

	return loadSingle(data, path, 0)
}

// LoadFromFS loads all fonts found in a filesystem (embed.FS, os.DirFS,
// etc.), skipping files that cannot be read or parsed.
func LoadFromFS(fsys fs.FS, root string) ([]*Font, error) {
	var fonts []*Font

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !IsFontFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil
		}

		loaded, err := LoadFromBytes(data, path)
		if err != nil {
			return nil
		}

		fonts = append(fonts, loaded...)
		return nil
	})

	return fonts, err
}

// isTTC checks if the data starts with a TTC header.
func isTTC(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "ttcf"
}

// loadTTC loads fonts from a TrueType Collection.
func loadTTC(data []byte, path string) ([]*Font, error) {
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse TTC: %w", err)
	}

	fonts := make([]*Font, 0, len(faces))
	for i, face := range faces {
		fonts = append(fonts, &Font{
			face:    face,
			Info:    extractInfo(face),
			Path:    path,
			Index:   i,
			metrics: extractMetrics(face),
		})
	}

	return fonts, nil
}

// loadSingle loads a single font (TTF/OTF).
func loadSingle(data []byte, path string, index int) ([]*Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	return []*Font{{
		face:    face,
		Info:    extractInfo(face),
		Path:    path,
		Index:   index,
		metrics: extractMetrics(face),
	}}, nil
}

// extractInfo extracts FontInfo from a font face.
func extractInfo(face *font.Face) FontInfo {
	info := FontInfo{
		Style:   StyleNormal,
		Weight:  WeightNormal,
		Stretch: StretchNormal,
	}

	if face.Font == nil {
		return info
	}

	desc := face.Font.Describe()

	info.Family = desc.Family
	info.FullName = desc.Family

	switch desc.Aspect.Style {
	case font.StyleItalic:
		info.Style = StyleItalic
	case font.StyleNormal:
		info.Style = StyleNormal
	default:
		info.Style = StyleOblique
	}

	info.Weight = Weight(desc.Aspect.Weight)
	if info.Weight == 0 {
		info.Weight = WeightNormal
	}

	info.Stretch = Stretch(desc.Aspect.Stretch)
	if info.Stretch == 0 {
		info.Stretch = StretchNormal
	}

	return info
}

// IsFontFile checks if a path points to a supported font file.
func IsFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	default:
		return false
	}
}
