package font

import (
	"os"
	"path/filepath"
	"runtime"
)

// SystemFontDirs returns the system font directories for the current
// platform.
func SystemFontDirs() []string {
	var dirs []string
	switch runtime.GOOS {
	case "darwin":
		dirs = []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
		}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	case "linux":
		dirs = []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
		}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs,
				filepath.Join(home, ".fonts"),
				filepath.Join(home, ".local", "share", "fonts"),
			)
		}
		if xdg := os.Getenv("XDG_DATA_DIRS"); xdg != "" {
			for _, dir := range filepath.SplitList(xdg) {
				dirs = append(dirs, filepath.Join(dir, "fonts"))
			}
		}
	case "windows":
		if winDir := os.Getenv("WINDIR"); winDir != "" {
			dirs = append(dirs, filepath.Join(winDir, "Fonts"))
		} else {
			dirs = append(dirs, `C:\Windows\Fonts`)
		}
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"))
		}
	}

	existing := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			existing = append(existing, dir)
		}
	}
	return existing
}

// DiscoverFonts discovers all fonts in the given directories,
// recursively. Unreadable or unparseable files are skipped.
func DiscoverFonts(dirs []string) ([]*Font, error) {
	var fonts []*Font
	for _, dir := range dirs {
		loaded, err := LoadFromFS(os.DirFS(dir), ".")
		if err != nil {
			continue
		}
		// LoadFromFS records fs-relative paths; restore absolute ones so
		// callers can reload the file later.
		for _, f := range loaded {
			f.Path = filepath.Join(dir, f.Path)
		}
		fonts = append(fonts, loaded...)
	}
	return fonts, nil
}

// DiscoverSystemFonts discovers all fonts in system font directories.
func DiscoverSystemFonts() ([]*Font, error) {
	return DiscoverFonts(SystemFontDirs())
}
