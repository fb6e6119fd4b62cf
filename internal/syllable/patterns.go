package syllable

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/speedata/hyphenation"

	"horse.fit/textlens/internal/language"
)

// PatternFiles maps languages to the TeX pattern file names expected inside a
// pattern directory.
var PatternFiles = map[language.Code]string{
	language.English: "hyph-en-us.pat.txt",
	language.Russian: "hyph-ru.pat.txt",
}

// LoadPatternDir loads TeX hyphenation patterns from dir. Languages whose
// pattern file is absent are left out of the result so the estimator uses its
// built-in hyphenator for them.
func LoadPatternDir(dir string) (map[language.Code]Hyphenator, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}

	loaded := make(map[language.Code]Hyphenator, len(PatternFiles))
	for code, name := range PatternFiles {
		path := filepath.Join(trimmed, name)
		h, err := LoadPatternFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("load %s patterns: %w", code, err)
		}
		loaded[code] = h
	}
	return loaded, nil
}

// LoadPatternFile parses one TeX pattern file.
func LoadPatternFile(path string) (Hyphenator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lang, err := hyphenation.New(f)
	if err != nil {
		return nil, fmt.Errorf("parse patterns %s: %w", path, err)
	}
	return lang, nil
}
