// Package store persists a text model as five human-readable files, one per
// feature, named <model name><feature suffix>.txt.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gfs "github.com/czcorpus/cnc-gokit/fs"
	"github.com/gofrs/flock"

	"stylometer/internal/merror"
	"stylometer/internal/textmodel"
)

const fileExt = ".txt"

// FileName returns the artifact name of one feature of the named model.
func FileName(name string, f textmodel.Feature) string {
	return name + f.Suffix() + fileExt
}

func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == "." || trimmed == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", merror.ErrInvalidName, name)
	}
	return nil
}

func lockFor(dir, name string) *flock.Flock {
	return flock.New(filepath.Join(dir, "."+name+".lock"))
}

// Save writes every feature of m under dir, replacing earlier files of the
// same model.
func Save(dir string, m *textmodel.Model) error {
	if err := ValidateName(m.Name); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	lock := lockFor(dir, m.Name)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock model %s: %w", m.Name, err)
	}
	defer lock.Unlock()

	for _, f := range textmodel.Features {
		path := filepath.Join(dir, FileName(m.Name, f))
		if err := os.WriteFile(path, []byte(format(m, f)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f, err)
		}
	}
	return nil
}

// Read loads the model called name from dir. A missing or unreadable file
// yields an error matching merror.ErrUnavailable; malformed content yields a
// *merror.ParseError.
func Read(dir, name string) (*textmodel.Model, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	lock := lockFor(dir, name)
	if err := lock.RLock(); err != nil {
		return nil, merror.Unavailable("lock model "+name, err)
	}
	defer lock.Unlock()

	m := textmodel.New(name)
	for _, f := range textmodel.Features {
		path := filepath.Join(dir, FileName(name, f))
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, merror.Unavailable("read "+f.String(), err)
		}
		if err := load(m, f, string(raw)); err != nil {
			var perr *merror.ParseError
			if errors.As(err, &perr) {
				perr.Source = filepath.Base(path)
			}
			return nil, err
		}
	}
	return m, nil
}

// Exists reports whether every artifact of the named model is present in dir.
func Exists(dir, name string) bool {
	if ValidateName(name) != nil {
		return false
	}
	for _, f := range textmodel.Features {
		if !gfs.PathExists(filepath.Join(dir, FileName(name, f))) {
			return false
		}
	}
	return true
}

// List returns the names of the complete models stored in dir.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list model dir: %w", err)
	}

	wordsSuffix := textmodel.FeatureWords.Suffix() + fileExt
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), wordsSuffix) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), wordsSuffix)
		if Exists(dir, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func format(m *textmodel.Model, f textmodel.Feature) string {
	if f.IntKeyed() {
		return FormatInts(m.IntCounts(f))
	}
	return FormatStrings(m.StringCounts(f))
}

func load(m *textmodel.Model, f textmodel.Feature, text string) error {
	if f.IntKeyed() {
		c, err := ParseInts(text)
		if err != nil {
			return err
		}
		switch f {
		case textmodel.FeatureWordLengths:
			m.WordLengths = c
		case textmodel.FeatureSentenceLengths:
			m.SentenceLengths = c
		}
		return nil
	}

	c, err := ParseStrings(text)
	if err != nil {
		return err
	}
	switch f {
	case textmodel.FeatureWords:
		m.Words = c
	case textmodel.FeatureStems:
		m.Stems = c
	case textmodel.FeatureCommonWords:
		m.CommonWords = c
	}
	return nil
}
