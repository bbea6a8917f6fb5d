// Package filesystem turns local paths into upload candidates.
package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Candidate describes the file at path. If the file cannot be read, the
// candidate's Open reports the error so the upload batch rejects it.
func Candidate(path string) domain.CandidateFile {
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		return domain.CandidateFile{
			Name: name,
			Open: func() (io.ReadCloser, error) { return nil, err },
		}
	}
	if info.IsDir() {
		return domain.CandidateFile{
			Name: name,
			Open: func() (io.ReadCloser, error) {
				return nil, fmt.Errorf("%s is a directory", path)
			},
		}
	}

	return domain.CandidateFile{
		Name: name,
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// Expand resolves paths into candidates. Files are taken as given so the
// batch can reject them by name. Directories are walked recursively for
// accepted files, skipping hidden entries.
func Expand(paths []string) ([]domain.CandidateFile, error) {
	var out []domain.CandidateFile
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			out = append(out, Candidate(p))
			continue
		}

		found, err := walk(p)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		out = append(out, found...)
	}
	return out, nil
}

func walk(root string) ([]domain.CandidateFile, error) {
	var out []domain.CandidateFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("WalkDir %s: %v", path, err)
			return nil
		}
		if path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !Accepted(path) {
			return nil
		}
		out = append(out, Candidate(path))
		return nil
	})
	return out, err
}

// Accepted reports whether the path has the extension the backend ingests.
func Accepted(path string) bool {
	return strings.EqualFold(filepath.Ext(path), domain.AcceptedExtension)
}

// IsHidden reports whether the last path element starts with a dot.
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
