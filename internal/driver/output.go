package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"abstractc/internal/ast"
)

// ErrOutsideBase is returned when a result path cannot be placed under the output dir.
var ErrOutsideBase = errors.New("path is outside the base directory")

// OutputPath maps a source path under baseDir to the same relative path
// under outDir. With an empty outDir the file is written next to the source
// as <name>.expanded.swift.
func OutputPath(srcPath, baseDir, outDir string) (string, error) {
	if outDir == "" {
		return strings.TrimSuffix(srcPath, SourceExt) + ".expanded" + SourceExt, nil
	}
	rel, err := filepath.Rel(baseDir, srcPath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", srcPath, err)
	}
	if rel == ".." || strings.HasPrefix(filepath.ToSlash(rel), "../") {
		return "", fmt.Errorf("%s: %w", srcPath, ErrOutsideBase)
	}
	return filepath.Join(outDir, rel), nil
}

// WriteOutput writes res.Output atomically and returns the destination path.
func WriteOutput(res *Result, baseDir, outDir string) (string, error) {
	dst, err := OutputPath(res.Path, baseDir, outDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".abstractc-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(res.Output); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return dst, nil
}

// Artifact is the --emit msgpack record of one file.
type Artifact struct {
	Path        string             `msgpack:"path"`
	Output      string             `msgpack:"output"`
	Failed      bool               `msgpack:"failed"`
	Tree        *ast.File          `msgpack:"tree,omitempty"`
	Diagnostics []CachedDiagnostic `msgpack:"diagnostics,omitempty"`
}

// EncodeArtifact writes res as one msgpack value.
func EncodeArtifact(w io.Writer, res *Result) error {
	art := Artifact{
		Path:        res.Path,
		Output:      string(res.Output),
		Failed:      res.Failed(),
		Tree:        res.Expanded,
		Diagnostics: resultToDiskPayload(res).Diagnostics,
	}
	return msgpack.NewEncoder(w).Encode(&art)
}

// DecodeArtifact reads one value written by EncodeArtifact.
func DecodeArtifact(r io.Reader) (*Artifact, error) {
	var art Artifact
	if err := msgpack.NewDecoder(r).Decode(&art); err != nil {
		return nil, err
	}
	return &art, nil
}
