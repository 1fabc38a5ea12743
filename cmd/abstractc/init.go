package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create abstractc.toml with default settings",
	Long: `Init writes an abstractc.toml manifest and an example main.swift into
[path] (the current directory when omitted). A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	created, err := initProject(target)
	if err != nil {
		return err
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, target); err == nil {
			rel = r
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized abstractc project in %s\n", rel)
	for _, name := range created {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	return nil
}

// initProject writes the manifest and, if absent, main.swift into target.
// It returns the names of the files it created.
func initProject(target string) ([]string, error) {
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, manifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	data, err := encodeManifest(defaultProjectConfig())
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(manifestPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	created := []string{manifestName}

	mainPath := filepath.Join(target, "main.swift")
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainSource), 0o600); err != nil {
			return nil, fmt.Errorf("failed to write main.swift: %w", err)
		}
		created = append(created, "main.swift")
	}
	return created, nil
}

func encodeManifest(cfg projectConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# abstractc project manifest\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

const defaultMainSource = `@abstractClass
class Shape {
    let name: String

    @abstractInit
    init(name: String) {
        self.name = name
    }

    @abstract
    func describe() {}
}

class Square: Shape {
    init() {
        super.init(name: "square")
    }

    override func describe() {
        print("I am a \(name)")
    }
}

let square = Square()
square.describe()
`
