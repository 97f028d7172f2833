package script

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/scriptbasic/internal/ctxlog"
)

// Loader parses pipeline files into ordered step lists.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a single .hcl file or every .hcl file under a directory and
// returns the steps in file order, then declaration order.
func (l *Loader) Load(ctx context.Context, path string) ([]*Step, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading pipeline files.", "path", path)

	filePaths, err := findPipelineFiles(path)
	if err != nil {
		return nil, err
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl pipeline files found in path", "path", path)
		return nil, nil
	}
	logger.Debug("Found pipeline files to load.", "files", filePaths)

	parser := hclparse.NewParser()
	var steps []*Step

	for _, filePath := range filePaths {
		file, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse pipeline file %s: %w", filePath, diags)
		}

		fileSteps, err := decodeFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode pipeline file %s: %w", filePath, err)
		}
		steps = append(steps, fileSteps...)
		logger.Debug("Loaded pipeline file.", "file", filePath, "steps", len(fileSteps))
	}

	logger.Info("Pipeline loaded.", "files", len(filePaths), "steps", len(steps))
	return steps, nil
}

// decodeFile extracts the action blocks of one parsed file, in order.
func decodeFile(file *hcl.File) ([]*Step, error) {
	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	steps := make([]*Step, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		step, stepDiags := newStep(block)
		if stepDiags.HasErrors() {
			return nil, stepDiags
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// findPipelineFiles resolves a path to a sorted list of .hcl files.
func findPipelineFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
