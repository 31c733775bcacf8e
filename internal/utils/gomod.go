package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// GoModParser locates and reads go.mod files
type GoModParser struct {
	fileReader *FileReader
}

// NewGoModParser creates a new go.mod parser sharing fileReader's cache
func NewGoModParser(fileReader *FileReader) *GoModParser {
	return &GoModParser{
		fileReader: fileReader,
	}
}

// ParseModuleName extracts the module path from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return "", fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := p.fileReader.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod file: %w", err)
	}

	modFile, err := modfile.ParseLax(cleanPath, []byte(content), nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod file: %w", err)
	}
	if modFile.Module == nil || strings.TrimSpace(modFile.Module.Mod.Path) == "" {
		return "", fmt.Errorf("no module declaration found in %s", cleanPath)
	}

	return modFile.Module.Mod.Path, nil
}

// FindGoModFile searches for go.mod starting from startDir and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		currentDir = filepath.Clean(startDir)
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if content, err := p.fileReader.ReadFile(goModPath); err == nil && content != "" {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found above %s", startDir)
}

// ModuleInfo describes the module enclosing a directory
type ModuleInfo struct {
	Root string // directory holding go.mod
	Path string // declared module path
}

// FindModule returns the module enclosing startDir
func (p *GoModParser) FindModule(startDir string) (ModuleInfo, error) {
	goModPath, err := p.FindGoModFile(startDir)
	if err != nil {
		return ModuleInfo{}, err
	}
	path, err := p.ParseModuleName(goModPath)
	if err != nil {
		return ModuleInfo{}, err
	}
	return ModuleInfo{Root: filepath.Dir(goModPath), Path: path}, nil
}
