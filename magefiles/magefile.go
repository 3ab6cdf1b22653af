//go:build mage

// Package main contains Mage build targets for tsdr-status developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "tsdr-status"
	cmdPkg  = "./cmd/tsdr-status"
)

// generatedFiles are the outputs a lookup leaves in the working directory.
var generatedFiles = []string{
	"case_summary.xlsx",
	"*_document.pdf",
}

// Init creates the .secrets directory read for the USPTO API key.
func Init() error {
	if err := os.MkdirAll(".secrets", 0o700); err != nil {
		return fmt.Errorf("creating .secrets: %w", err)
	}
	fmt.Println("Put your USPTO API key in .secrets/uspto-api-key or USPTO_API_KEY in .env.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check runs vet and the tests, then builds the binary.
func Check() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	mg.SerialDeps(Test, Build)
	return nil
}

// Clean removes the binary and any lookup output in the working directory.
func Clean() error {
	if err := sh.Rm(binDir); err != nil {
		return err
	}
	for _, pattern := range generatedFiles {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if err := sh.Rm(m); err != nil {
				return err
			}
			fmt.Println("removed", m)
		}
	}
	return nil
}
