//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// unitPkgs are the package trees holding unit tests.
var unitPkgs = []string{"./pkg/...", "./internal/..."}

const coverProfile = "coverage.out"

// Test groups test targets (all, unit, integration, cover).
type Test mg.Namespace

// All runs unit tests, then the CLI integration tests.
func (Test) All() {
	mg.SerialDeps(Test.Unit, Test.Integration)
}

// Unit runs the package tests with the race detector.
func (Test) Unit() error {
	args := append([]string{"test", "-race"}, unitPkgs...)
	return sh.RunV(binGo, args...)
}

// Integration builds the dirschema binary, then runs tests/integration
// uncached.
func (Test) Integration() error {
	if _, err := os.Stat("tests/integration"); os.IsNotExist(err) {
		fmt.Println("No integration tests found (tests/integration).")
		return nil
	}
	mg.Deps(Build)
	return sh.RunV(binGo, "test", "-count=1", "-v", "./tests/integration/...")
}

// Cover writes a coverage profile for the unit packages and prints the
// per-function summary.
func (Test) Cover() error {
	args := append([]string{"test", "-coverprofile=" + coverProfile}, unitPkgs...)
	if err := sh.RunV(binGo, args...); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}
