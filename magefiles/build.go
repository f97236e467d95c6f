//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the native binary.
func (Build) Native() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/drape", "."), withStream()); err != nil {
		return err
	}
	return nil
}
