package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-md2blog/internal/fileutil"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the id generator for new files.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	NewID  func() string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewID:  fileutil.ShortID,
	}
}
