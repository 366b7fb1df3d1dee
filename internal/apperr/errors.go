// Package apperr defines the error kinds surfaced to callers of quicktask.
package apperr

import "errors"

var (
	ErrHomeDirectoryUnresolvable = errors.New("could not find home directory")
	ErrConfigNotFound            = errors.New("obsidian config not found, is Obsidian installed?")
	ErrConfigParse               = errors.New("failed to parse config")
	ErrDirectoryCreate           = errors.New("failed to create directory")
	ErrFileRead                  = errors.New("failed to read file")
	ErrFileWrite                 = errors.New("failed to write file")
	ErrInvalidInput              = errors.New("invalid input")
	ErrVaultNotFound             = errors.New("vault not found")
	ErrPathEscape                = errors.New("path escapes vault root")
)
