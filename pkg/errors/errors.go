package errors

import (
	stderrors "errors"
	"fmt"
)

// Error message constants for the scala-imports-organizer application
const (
	// File processing errors
	ErrMsgFailedToReadFile     = "failed to read file"
	ErrMsgFailedToParseFile    = "failed to parse file"
	ErrMsgFailedToRenderEdits  = "failed to render import edits"
	ErrMsgFailedToWriteFile    = "failed to write file"
	ErrMsgFailedToLoadConfig   = "failed to load configuration"
	ErrMsgFailedToCreateCache  = "failed to create analyzer cache"
	ErrMsgFailedToStartWatcher = "failed to start file watcher"

	// Directory processing errors
	ErrMsgFailedToCheckPath      = "failed to check path"
	ErrMsgFailedToFindScalaFiles = "failed to find Scala files in directory"
	ErrMsgFilesFailedToProcess   = "%d files failed to process"

	// Info/warning messages
	WarnMsgProcessingDirWithoutInPlace = "Warning: Processing directory without --in-place flag. No files will be modified."
	InfoMsgUseInPlaceFlag              = "Use --in-place flag to modify files or specify a single file for stdout output."
	InfoMsgNoScalaFilesFound           = "No Scala files found in directory: %s"
	InfoMsgFoundScalaFiles             = "Found %d Scala files in directory: %s"
	InfoMsgProcessedFiles              = "Processed: %s"
	InfoMsgErrorProcessing             = "Error processing %s: %v"
	InfoMsgProcessedCount              = "\nProcessed %d files successfully"
	InfoMsgErrorCount                  = ", %d files had errors"
)

// PlaceholderUnknownConstruct stands in for an import name when preparation
// cannot classify the shape of a tree node while diagnosing a missing
// import, instead of failing the run.
const PlaceholderUnknownConstruct = "<unknown construct>"

// PreparationError reports that the selection holds no reachable
// import-bearing construct, so there is nothing to reorganize.
type PreparationError struct {
	Msg string
}

func (e *PreparationError) Error() string {
	return "preparation failed: " + e.Msg
}

// Preparationf builds a PreparationError from a format string.
func Preparationf(format string, args ...any) error {
	return &PreparationError{Msg: fmt.Sprintf(format, args...)}
}

// IsPreparation reports whether err is a PreparationError.
func IsPreparation(err error) bool {
	var pe *PreparationError
	return stderrors.As(err, &pe)
}

// RefactoringError reports a violated internal invariant, such as an
// unresolved region-merge conflict or an unexpected symbol-lookup failure.
type RefactoringError struct {
	Msg string
}

func (e *RefactoringError) Error() string {
	return "refactoring failed: " + e.Msg
}

// Refactoringf builds a RefactoringError from a format string.
func Refactoringf(format string, args ...any) error {
	return &RefactoringError{Msg: fmt.Sprintf(format, args...)}
}

// IsRefactoring reports whether err is a RefactoringError.
func IsRefactoring(err error) bool {
	var re *RefactoringError
	return stderrors.As(err, &re)
}
