package organizer

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/errors"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/scalasrc"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/strategy"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/utils"
)

// ProcessorConfig configures the file-level driver.
type ProcessorConfig struct {
	Config    Config
	InPlace   bool // rewrite files instead of printing to stdout
	CacheSize int  // usage-analyzer LRU size, 0 for the default
}

// Processor runs the organizer over files and directories, using the bundled
// front-end and a cached usage analyzer.
type Processor struct {
	config   ProcessorConfig
	resolver *scalasrc.Resolver
	analyzer strategy.UsageAnalyzer
	logger   *zap.Logger
}

// NewProcessor builds a processor around the bundled front-end.
func NewProcessor(config ProcessorConfig, logger *zap.Logger) (*Processor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := scalasrc.NewResolver()
	analyzer, err := strategy.NewCachedAnalyzer(scalasrc.UsageScanner{Resolver: resolver}, config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToCreateCache, err)
	}
	return &Processor{
		config:   config,
		resolver: resolver,
		analyzer: analyzer,
		logger:   logger,
	}, nil
}

// Resolver exposes the processor's symbol model so callers can register
// scope members before processing.
func (p *Processor) Resolver() *scalasrc.Resolver {
	return p.resolver
}

func (p *Processor) getInPlace() bool {
	return p.config.InPlace
}

// ProcessFileWithOutput reorganizes one file, optionally echoing results to
// stdout. Files without any import-bearing construct are left untouched.
func (p *Processor) ProcessFileWithOutput(path string, verbose bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}

	tree, err := scalasrc.Parse(path, string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToParseFile, err)
	}

	org := New(p.config.Config, p.analyzer, p.resolver, p.logger)
	edits, err := org.Organize(tree)
	if err != nil {
		if errors.IsPreparation(err) {
			// Nothing to organize.
			if !p.getInPlace() && verbose {
				fmt.Print(string(src))
			}
			return nil
		}
		return err
	}

	output := imports.ApplyEdits(string(src), edits)
	if p.getInPlace() {
		if output == string(src) {
			return nil
		}
		if err := os.WriteFile(path, []byte(output), 0644); err != nil {
			return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
		return nil
	}

	if verbose {
		fmt.Print(output)
	}
	return nil
}

// ProcessFile reorganizes a single file and prints the result when not
// running in place.
func (p *Processor) ProcessFile(path string) error {
	return p.ProcessFileWithOutput(path, true)
}

// ProcessFiles reorganizes multiple files, tallying per-file errors so one
// bad file does not abort the batch.
func (p *Processor) ProcessFiles(paths []string) error {
	processedCount := 0
	errorCount := 0

	for _, path := range paths {
		if err := p.ProcessFileWithOutput(path, false); err != nil {
			fmt.Printf(errors.InfoMsgErrorProcessing+"\n", path, err)
			errorCount++
		} else {
			processedCount++
			if p.getInPlace() {
				fmt.Printf(errors.InfoMsgProcessedFiles+"\n", path)
			}
		}
	}

	fmt.Printf(errors.InfoMsgProcessedCount, processedCount)
	if errorCount > 0 {
		fmt.Printf(errors.InfoMsgErrorCount, errorCount)
	}
	fmt.Println()

	if errorCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, errorCount)
	}
	return nil
}

// ProcessPath reorganizes a file, or every Scala file under a directory.
func (p *Processor) ProcessPath(path string) error {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		return p.ProcessFile(path)
	}

	// When processing directories, in-place mode is recommended
	if !p.getInPlace() {
		fmt.Printf(errors.WarnMsgProcessingDirWithoutInPlace + "\n")
		fmt.Printf(errors.InfoMsgUseInPlaceFlag + "\n\n")
	}

	scalaFiles, err := utils.FindScalaFiles(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindScalaFiles, err)
	}

	if len(scalaFiles) == 0 {
		fmt.Printf(errors.InfoMsgNoScalaFilesFound+"\n", path)
		return nil
	}

	fmt.Printf(errors.InfoMsgFoundScalaFiles+"\n\n", len(scalaFiles), path)
	return p.ProcessFiles(scalaFiles)
}
