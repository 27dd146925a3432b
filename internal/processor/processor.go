package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/mdtranslate/internal/batch"
	"codeberg.org/snonux/mdtranslate/internal/cli"
	"codeberg.org/snonux/mdtranslate/internal/document"
	"codeberg.org/snonux/mdtranslate/internal/input"
	"codeberg.org/snonux/mdtranslate/internal/models"
	"codeberg.org/snonux/mdtranslate/internal/output"
	"codeberg.org/snonux/mdtranslate/internal/translation"
)

// Processor handles the main translation logic
type Processor struct {
	flags      *cli.Flags
	logger     *zap.Logger
	stdout     io.Writer
	trOptions  []translation.Option
	translator *translation.Translator
}

// Option customises a Processor.
type Option func(*Processor)

// WithStdout redirects output that would go to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(p *Processor) { p.stdout = w }
}

// WithTranslationOptions passes extra options to translation.NewTranslator.
func WithTranslationOptions(opts ...translation.Option) Option {
	return func(p *Processor) { p.trOptions = append(p.trOptions, opts...) }
}

// NewProcessor creates a new processor
func NewProcessor(flags *cli.Flags, logger *zap.Logger, opts ...Option) *Processor {
	p := &Processor{
		flags:  flags,
		logger: logger,
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Translator builds the translator on first use and reuses it afterwards.
func (p *Processor) Translator() (*translation.Translator, error) {
	if p.translator != nil {
		return p.translator, nil
	}

	cfg, err := cli.TranslationConfig()
	if err != nil {
		return nil, err
	}

	opts := append([]translation.Option{translation.WithLogger(p.logger)}, p.trOptions...)
	tr, err := translation.NewTranslator(cfg, opts...)
	if err != nil {
		return nil, err
	}

	p.logger.Info("translator ready",
		zap.String("model", tr.Model()),
		zap.String("from", cfg.SourceLanguage),
		zap.String("to", cfg.TargetLanguage))

	p.translator = tr
	return tr, nil
}

// ProcessText translates text taken from args, stdin or the clipboard and
// writes it to stdout, the output file and/or the clipboard.
func (p *Processor) ProcessText(ctx context.Context, args []string, stdin io.Reader, stdinIsTerminal bool) error {
	format, err := output.ParseFormat(viper.GetString("output.format"))
	if err != nil {
		return err
	}

	text, err := input.Read(args, stdin, stdinIsTerminal)
	if err != nil {
		return err
	}

	doc, err := document.New(text, document.WithLogger(p.logger))
	if err != nil {
		return fmt.Errorf("failed to split input: %w", err)
	}

	tr, err := p.Translator()
	if err != nil {
		return err
	}

	each, err := doc.TranslateEach(ctx, tr)
	if err != nil {
		return err
	}

	if p.flags.OutputFile != "" {
		if err := writeFile(p.flags.OutputFile, format, doc.Fragments(), each); err != nil {
			return err
		}
		p.logger.Info("translation written", zap.String("path", p.flags.OutputFile))
	} else if err := write(p.stdout, format, "mdtranslate", doc.Fragments(), each); err != nil {
		return err
	}

	if p.flags.Clipboard {
		if err := output.Clipboard(document.Flatten(each)); err != nil {
			return err
		}
		p.logger.Info("translation copied to clipboard")
	}

	return nil
}

// ProcessBatch translates every document listed in the batch file. A failed
// document is reported and the run continues with the next one.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	format, err := output.ParseFormat(viper.GetString("output.format"))
	if err != nil {
		return err
	}

	tr, err := p.Translator()
	if err != nil {
		return err
	}

	entries, err := batch.ReadBatchFile(p.flags.BatchFile, viper.GetString("translate.target"))
	if err != nil {
		return err
	}

	summary := batch.Summary{Total: len(entries)}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(p.stdout, "\nTranslating %d/%d: %s\n", i+1, len(entries), entry.Input)

		if err := p.translateFile(ctx, tr, entry, format); err != nil {
			p.logger.Error("document failed", zap.String("path", entry.Input), zap.Error(err))
			summary.Failed++
			continue
		}

		fmt.Fprintf(p.stdout, "  Saved: %s\n", entry.Output)
		summary.Processed++
	}

	fmt.Fprintf(p.stdout, "\n%s", summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", summary.Failed, summary.Total)
	}
	return nil
}

func (p *Processor) translateFile(ctx context.Context, tr document.FragmentTranslator, entry batch.Entry, format output.Format) error {
	text, err := input.ReadFile(entry.Input)
	if err != nil {
		return err
	}

	doc, err := document.New(text, document.WithLogger(p.logger.With(zap.String("document", entry.Input))))
	if err != nil {
		return fmt.Errorf("failed to split %s: %w", entry.Input, err)
	}

	each, err := doc.TranslateEach(ctx, tr)
	if err != nil {
		return err
	}

	out := entry.Output
	if format == output.FormatHTML && !entry.Explicit {
		out = out[:len(out)-len(filepath.Ext(out))] + ".html"
	}
	return writeFile(out, format, doc.Fragments(), each)
}

// ListModels prints the chat models available to the OpenAI key.
func (p *Processor) ListModels(ctx context.Context) error {
	lister := models.NewLister(cli.GetOpenAIKey(), viper.GetString("translate.base_url"))
	return lister.ListAvailableModels(ctx, p.stdout)
}

// write renders the per-fragment translations. each is index-aligned with
// fragments.
func write(w io.Writer, format output.Format, title string, fragments []string, each [][]string) error {
	if format == output.FormatHTML {
		return output.HTML(w, title, fragments, each)
	}
	return output.Text(w, document.Flatten(each))
}

func writeFile(path string, format output.Format, fragments []string, each [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := write(f, format, filepath.Base(path), fragments, each); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
