// Package document holds a segmented Markdown document and translates it
// fragment by fragment.
package document

import (
	"context"

	"go.uber.org/zap"

	"codeberg.org/snonux/mdtranslate/internal/segment"
)

// FragmentTranslator translates a single fragment into zero or more texts.
// *translation.Translator implements it.
type FragmentTranslator interface {
	Translate(ctx context.Context, fragment string) ([]string, error)
}

// Document is an ordered list of fragments of one source text.
type Document struct {
	fragments []string
	logger    *zap.Logger
	progress  func(done, total int)
}

// Option customises a Document.
type Option func(*Document)

// WithLogger logs translation progress to l.
func WithLogger(l *zap.Logger) Option {
	return func(d *Document) { d.logger = l }
}

// WithProgress calls fn after each fragment has been translated.
func WithProgress(fn func(done, total int)) Option {
	return func(d *Document) { d.progress = fn }
}

// New segments text at Markdown headings. It returns segment.ErrEmptyInput
// for empty text.
func New(text string, opts ...Option) (*Document, error) {
	fragments, err := segment.Split(text)
	if err != nil {
		return nil, err
	}

	d := &Document{fragments: fragments, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Fragments returns a copy of the document fragments in source order.
func (d *Document) Fragments() []string {
	return append([]string(nil), d.fragments...)
}

// Len returns the number of fragments.
func (d *Document) Len() int { return len(d.fragments) }

// Translate translates every fragment in order, one at a time, and returns
// the collected translations in the same order. The first error stops the
// run and is returned unchanged; later fragments are not sent.
func (d *Document) Translate(ctx context.Context, tr FragmentTranslator) ([]string, error) {
	each, err := d.TranslateEach(ctx, tr)
	if err != nil {
		return nil, err
	}
	return Flatten(each), nil
}

// TranslateEach is Translate without flattening: the result holds one entry
// per fragment, index-aligned with Fragments. An entry is empty when the
// service returned no text for that fragment.
func (d *Document) TranslateEach(ctx context.Context, tr FragmentTranslator) ([][]string, error) {
	total := len(d.fragments)
	result := make([][]string, 0, total)

	for i, fragment := range d.fragments {
		d.logger.Info("translating fragment",
			zap.Int("fragment", i+1),
			zap.Int("total", total),
			zap.Int("bytes", len(fragment)))

		translations, err := tr.Translate(ctx, fragment)
		if err != nil {
			d.logger.Error("fragment translation failed",
				zap.Int("fragment", i+1),
				zap.Int("total", total),
				zap.Error(err))
			return nil, err
		}
		result = append(result, translations)

		if d.progress != nil {
			d.progress(i+1, total)
		}
	}

	return result, nil
}

// Flatten joins per-fragment translations into one ordered list.
func Flatten(each [][]string) []string {
	var n int
	for _, t := range each {
		n += len(t)
	}
	flat := make([]string, 0, n)
	for _, t := range each {
		flat = append(flat, t...)
	}
	return flat
}
