// Package source fetches raw practice text and turns it into sentences.
package source

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/f3rmion/swty/internal/text"
	"github.com/rs/zerolog"
)

//go:embed sentences.txt
var embeddedSentences string

// Source provides the sentence list for a round.
type Source interface {
	// Fetch returns cleaned, non-empty sentences.
	Fetch(ctx context.Context) ([]string, error)
	// Describe names the source for logs and history.
	Describe() string
}

// Options selects and configures a Source.
type Options struct {
	URL     string
	File    string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// New picks the HTTP source when a URL is set, then a file source, and
// falls back to the built-in sentence list.
func New(opts Options) Source {
	switch {
	case opts.URL != "":
		return NewClient(opts.URL, WithTimeout(opts.Timeout), WithLogger(opts.Logger))
	case opts.File != "":
		return &FileSource{Path: opts.File, Logger: opts.Logger}
	default:
		return Embedded{}
	}
}

// FileSource reads comma or newline separated sentences from a local file.
type FileSource struct {
	Path   string
	Logger zerolog.Logger
}

// Fetch reads and parses the file.
func (f *FileSource) Fetch(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading sentence file: %w", err)
	}

	sentences := text.ParseCSV(string(data))
	f.Logger.Debug().Str("path", f.Path).Int("sentences", len(sentences)).Msg("loaded sentence file")
	return sentences, nil
}

// Describe returns the file path.
func (f *FileSource) Describe() string {
	return "file:" + f.Path
}

// Embedded serves the sentence list compiled into the binary.
type Embedded struct{}

// Fetch parses the built-in list.
func (Embedded) Fetch(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return text.ParseCSV(embeddedSentences), nil
}

// Describe returns "builtin".
func (Embedded) Describe() string {
	return "builtin"
}
