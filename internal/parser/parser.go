// Package parser recovers structured Draw Steel abilities from rules markdown.
//
// Each section of an ability (power roll, effects, persistent clause, cost
// options, targeting, stat block) has its own extractor. Extractors never
// fail: a missing section is nil and a clause that does not validate is kept
// as plain text. The assembler composes the extractors into an AbilityRecord.
package parser

import (
	"github.com/KirkDiggler/steel-compendium/internal/errors"
)

// Config holds the parser dependencies
type Config struct {
	// Vocabulary is the matching data. Nil uses DefaultVocabulary.
	Vocabulary *Vocabulary
}

// Validate checks the configured vocabulary
func (c *Config) Validate() error {
	if c.Vocabulary == nil {
		return nil
	}
	return c.Vocabulary.Validate()
}

// Parser extracts abilities from markdown. It holds no per-document state and
// is safe for concurrent use.
type Parser struct {
	vocab *Vocabulary
}

// New creates a parser
func New(cfg *Config) (*Parser, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	vocab := cfg.Vocabulary
	if vocab == nil {
		vocab = DefaultVocabulary()
	}

	return &Parser{vocab: vocab.compile()}, nil
}

// Default returns a parser using the built-in vocabulary
func Default() *Parser {
	return &Parser{vocab: DefaultVocabulary().compile()}
}

// Vocabulary returns the vocabulary in use
func (p *Parser) Vocabulary() *Vocabulary {
	return p.vocab
}
