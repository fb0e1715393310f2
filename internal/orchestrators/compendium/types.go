package compendium

import (
	"io/fs"
	"time"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/parser"
)

// ParseTreeInput defines the request for parsing a rules directory
type ParseTreeInput struct {
	// FS is the rules tree, usually os.DirFS of the rules directory
	FS fs.FS
	// Root is the directory inside FS to walk. Empty means ".".
	Root string
	// Persist saves the parsed records to the configured repository
	Persist bool
}

// ParseTreeOutput defines the result of a batch run
type ParseTreeOutput struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	// Abilities are the standalone ability documents, sorted by class,
	// level and name
	Abilities []*drawsteel.AbilityRecord
	// Features are the carrier documents with their embedded abilities
	Features []*drawsteel.FeatureRecord
	Skipped  []*Skipped
	Summary  *Summary
}

// Skipped is a document that produced no record
type Skipped struct {
	Path   string      `json:"path"`
	Reason string      `json:"reason"`
	Code   errors.Code `json:"code"`
}

// Summary counts the outcome of a batch run
type Summary struct {
	Parsed   int            `json:"parsed"`
	Skipped  int            `json:"skipped"`
	Embedded int            `json:"embedded"`
	Saved    int            `json:"saved"`
	ByClass  map[string]int `json:"by_class"`
}

// ParseFileInput defines the request for parsing one document
type ParseFileInput struct {
	Path string
	Data []byte
}

// ParseFileOutput defines the result of parsing one document
type ParseFileOutput struct {
	Document *parser.Document
}
