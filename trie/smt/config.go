package smt

import (
	"github.com/eth2030/bsmt/trie/tlog"
	"github.com/eth2030/bsmt/trie/trmetrics"
)

// Config bundles the engine's injectable dependencies: the domain-
// separation tag bytes (documented here, not reconfigurable -- see
// hasher.go), the key bit-length, and optional logging/metrics sinks.
type Config struct {
	LeafTag   byte
	BranchTag byte
	RootTag   byte
	KeyBits   int

	Logger  *tlog.Logger
	Metrics *trmetrics.Recorder
}

// DefaultConfig returns a Config with the fixed tag bytes, KeyBits, and a
// "trie"-tagged logger. Metrics is left nil (disabled) until the caller
// supplies a Recorder registered against their own prometheus.Registerer.
func DefaultConfig() Config {
	return Config{
		LeafTag:   tagLeaf,
		BranchTag: tagBranch,
		RootTag:   tagRoot,
		KeyBits:   KeyBits,
		Logger:    tlog.Module("trie"),
	}
}
