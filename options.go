package gravy

import (
	"runtime"
	"time"

	"github.com/tsawler/gravy/reader"
	"github.com/tsawler/gravy/tables"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Page selection (1-indexed)
	pages []int

	settings tables.Settings
	detector string
	reader   reader.Options

	// Processing options
	workers     int
	pageTimeout time.Duration // zero means no limit
	concat      bool          // stack the selected pages into one
	skipBanners bool          // ignore words set in banner fonts
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:       nil, // nil means all pages
		settings:    tables.DefaultSettings(),
		detector:    "spokes",
		reader:      reader.DefaultOptions(),
		workers:     runtime.NumCPU(),
		skipBanners: true,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	newOpts.settings.HeaderPattern = append([]string(nil), o.settings.HeaderPattern...)
	return newOpts
}
