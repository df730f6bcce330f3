package tables

import (
	"context"
	"sort"
	"sync"

	"github.com/tsawler/gravy/model"
)

// Detector is the interface for table detection algorithms
type Detector interface {
	// Detect finds tables in a page
	Detect(page *model.Page) ([]*Table, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(s Settings) error
}

// Factory creates a fresh detector. Detectors carry their own settings, so
// each caller gets its own instance.
type Factory func() Detector

// DetectorRegistry holds registered detector factories
type DetectorRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		factories: make(map[string]Factory),
	}
}

// Register registers a detector factory under the name of the detector it
// builds
func (r *DetectorRegistry) Register(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[f().Name()] = f
}

// Get creates a detector by name, or returns nil if none is registered
func (r *DetectorRegistry) Get(name string) Detector {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return f()
}

// List returns all registered detector names, sorted
func (r *DetectorRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector factory globally
func RegisterDetector(f Factory) {
	globalRegistry.Register(f)
}

// GetDetector creates a detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	RegisterDetector(func() Detector { return NewSpokeDetector() })
}

// SpokeDetector finds header-driven tables and resolves their spokes
type SpokeDetector struct {
	settings Settings
	fonts    Fonts
}

// NewSpokeDetector creates a detector with default settings
func NewSpokeDetector() *SpokeDetector {
	return &SpokeDetector{settings: DefaultSettings()}
}

// Name returns "spokes"
func (d *SpokeDetector) Name() string {
	return "spokes"
}

// Configure validates and applies settings
func (d *SpokeDetector) Configure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d.settings = s
	return nil
}

// Settings returns the detector's settings
func (d *SpokeDetector) Settings() Settings {
	return d.settings
}

// WithFonts makes the detector ignore words set in banner fonts, such as
// report titles repeated at the top of the first page.
func (d *SpokeDetector) WithFonts(f Fonts) *SpokeDetector {
	d.fonts = f
	return d
}

// Detect finds the tables in a page
func (d *SpokeDetector) Detect(page *model.Page) ([]*Table, error) {
	return d.DetectContext(context.Background(), page)
}

// DetectContext is Detect with cancellation between tables
func (d *SpokeDetector) DetectContext(ctx context.Context, page *model.Page) ([]*Table, error) {
	if len(d.fonts) > 0 {
		filtered := *page
		filtered.Words = nil
		for _, w := range page.Words {
			if !d.fonts.IsBanner(w) {
				filtered.Words = append(filtered.Words, w)
			}
		}
		page = &filtered
	}
	return Extract(ctx, page, d.settings)
}
