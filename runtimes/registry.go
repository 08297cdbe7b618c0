// Package runtimes maps runtime tags to the interpreter invocations that
// execute a solution file.
package runtimes

import (
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"

	"github.com/adventkit/aoc-checker/types"
)

// ExecutionSpec is the command line that runs one solution
type ExecutionSpec struct {
	Command string
	Args    []string
}

// Handler builds the command line for a solution given the interpreter binary
type Handler func(binary, solutionPath string) ExecutionSpec

// Definition describes one supported runtime
type Definition struct {
	Runtime types.Runtime
	// Binary is the interpreter executable, looked up on PATH when not absolute
	Binary string
	// Home is the solution folder used when a runtime is checked on its own
	Home  types.Language
	Build Handler
}

// Registry wires runtime definitions and language folders together
type Registry struct {
	mu          sync.RWMutex
	definitions map[types.Runtime]Definition
	languages   map[types.Language][]types.Runtime
}

// Config contains registry configuration
type Config struct {
	Log log.Logger
	// OverridesFile optionally points at a YAML file overriding binaries and
	// the language to runtime mapping
	OverridesFile string
}

// Overrides is the YAML document accepted by Config.OverridesFile
type Overrides struct {
	Binaries  map[types.Runtime]string           `yaml:"binaries"`
	Languages map[types.Language][]types.Runtime `yaml:"languages"`
}

// NewRegistry creates the registry of built-in runtimes, applying overrides
// from cfg.OverridesFile when set.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.Log == nil {
		cfg.Log = log.New()
	}

	reg, err := New(DefaultDefinitions(), DefaultLanguages())
	if err != nil {
		return nil, err
	}

	if cfg.OverridesFile != "" {
		overrides, err := loadOverrides(cfg.OverridesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load runtime overrides: %w", err)
		}
		if err := reg.Apply(overrides); err != nil {
			return nil, fmt.Errorf("invalid runtime overrides in %s: %w", cfg.OverridesFile, err)
		}
		cfg.Log.Debug("Applied runtime overrides", "file", cfg.OverridesFile,
			"binaries", len(overrides.Binaries), "languages", len(overrides.Languages))
	}

	return reg, nil
}

// New constructs a registry from explicit definitions and language mapping
func New(defs []Definition, languages map[types.Language][]types.Runtime) (*Registry, error) {
	reg := &Registry{
		definitions: make(map[types.Runtime]Definition, len(defs)),
		languages:   make(map[types.Language][]types.Runtime, len(languages)),
	}

	for _, def := range defs {
		if def.Runtime == "" {
			return nil, fmt.Errorf("runtime definition missing runtime tag")
		}
		if def.Build == nil {
			return nil, fmt.Errorf("runtime %q has no handler", def.Runtime)
		}
		if def.Binary == "" {
			return nil, fmt.Errorf("runtime %q has no interpreter binary", def.Runtime)
		}
		if _, exists := reg.definitions[def.Runtime]; exists {
			return nil, fmt.Errorf("duplicate runtime definition for %q", def.Runtime)
		}
		reg.definitions[def.Runtime] = def
	}

	if len(reg.definitions) == 0 {
		return nil, fmt.Errorf("at least one runtime must be registered")
	}

	for lang, runtimes := range languages {
		if err := reg.setLanguage(lang, runtimes); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// Apply replaces binaries and language mappings with the given overrides
func (r *Registry) Apply(o *Overrides) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for rt, binary := range o.Binaries {
		def, ok := r.definitions[rt]
		if !ok {
			return fmt.Errorf("binary override for unknown runtime %q", rt)
		}
		if binary == "" {
			return fmt.Errorf("empty binary override for runtime %q", rt)
		}
		def.Binary = binary
		r.definitions[rt] = def
	}

	for lang, runtimes := range o.Languages {
		if err := lang.Validate(); err != nil {
			return err
		}
		if err := r.setLanguage(lang, runtimes); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) setLanguage(lang types.Language, runtimes []types.Runtime) error {
	if len(runtimes) == 0 {
		return fmt.Errorf("language %q has no runtimes", lang)
	}
	for _, rt := range runtimes {
		if _, ok := r.definitions[rt]; !ok {
			return fmt.Errorf("language %q refers to unknown runtime %q", lang, rt)
		}
	}
	r.languages[lang] = slices.Clone(runtimes)
	return nil
}

// Spec builds the command line that runs the solution at solutionPath with rt
func (r *Registry) Spec(rt types.Runtime, solutionPath string) (ExecutionSpec, error) {
	r.mu.RLock()
	def, ok := r.definitions[rt]
	r.mu.RUnlock()
	if !ok {
		return ExecutionSpec{}, fmt.Errorf("no runtime registered for %q", rt)
	}
	return def.Build(def.Binary, solutionPath), nil
}

// RuntimesFor returns the runtimes that execute solutions of lang, in order.
// Unknown languages have no runtimes.
func (r *Registry) RuntimesFor(lang types.Language) []types.Runtime {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.languages[lang])
}

// HasLanguage reports whether solutions in lang can be executed
func (r *Registry) HasLanguage(lang types.Language) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.languages[lang]
	return ok
}

// HomeLanguage returns the folder a runtime reads its solutions from when it
// is checked on its own
func (r *Registry) HomeLanguage(rt types.Runtime) (types.Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[rt]
	if !ok {
		return "", fmt.Errorf("no runtime registered for %q", rt)
	}
	return def.Home, nil
}

// loadOverrides loads runtime overrides from a YAML file
func loadOverrides(path string) (*Overrides, error) {
	log.Debug("Reading runtime overrides file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides file: %w", err)
	}

	var overrides Overrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing overrides file: %w", err)
	}

	return &overrides, nil
}
