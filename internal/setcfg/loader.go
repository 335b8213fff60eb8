package setcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// extensions tried in order for every config file
var extensions = []string{".yaml", ".yml", ".toml"}

const defaultName = "default"

// Paths helper for default/set/profile files. Paths carry no extension.
type Paths struct {
	BaseDir string // base directory, e.g., /etc/setcalc
}

func (p Paths) SetsDir() string {
	return filepath.Join(p.BaseDir, "sets")
}
func (p Paths) DefaultPath() string {
	return filepath.Join(p.SetsDir(), defaultName)
}
func (p Paths) SetPath(code string) string {
	return filepath.Join(p.SetsDir(), code)
}
func (p Paths) ProfilePath(code, profile string) string {
	return filepath.Join(p.SetsDir(), code, "profiles", profile)
}

// Loader reads set configs and merges default → set → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: "CODE" or "CODE/profile"
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the file layout the loader reads from.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → set → profile (profile optional).
// It returns the merged RawConfig without validation. A set with no file
// of its own is an error; default and profile files are optional.
func (l *Loader) LoadMerged(code, profile string) (RawConfig, error) {
	key := cacheKey(code, profile)
	l.mu.RLock()
	cfg, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		log.Debug().Str("key", key).Msg("set config cache hit")
		return cfg, nil
	}

	defCfg, _, err := readConfig(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	setCfg, found, err := readConfig(l.paths.SetPath(code))
	if err != nil {
		return RawConfig{}, fmt.Errorf("read set %s: %w", code, err)
	}
	if !found {
		return RawConfig{}, fmt.Errorf("set %s: %w", code, ErrUnknownSet)
	}
	var profCfg RawConfig
	if profile != "" {
		profCfg, _, err = readConfig(l.paths.ProfilePath(code, profile))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %s/%s: %w", code, profile, err)
		}
	}

	setLevel := mergeRaw(defCfg, setCfg)
	if setLevel.Code == "" {
		setLevel.Code = code
	}
	merged := mergeRaw(setLevel, profCfg)

	l.mu.Lock()
	l.cache[code] = setLevel
	l.cache[key] = merged
	l.mu.Unlock()
	log.Debug().Str("key", key).Msg("set config loaded")

	return merged, nil
}

// ListSets returns the codes of every set file, sorted.
func (l *Loader) ListSets() ([]string, error) {
	entries, err := os.ReadDir(l.paths.SetsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var codes []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !slices.Contains(extensions, ext) {
			continue
		}
		code := strings.TrimSuffix(e.Name(), ext)
		if code == defaultName || slices.Contains(codes, code) {
			continue
		}
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

func cacheKey(code, profile string) string {
	if profile == "" {
		return code
	}
	return code + "/" + profile
}

// readConfig loads the first existing file among base+ext. Missing files
// return a zero cfg, found=false and no error.
func readConfig(base string) (RawConfig, bool, error) {
	for _, ext := range extensions {
		b, err := os.ReadFile(base + ext)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return RawConfig{}, false, err
		}
		cfg, err := decode(b, ext)
		if err != nil {
			return RawConfig{}, false, fmt.Errorf("%s: %w", base+ext, err)
		}
		return cfg, true, nil
	}
	return RawConfig{}, false, nil
}

func decode(b []byte, ext string) (RawConfig, error) {
	var cfg RawConfig
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return RawConfig{}, err
		}
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return RawConfig{}, err
		}
	}
	return cfg, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
// Slices (precedence, bundles) are replaced, not appended.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	// top-level scalars
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Code != "" {
		out.Code = b.Code
	}
	if b.Name != "" {
		out.Name = b.Name
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.Alpha != nil {
		out.Alpha = b.Alpha
	}

	out.Totals = mergeCounts(a.Totals, b.Totals)
	out.PerPack = mergeRates(a.PerPack, b.PerPack)
	out.Melt = mergeRates(a.Melt, b.Melt)
	out.WildcardValues = mergeRates(a.WildcardValues, b.WildcardValues)

	// model
	switch {
	case out.Model == nil && b.Model != nil:
		c := *b.Model
		out.Model = &c
	case out.Model != nil && b.Model != nil:
		c := *out.Model
		if b.Model.HorizonCap != nil {
			c.HorizonCap = b.Model.HorizonCap
		}
		if b.Model.Validation != "" {
			c.Validation = b.Model.Validation
		}
		if len(b.Model.Precedence) > 0 {
			c.Precedence = append([]string(nil), b.Model.Precedence...)
		}
		out.Model = &c
	}

	// store
	switch {
	case out.Store == nil && b.Store != nil:
		c := *b.Store
		out.Store = &c
	case out.Store != nil && b.Store != nil:
		c := *out.Store
		if b.Store.Currency != "" {
			c.Currency = b.Store.Currency
		}
		if len(b.Store.Bundles) > 0 {
			c.Bundles = append([]BundleConfig(nil), b.Store.Bundles...)
		}
		out.Store = &c
	}

	return out
}

func mergeCounts(a, b RawCounts) RawCounts {
	out := a
	if b.Common != nil {
		out.Common = b.Common
	}
	if b.Uncommon != nil {
		out.Uncommon = b.Uncommon
	}
	if b.Rare != nil {
		out.Rare = b.Rare
	}
	if b.Mythic != nil {
		out.Mythic = b.Mythic
	}
	return out
}

func mergeRates(a, b RawRates) RawRates {
	out := a
	if b.Common != nil {
		out.Common = b.Common
	}
	if b.Uncommon != nil {
		out.Uncommon = b.Uncommon
	}
	if b.Rare != nil {
		out.Rare = b.Rare
	}
	if b.Mythic != nil {
		out.Mythic = b.Mythic
	}
	return out
}
