package config

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/msgc/internal/emit"
	"github.com/hashicorp/go-multierror"
)

// DefaultFile is the config file msgc looks for in the working directory.
const DefaultFile = "msgc.toml"

type Config struct {
	Schema        string         `toml:"schema"`
	OutputDir     string         `toml:"output_dir"`
	Prefix        string         `toml:"prefix"`
	Package       string         `toml:"package"`
	RuntimeImport string         `toml:"runtime_import"`
	MetricsFile   string         `toml:"metrics_file,omitempty"`
	Dispatch      DispatchConfig `toml:"dispatch"`
	Layout        LayoutConfig   `toml:"layout"`
}

// DispatchConfig locates the kind tag generated decoders peek.
type DispatchConfig struct {
	TagOffset   int `toml:"tag_offset"`
	TagWidth    int `toml:"tag_width"`
	MinPeekSize int `toml:"min_peek_size"`
}

type LayoutConfig struct {
	// LengthField names the common field patched with the encoded length.
	// Empty selects the first common field of each class.
	LengthField string `toml:"length_field"`
}

func Default() Config {
	return Config{
		OutputDir:     ".",
		RuntimeImport: emit.DefaultRuntimeImport,
		Dispatch: DispatchConfig{
			TagOffset:   0,
			TagWidth:    1,
			MinPeekSize: 4,
		},
	}
}

// Load overlays the keys defined in path onto Default. Relative paths in the
// file resolve against the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}
	base := filepath.Dir(path)

	if meta.IsDefined("schema") {
		cfg.Schema = resolve(base, raw.Schema)
	}
	if meta.IsDefined("output_dir") {
		cfg.OutputDir = resolve(base, raw.OutputDir)
	} else {
		cfg.OutputDir = base
	}
	if meta.IsDefined("prefix") {
		cfg.Prefix = strings.TrimSpace(raw.Prefix)
	}
	if meta.IsDefined("package") {
		cfg.Package = strings.TrimSpace(raw.Package)
	}
	if meta.IsDefined("runtime_import") {
		cfg.RuntimeImport = strings.TrimSpace(raw.RuntimeImport)
	}
	if meta.IsDefined("metrics_file") {
		cfg.MetricsFile = resolve(base, raw.MetricsFile)
	}
	if meta.IsDefined("dispatch", "tag_offset") {
		cfg.Dispatch.TagOffset = raw.Dispatch.TagOffset
	}
	if meta.IsDefined("dispatch", "tag_width") {
		cfg.Dispatch.TagWidth = raw.Dispatch.TagWidth
	}
	if meta.IsDefined("dispatch", "min_peek_size") {
		cfg.Dispatch.MinPeekSize = raw.Dispatch.MinPeekSize
	}
	if meta.IsDefined("layout", "length_field") {
		cfg.Layout.LengthField = strings.TrimSpace(raw.Layout.LengthField)
	}

	cfg.Normalize()
	return cfg, nil
}

func resolve(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Normalize derives the artifact prefix from the schema file name and the
// package name from the prefix when they are not set.
func (c *Config) Normalize() {
	if c.Prefix == "" && c.Schema != "" {
		c.Prefix = strings.TrimSuffix(filepath.Base(c.Schema), filepath.Ext(c.Schema))
	}
	if c.Package == "" {
		c.Package = packageName(c.Prefix)
	}
}

func packageName(prefix string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(prefix) {
		if r == '_' || unicode.IsLetter(r) || (b.Len() > 0 && unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var result *multierror.Error
	if strings.TrimSpace(c.Schema) == "" {
		result = multierror.Append(result, fmt.Errorf("schema is required"))
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		result = multierror.Append(result, fmt.Errorf("output_dir is required"))
	}
	if c.Prefix == "" || strings.ContainsAny(c.Prefix, `/\`) {
		result = multierror.Append(result, fmt.Errorf("prefix %q is not a file name prefix", c.Prefix))
	}
	if !token.IsIdentifier(c.Package) {
		result = multierror.Append(result, fmt.Errorf("package %q is not a Go identifier", c.Package))
	}
	if strings.TrimSpace(c.RuntimeImport) == "" {
		result = multierror.Append(result, fmt.Errorf("runtime_import is required"))
	}
	if err := c.DispatchOptions().Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
