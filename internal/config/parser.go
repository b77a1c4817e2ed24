package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/surge/internal/shape"
	"github.com/wesleyorama2/surge/pkg/jsonpath"
	"github.com/wesleyorama2/surge/pkg/jsonschema"
)

//go:embed profile.schema.json
var profileSchemaSource []byte

var profileSchema = jsonschema.MustCompile("profile.schema.json", profileSchemaSource)

// Default settings.
const (
	DefaultTimeUnit   = time.Second
	DefaultMaxLatency = time.Second
)

// LoadConfig loads a profile from a file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
func LoadConfig(path string) (*ProfileConfig, error) {
	return LoadProfile(path, "")
}

// LoadProfile loads a profile embedded in a larger document. selector is a
// JSONPath expression ($.tests[0].profile) naming the profile object; an
// empty selector means the whole document.
func LoadProfile(path, selector string) (*ProfileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseProfile(data, path, selector)
}

// ParseConfig parses a whole document as a profile.
//
// The format is determined by the file extension in path, or defaults to YAML
// if the path is empty or has an unknown extension.
func ParseConfig(data []byte, path string) (*ProfileConfig, error) {
	return ParseProfile(data, path, "")
}

// ParseProfile parses the profile found at selector inside data.
//
// The document is normalised to JSON, checked against the profile schema and
// then decoded. Schema failures are returned as *ValidationErrors.
func ParseProfile(data []byte, path, selector string) (*ProfileConfig, error) {
	doc, err := toJSON(data, path)
	if err != nil {
		return nil, err
	}

	if selector != "" {
		doc, err = jsonpath.SelectObject(doc, selector)
		if err != nil {
			return nil, fmt.Errorf("failed to select profile: %w", err)
		}
	}

	if err := profileSchema.Validate(doc); err != nil {
		return nil, schemaErrors(err)
	}

	var config ProfileConfig
	if err := json.Unmarshal(doc, &config); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &config, nil
}

// toJSON converts a YAML or JSON document to JSON.
func toJSON(data []byte, path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		var v interface{}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
		return data, nil
	}

	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		if ext == ".yaml" || ext == ".yml" || ext == "" {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
		return nil, fmt.Errorf("failed to parse config (unknown format %s): %w", ext, err)
	}

	out, err := json.Marshal(normalize(v))
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML config: %w", err)
	}
	return out, nil
}

// normalize rewrites YAML maps with non-string keys so they encode as JSON.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, item := range t {
			m[fmt.Sprint(k)] = normalize(item)
		}
		return m
	case []interface{}:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	default:
		return v
	}
}

func schemaErrors(err error) error {
	verrs, ok := err.(jsonschema.ValidationErrors)
	if !ok {
		return fmt.Errorf("failed to check profile schema: %w", err)
	}

	errs := &ValidationErrors{}
	for _, v := range verrs {
		errs.Add(fieldPath(v.Pointer), v.Message)
	}
	return errs
}

// fieldPath turns a JSON pointer into a dotted field path:
// /segments/2/duration -> segments[2].duration
func fieldPath(pointer string) string {
	if pointer == "" {
		return ""
	}

	var sb strings.Builder
	for _, tok := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
		if _, err := strconv.Atoi(tok); err == nil {
			sb.WriteString("[" + tok + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(tok)
	}
	return sb.String()
}

// ParseDurationString parses a duration string with support for common formats.
//
// Supported formats:
//   - Standard Go duration: "30s", "2m", "1h30m", "500ms"
//   - Seconds as integer: "30" (treated as 30 seconds)
func ParseDurationString(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}

	seconds, err := strconv.Atoi(s)
	if err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	return 0, fmt.Errorf("invalid duration format: %s", s)
}

// ApplyDefaults applies default values to a ProfileConfig.
//
// An empty mode is inferred from the first segment that names its kind.
func ApplyDefaults(config *ProfileConfig) {
	if config.Settings.TimeUnit == 0 {
		config.Settings.TimeUnit = Duration(DefaultTimeUnit)
	}
	if config.Settings.MaxLatency == 0 {
		config.Settings.MaxLatency = Duration(DefaultMaxLatency)
	}
	if config.Settings.MaxSamples == 0 {
		config.Settings.MaxSamples = shape.DefaultMaxSamples
	}

	if config.Mode == "" {
		for _, seg := range config.Ramps {
			if seg == nil {
				continue
			}
			if kind, err := seg.Kind(); err == nil && kind != "" {
				config.Mode = kind
				break
			}
		}
	}

	for i, seg := range config.Ramps {
		if seg != nil && seg.Name == "" {
			seg.Name = fmt.Sprintf("segment_%d", i+1)
		}
	}
}

// Segments converts the segment list to compiler segments, preserving order.
// Entries that only set shared fields take the profile's mode. A null entry
// stays a nil hole.
func (c *ProfileConfig) Segments() ([]shape.Segment, error) {
	segs := make([]shape.Segment, len(c.Ramps))
	for i, sc := range c.Ramps {
		if sc == nil {
			continue
		}

		kind, err := sc.Kind()
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d %v", shape.ErrMalformedList, i, err)
		}
		if kind == "" {
			kind = c.Mode
		}

		switch kind {
		case shape.ModeQPS:
			segs[i] = sc.QPS()
		case shape.ModeConcurrency:
			segs[i] = sc.Concurrency()
		default:
			return nil, fmt.Errorf("%w: segment %d has no kind and profile has no mode", shape.ErrMalformedList, i)
		}
	}
	return segs, nil
}

// Options returns the compile options for this profile.
func (c *ProfileConfig) Options() shape.Options {
	return shape.Options{MaxSamples: c.Settings.MaxSamples}
}

// Compile renders the profile into a timeline.
func (c *ProfileConfig) Compile() (shape.Timeline, error) {
	segs, err := c.Segments()
	if err != nil {
		return nil, err
	}
	return shape.CompileWithOptions(c.Mode, segs, c.Options())
}
