// Package manifest loads the YAML file that declares command-backed
// capabilities and the titles of the built-in catalogue.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Manifest is the root of the file. Entries that fail validation are kept
// out of Capabilities and reported in Rejected.
type Manifest struct {
	Catalog      Catalog      `yaml:"catalog" json:"catalog,omitempty" jsonschema:"description=Titles searched by the built-in capability"`
	Capabilities []Capability `yaml:"capabilities" json:"capabilities,omitempty" jsonschema:"description=Command-backed capabilities"`
	Rejected     []EntryError `yaml:"-" json:"-"`
}

type Catalog struct {
	Titles []string `yaml:"titles" json:"titles,omitempty"`
}

// Capability declares one command-backed capability.
type Capability struct {
	Name        string      `yaml:"name" json:"name" jsonschema:"required,minLength=1"`
	Description string      `yaml:"description" json:"description,omitempty"`
	Query       *QuerySpec  `yaml:"query" json:"query,omitempty"`
	Command     CommandSpec `yaml:"command" json:"command" jsonschema:"required"`
}

// EntryError describes a capabilities entry that was dropped.
type EntryError struct {
	Index int
	Name  string
	Err   error
}

func (e EntryError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("capabilities[%d]: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("capabilities[%d] (%s): %v", e.Index, e.Name, e.Err)
}

func (e EntryError) Unwrap() error { return e.Err }

// QuerySpec answers Query with either a fixed string or a command's stdout.
type QuerySpec struct {
	Static string   `yaml:"static" json:"static,omitempty"`
	Run    []string `yaml:"run" json:"run,omitempty"`
}

// CommandSpec runs argv for every Command. The text is appended as the last
// argument unless Stdin is set.
type CommandSpec struct {
	Run   []string `yaml:"run" json:"run" jsonschema:"required,minItems=1"`
	Stdin bool     `yaml:"stdin" json:"stdin,omitempty"`
}

var ErrInvalid = errors.New("invalid manifest")

var (
	schemaOnce     sync.Once
	schemaJSON     []byte
	compiledSchema *jsonschema.Schema
	entrySchema    *jsonschema.Schema
	schemaErr      error
)

const (
	schemaURL      = "search-popup-manifest.json"
	entrySchemaURL = schemaURL + "#/properties/capabilities/items"
)

// Schema returns the JSON schema manifests are validated against.
func Schema() ([]byte, error) {
	if err := loadSchema(); err != nil {
		return nil, err
	}
	return append([]byte(nil), schemaJSON...), nil
}

func loadSchema() error {
	schemaOnce.Do(func() {
		r := &invopop.Reflector{
			Anonymous:                  true,
			ExpandedStruct:             true,
			DoNotReference:             true,
			RequiredFromJSONSchemaTags: true,
		}
		raw, err := json.MarshalIndent(r.Reflect(&Manifest{}), "", "  ")
		if err != nil {
			schemaErr = fmt.Errorf("marshal manifest schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
			schemaErr = fmt.Errorf("add manifest schema: %w", err)
			return
		}
		compiled, err := compiler.Compile(schemaURL)
		if err != nil {
			schemaErr = fmt.Errorf("compile manifest schema: %w", err)
			return
		}
		entry, err := compiler.Compile(entrySchemaURL)
		if err != nil {
			schemaErr = fmt.Errorf("compile manifest entry schema: %w", err)
			return
		}
		schemaJSON = raw
		compiledSchema = compiled
		entrySchema = entry
	})
	return schemaErr
}

// Load reads the manifest at path. An empty path or a missing file yields an
// empty manifest.
func Load(path string) (Manifest, error) {
	if strings.TrimSpace(path) == "" {
		return Manifest{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return Manifest{}, fmt.Errorf("read manifest %q: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest %q: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest YAML. A document that is not a manifest at all is an
// error; a bad capabilities entry only lands in Rejected.
func Parse(data []byte) (Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Manifest{}, nil
	}
	if err := loadSchema(); err != nil {
		return Manifest{}, err
	}
	asJSON, err := yaml.YAMLToJSON(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("decoding manifest YAML: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(asJSON))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return Manifest{}, fmt.Errorf("decoding manifest YAML: %w", err)
	}
	root, ok := doc.(map[string]interface{})
	if !ok {
		return Manifest{}, fmt.Errorf("%w: top level must be a mapping", ErrInvalid)
	}
	rawEntries, hasEntries := root["capabilities"]
	delete(root, "capabilities")
	if err := compiledSchema.Validate(root); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var m Manifest
	if err := remarshal(root, &m); err != nil {
		return Manifest{}, fmt.Errorf("decoding manifest: %w", err)
	}
	if !hasEntries || rawEntries == nil {
		return m, nil
	}
	entries, ok := rawEntries.([]interface{})
	if !ok {
		return Manifest{}, fmt.Errorf("%w: capabilities must be a list", ErrInvalid)
	}
	for i, raw := range entries {
		c, err := parseEntry(raw)
		if err != nil {
			m.Rejected = append(m.Rejected, EntryError{Index: i, Name: entryName(raw), Err: err})
			continue
		}
		m.Capabilities = append(m.Capabilities, c)
	}
	return m, nil
}

func parseEntry(raw interface{}) (Capability, error) {
	if err := entrySchema.Validate(raw); err != nil {
		return Capability{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var c Capability
	if err := remarshal(raw, &c); err != nil {
		return Capability{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return Capability{}, err
	}
	return c, nil
}

func remarshal(in interface{}, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func entryName(raw interface{}) string {
	if fields, ok := raw.(map[string]interface{}); ok {
		if name, ok := fields["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

// Validate applies the checks the schema cannot express to one entry.
// Duplicate names are left to the registry.
func (c Capability) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}
	if len(c.Command.Run) == 0 || strings.TrimSpace(c.Command.Run[0]) == "" {
		return fmt.Errorf("%w: capability %s: command.run required", ErrInvalid, name)
	}
	if q := c.Query; q != nil {
		hasStatic := q.Static != ""
		hasRun := len(q.Run) > 0
		if hasStatic == hasRun {
			return fmt.Errorf("%w: capability %s: query needs exactly one of static or run", ErrInvalid, name)
		}
		if hasRun && strings.TrimSpace(q.Run[0]) == "" {
			return fmt.Errorf("%w: capability %s: query.run needs a program", ErrInvalid, name)
		}
	}
	return nil
}
