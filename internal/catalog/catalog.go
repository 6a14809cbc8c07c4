package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RegistryType is the entry type that marks a registry in the minimal
// listing.
const RegistryType = "registry"

//go:embed schema/catalog.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Entry is one catalog item. Only Name and Type are interpreted.
type Entry struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// IsRegistry reports whether the entry carries the registry type marker.
func (e Entry) IsRegistry() bool {
	return e.Type == RegistryType
}

// Shape tells what kind of document the catalog endpoint returned.
type Shape int

const (
	// ShapeList is a JSON array of entries (possibly empty).
	ShapeList Shape = iota
	// ShapeNotList is any other JSON value; it lists nothing.
	ShapeNotList
)

func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeNotList:
		return "not-list"
	default:
		return "unknown"
	}
}

// Listing is a validated catalog, in response order.
type Listing struct {
	Shape   Shape
	Entries []Entry
}

// Empty reports whether there is nothing to list.
func (l Listing) Empty() bool {
	return len(l.Entries) == 0
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("catalog.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("catalog.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Parse validates a decoded catalog document. A value that is not a JSON
// array yields ShapeNotList with no error. An array whose items are not
// objects with a string name yields a *DecodeError. A null type is read as
// no type.
func Parse(raw any) (Listing, error) {
	items, ok := raw.([]any)
	if !ok {
		return Listing{Shape: ShapeNotList}, nil
	}

	schema, err := getSchema()
	if err != nil {
		return Listing{}, fmt.Errorf("loading catalog schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return Listing{}, &DecodeError{Err: describe(err)}
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return Listing{}, newDecodeError("catalog entry %d is not an object", i)
		}
		name, _ := obj["name"].(string)
		typ, _ := obj["type"].(string)
		entries = append(entries, Entry{Name: name, Type: typ})
	}

	return Listing{Shape: ShapeList, Entries: entries}, nil
}

// describe flattens a schema validation error into one line naming each
// offending location.
func describe(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	var parts []string
	var walk func(*jsonschema.ValidationError)
	walk = func(ve *jsonschema.ValidationError) {
		if len(ve.Causes) == 0 {
			path := "/" + strings.Join(ve.InstanceLocation, "/")
			msg := ""
			if ve.ErrorKind != nil {
				msg = ve.ErrorKind.LocalizedString(printer)
			}
			parts = append(parts, path+": "+msg)
			return
		}
		for _, c := range ve.Causes {
			walk(c)
		}
	}
	walk(ve)

	if len(parts) == 0 {
		return fmt.Errorf("invalid catalog: %s", ve.Error())
	}
	return fmt.Errorf("invalid catalog: %s", strings.Join(parts, "; "))
}
