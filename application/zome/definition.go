// Package zome wires application code into the guest runtime: entry-type
// registration, function registration, and the exported entry point the
// conductor calls.
package zome

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/zomekit-dev/zome-sdk/application/schema"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// EntryTypeDef declares an application entry type. Sample is a struct whose
// shape documents the entry content; its generated JSON schema is embedded
// in the manifest.
type EntryTypeDef struct {
	Name        entities.EntryType
	Description string
	Sample      interface{}
}

// ZomeDef defines zome identity and its entry types.
type ZomeDef struct {
	Name        string
	Version     string
	Description string
	EntryTypes  []EntryTypeDef
}

// Manifest is what the conductor reads to learn a zome's surface.
type Manifest struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	SDKVersion  string              `json:"sdk_version"`
	EntryTypes  []EntryTypeManifest `json:"entry_types,omitempty"`
	Functions   []string            `json:"functions,omitempty"`
}

// EntryTypeManifest describes one registered entry type.
type EntryTypeManifest struct {
	Name        entities.EntryType `json:"name"`
	Description string             `json:"description,omitempty"`
	Schema      json.RawMessage    `json:"schema,omitempty"`
}

// HandlerFunc is the signature for zome function handlers: canonical
// payload bytes in, encodable result out.
type HandlerFunc func(ctx context.Context, payload []byte) (any, error)

// ZomeDefinition holds the parsed definition and registered functions.
type ZomeDefinition struct {
	def       ZomeDef
	schemas   map[entities.EntryType]json.RawMessage
	functions map[string]HandlerFunc
	mu        sync.RWMutex
}

// DefineZome creates a new zome definition.
// Call this once at package level in your zome.
func DefineZome(def ZomeDef) *ZomeDefinition {
	schemas := make(map[entities.EntryType]json.RawMessage, len(def.EntryTypes))
	for _, et := range def.EntryTypes {
		if et.Sample == nil {
			continue
		}
		generated, err := schema.GenerateSchema(et.Sample)
		if err != nil {
			panic("failed to generate entry type schema for " + string(et.Name) + ": " + err.Error())
		}
		schemas[et.Name] = generated
	}

	z := &ZomeDefinition{
		def:       def,
		schemas:   schemas,
		functions: make(map[string]HandlerFunc),
	}
	register(z)
	return z
}

// Manifest returns the complete zome manifest.
func (z *ZomeDefinition) Manifest() *Manifest {
	z.mu.RLock()
	defer z.mu.RUnlock()

	m := &Manifest{
		Name:        z.def.Name,
		Version:     z.def.Version,
		Description: z.def.Description,
		SDKVersion:  sdkVersion,
	}
	for _, et := range z.def.EntryTypes {
		m.EntryTypes = append(m.EntryTypes, EntryTypeManifest{
			Name:        et.Name,
			Description: et.Description,
			Schema:      z.schemas[et.Name],
		})
	}
	for name := range z.functions {
		m.Functions = append(m.Functions, name)
	}
	sort.Strings(m.Functions)
	return m
}

// RegisterHandler registers a raw handler under a function name.
// Most zomes use the typed Register instead.
func (z *ZomeDefinition) RegisterHandler(name string, handler HandlerFunc) {
	z.mu.Lock()
	defer z.mu.Unlock()
	if _, exists := z.functions[name]; exists {
		panic("zome: duplicate function name " + name)
	}
	z.functions[name] = handler
}

// Handler returns the handler for a function name.
func (z *ZomeDefinition) Handler(name string) (HandlerFunc, bool) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	fn, ok := z.functions[name]
	return fn, ok
}

// Register registers a typed zome function. The payload the host delivers
// is decoded into In; the returned Out is canonically encoded back.
func Register[In any, Out any](z *ZomeDefinition, name string, fn func(context.Context, In) (Out, error)) {
	z.RegisterHandler(name, func(ctx context.Context, payload []byte) (any, error) {
		var in In
		if len(payload) > 0 {
			if err := wireformat.Unmarshal(payload, &in); err != nil {
				return nil, &errors.ValidationError{Field: "payload", Reason: err.Error()}
			}
		}
		return fn(ctx, in)
	})
}

// sdkVersion is stamped into every manifest. Kept in sync with the root
// package Version constant.
const sdkVersion = "0.1.0"
