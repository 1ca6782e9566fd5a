// Package config loads the builtin-wrapper manifest the Pass Driver
// pre-seeds before lowering a program (spec.md §4.7 step 1: "normalise
// every constructor, instance method, and static method declaration"). In a
// full compiler these wrapper classes would already exist in the standard
// library's AST; this repo's equivalent is a declarative YAML manifest,
// loaded with github.com/goccy/go-yaml, describing each wrapper's name,
// wrapped primitive kind, and which other wrappers it can convert to via a
// `to<Name>` static method.
package config

import (
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/maruel/natural"
	"github.com/tidwall/sjson"

	"github.com/corvidlang/unboxlower/internal/types"
)

// WrapperSpec is one entry of the manifest: a boxed-primitive wrapper class.
type WrapperSpec struct {
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind"`
	ConvertTo []string `yaml:"convertTo"`
	HasValueOf bool    `yaml:"hasValueOf"`
}

// Manifest is the decoded YAML document: the full list of builtin wrappers.
type Manifest struct {
	Wrappers []WrapperSpec `yaml:"wrappers"`
}

// DefaultManifestYAML is the manifest shipped with this repo, covering the
// eight primitive kinds spec.md §3 enumerates. Exposed as a constant (rather
// than only a file on disk) so the CLI and tests can run without a
// filesystem dependency, mirroring go-dws's pattern of embedding defaults
// alongside file-based overrides.
const DefaultManifestYAML = `
wrappers:
  - name: Boolean
    kind: Bool
    convertTo: []
    hasValueOf: true
  - name: Char
    kind: Char
    convertTo: [Int]
    hasValueOf: true
  - name: Byte
    kind: Byte
    convertTo: [Short, Int, Long, Float, Double, Char]
    hasValueOf: true
  - name: Short
    kind: Short
    convertTo: [Int, Long, Float, Double]
    hasValueOf: true
  - name: Int
    kind: Int
    convertTo: [Long, Float, Double]
    hasValueOf: true
  - name: Long
    kind: Long
    convertTo: [Float, Double]
    hasValueOf: true
  - name: Float
    kind: Float
    convertTo: [Double, Int]
    hasValueOf: true
  - name: Double
    kind: Double
    convertTo: [Long]
    hasValueOf: true
`

// ParseManifest decodes a YAML manifest document.
func ParseManifest(doc []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("config: parse manifest: %w", err)
	}
	return &m, nil
}

// ApplyOverride patches a single `wrappers.N.field=value`-style JSON path
// onto a raw manifest document before it's decoded, using sjson — this is
// what backs the CLI's `--set` flag (e.g. `--set wrappers.0.hasValueOf=false`)
// for experimenting with the pre-seed step without editing a file.
func ApplyOverride(doc []byte, path, value string) ([]byte, error) {
	out, err := sjson.SetBytes(doc, path, value)
	if err != nil {
		return nil, fmt.Errorf("config: apply override %s=%s: %w", path, value, err)
	}
	return out, nil
}

// parseKind maps a manifest's string kind to a types.PrimitiveKind.
func parseKind(s string) (types.PrimitiveKind, error) {
	switch s {
	case "Bool":
		return types.Bool, nil
	case "Char":
		return types.Char, nil
	case "Byte":
		return types.Byte, nil
	case "Short":
		return types.Short, nil
	case "Int":
		return types.Int, nil
	case "Long":
		return types.Long, nil
	case "Float":
		return types.Float, nil
	case "Double":
		return types.Double, nil
	default:
		return 0, fmt.Errorf("config: unknown primitive kind %q", s)
	}
}

// BuildWrappers turns a decoded Manifest into the *types.Object registry a
// checker.Standard is constructed from, wiring each wrapper's `unboxed()`
// instance method, its single-primitive-argument constructor, its
// `to<Target>` static conversion methods, and — unless the manifest says
// otherwise — its `valueOf` method (spec.md §4.3's special case: valueOf
// keeps a boxed return type; see internal/unbox/decl.go).
func BuildWrappers(m *Manifest) (map[types.PrimitiveKind]*types.Object, error) {
	byName := make(map[string]*types.Object, len(m.Wrappers))
	kindOf := make(map[string]types.PrimitiveKind, len(m.Wrappers))

	for _, spec := range m.Wrappers {
		k, err := parseKind(spec.Kind)
		if err != nil {
			return nil, err
		}
		kindOf[spec.Name] = k
		prim := &types.Primitive{Kind: k}
		obj := &types.Object{
			Name:            spec.Name,
			InstanceMethods: map[string]*types.Method{},
			StaticMethods:   map[string]*types.Method{},
			Boxed:           &k,
		}
		obj.InstanceMethods["unboxed"] = &types.Method{Name: "unboxed", Params: nil, Return: prim}
		obj.Constructors = []*types.Method{{Name: "new", Params: []types.Type{prim}}}
		if spec.HasValueOf {
			obj.InstanceMethods["valueOf"] = &types.Method{Name: "valueOf", Params: []types.Type{prim}, Return: obj}
		}
		byName[spec.Name] = obj
	}

	// Second pass: wire `to<Target>` static methods now that every wrapper
	// object exists, so a conversion's declared return type can point at
	// the actual target wrapper's primitive.
	for _, spec := range m.Wrappers {
		obj := byName[spec.Name]
		fromPrim := &types.Primitive{Kind: kindOf[spec.Name]}
		for _, target := range spec.ConvertTo {
			targetKind, ok := kindOf[target]
			if !ok {
				return nil, fmt.Errorf("config: wrapper %q converts to unknown wrapper %q", spec.Name, target)
			}
			name := "to" + target
			obj.StaticMethods[name] = &types.Method{
				Name:     name,
				Params:   []types.Type{fromPrim},
				Return:   &types.Primitive{Kind: targetKind},
				IsStatic: true,
			}
		}
	}

	result := make(map[types.PrimitiveKind]*types.Object, len(byName))
	for name, obj := range byName {
		result[kindOf[name]] = obj
	}
	return result, nil
}

// WrapperNames returns the manifest's wrapper names in natural sort order
// (Int8 before Int16 before Int32, not lexicographic). The Pass Driver does
// not call it; its pre-seed step logs nothing.
func WrapperNames(m *Manifest) []string {
	names := make([]string, len(m.Wrappers))
	for i, w := range m.Wrappers {
		names[i] = w.Name
	}
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	return names
}
