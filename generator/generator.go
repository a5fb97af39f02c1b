package generator

import (
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/erraggy/rostertools/parser"
	"github.com/erraggy/rostertools/profiler"
)

const (
	// DefaultTypeName is the struct name generated when none is configured.
	DefaultTypeName = "RosterRecord"
	// DefaultPackageName is the package generated code is placed in when
	// none is configured.
	DefaultPackageName = "roster"
)

// Generator emits a Go struct type for a profiled roster schema
type Generator struct {
	// TypeName is the name of the generated struct.
	// Defaults to "RosterRecord" if not set.
	TypeName string
	// PackageName is the package the generated file declares.
	// Defaults to "roster" if not set.
	PackageName string
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		TypeName:    DefaultTypeName,
		PackageName: DefaultPackageName,
	}
}

// GenerateFile parses and profiles a roster file or URL, then generates a Go
// struct for its schema.
func GenerateFile(path string) ([]byte, error) {
	parsed, err := parser.New().Parse(path)
	if err != nil {
		return nil, err
	}
	profile := profiler.New().Profile(parsed)
	return New().Generate(profile)
}

// typeName returns the configured type name or the default.
func (g *Generator) typeName() string {
	if g.TypeName != "" {
		return g.TypeName
	}
	return DefaultTypeName
}

// packageName returns the configured package name or the default.
func (g *Generator) packageName() string {
	if g.PackageName != "" {
		return g.PackageName
	}
	return DefaultPackageName
}

// Generate emits a formatted Go source file declaring one struct whose
// fields mirror the profiled roster columns. Field types follow the
// profiler's classification; columns with missing values become pointers so
// absence survives a round-trip through encoding/json.
func (g *Generator) Generate(profile *profiler.ProfileResult) ([]byte, error) {
	if profile == nil {
		return nil, fmt.Errorf("generator: profile cannot be nil")
	}
	if len(profile.Fields) == 0 {
		return nil, fmt.Errorf("generator: profile has no fields")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "// Code generated by rostertools. DO NOT EDIT.\n\n")
	fmt.Fprintf(&sb, "package %s\n\n", g.packageName())
	fmt.Fprintf(&sb, "// %s is one row of the roster.\n", g.typeName())
	fmt.Fprintf(&sb, "type %s struct {\n", g.typeName())

	used := make(map[string]bool)
	for _, fp := range profile.Fields {
		name := uniqueName(fieldName(fp.Name), used)
		fmt.Fprintf(&sb, "\t%s %s `json:\"%s\"`\n", name, goType(fp), fp.Name)
	}
	sb.WriteString("}\n")

	formatted, err := formatAndFixImports("generated.go", []byte(sb.String()))
	if err != nil {
		return nil, fmt.Errorf("generator: failed to format generated code: %w", err)
	}
	return formatted, nil
}

// goType maps a field profile to a Go type.
func goType(fp *profiler.FieldProfile) string {
	var base string
	switch fp.Type {
	case profiler.FieldTypeString:
		base = "string"
	case profiler.FieldTypeNumber:
		base = "float64"
	case profiler.FieldTypeBool:
		base = "bool"
	default:
		// Null and mixed columns keep the decoded value as-is.
		return "any"
	}
	if fp.Missing > 0 {
		return "*" + base
	}
	return base
}

// formatAndFixImports formats Go source code and fixes its imports, so
// generated code compiles without a goimports pass.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

// uniqueName suffixes a field name with a counter when two roster columns
// collapse to the same Go identifier.
func uniqueName(name string, used map[string]bool) string {
	if !used[name] {
		used[name] = true
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}
