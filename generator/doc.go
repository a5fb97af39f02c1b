// Package generator emits Go struct types for roster schemas.
//
// Given a profiler result, the generator declares one struct whose fields
// mirror the roster's columns: names title-cased into exported identifiers,
// types taken from the profiler's classification, pointers where a column
// has missing values, and json tags carrying the original column names.
// Output is run through goimports-equivalent processing so it compiles
// as generated.
//
// # Usage
//
//	code, err := generator.GenerateFile("membercsvjson.json")
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("roster_gen.go", code, 0644)
package generator
