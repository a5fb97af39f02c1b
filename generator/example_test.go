package generator_test

import (
	"fmt"
	"log"

	"github.com/erraggy/rostertools/generator"
	"github.com/erraggy/rostertools/parser"
	"github.com/erraggy/rostertools/profiler"
)

// ExampleGenerator_Generate demonstrates generating a Go struct from a roster
func ExampleGenerator_Generate() {
	records := []parser.Record{
		{"EMP ID": "E001", "Name": "Ada Park"},
		{"EMP ID": "E002", "Name": "Ben Ito"},
	}
	profile := profiler.New().ProfileRecords(records, []string{"EMP ID", "Name"})

	g := generator.New()
	g.TypeName = "Employee"
	g.PackageName = "hr"

	code, err := g.Generate(profile)
	if err != nil {
		log.Fatalf("Generate failed: %v", err)
	}

	fmt.Print(string(code))
	// Output:
	// // Code generated by rostertools. DO NOT EDIT.
	//
	// package hr
	//
	// // Employee is one row of the roster.
	// type Employee struct {
	// 	EmpId string `json:"EMP ID"`
	// 	Name  string `json:"Name"`
	// }
}
