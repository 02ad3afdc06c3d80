package main

import (
	"testing"
)

// TestInitFlowinferApp checks that all subcommands are registered.
func TestInitFlowinferApp(t *testing.T) {
	app := initFlowinferApp()
	want := []string{"generate", "sample", "quadrature", "compare", "visualize"}
	for _, name := range want {
		found := false
		for _, cmd := range app.Commands {
			if cmd.Name == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Command %v is not registered", name)
		}
	}
}
