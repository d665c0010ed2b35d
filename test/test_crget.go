package main

import (
	"fmt"
	"os"
	"os/exec"
)

// End-to-end exercise of a built crget binary against the live registry.
// Run from a scratch directory with CRGET_BIN pointing at the binary.

func fileExists(path string) error {
	_, err := os.Stat(path)
	return err
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	crget := os.Getenv("CRGET_BIN")

	must(run(crget, "serde==1.0.0", "-o", "serde.crate"))
	must(fileExists("serde.crate"))

	must(run(crget, "-x", "lazy_static==1.4.0"))
	must(fileExists("lazy_static-1.4.0/Cargo.toml"))

	must(run(crget, "download", "anyhow=^1.0", "-x", "-o", "anyhow"))
	must(fileExists("anyhow/Cargo.toml"))

	fmt.Println("ALL TESTS PASS")
}
