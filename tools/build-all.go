//go:build ignore

package main

import (
	"fmt"
	"os"
	"os/exec"
)

// Cross-builds release packages for every supported platform by invoking
// `make package` once per GOOS/GOARCH pair.

func pkg(tos, arch string) {
	cmd := exec.Command("make", "package")
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("GOOS=%s", tos),
		fmt.Sprintf("GOARCH=%s", arch),
	)
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func main() {
	targets := []struct {
		OS   string
		Arch string
	}{
		{"darwin", "amd64"},
		{"darwin", "arm64"},
		{"linux", "amd64"},
		{"linux", "arm64"},
		{"windows", "amd64"},
	}

	for _, t := range targets {
		fmt.Printf("%s-%s\n", t.OS, t.Arch)
		pkg(t.OS, t.Arch)
	}
}
