//go:build ignore

package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/blang/semver"
)

// Prints the version to embed in a crget build, derived from git tags: the
// last v* tag, bumped and marked as a pre-release when the working revision
// is not the tagged one.

func describe(match ...string) string {
	args := append([]string{"describe", "--tags"}, match...)
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func main() {
	if tags, err := exec.Command("git", "tag").Output(); err != nil || len(tags) == 0 {
		// no tags found -- fetch them
		exec.Command("git", "fetch", "--tags").Run()
	}

	desc := describe("--match", "v*")
	versionStr := strings.SplitN(desc, "-", 2)[0]
	version, err := semver.ParseTolerant(versionStr)
	if err != nil {
		fmt.Println("0.0.0-unknown")
		return
	}

	if describe("--exact-match") == versionStr {
		// building a tagged release, the tag is already the version
		fmt.Println(version.String())
		return
	}

	version.Patch++
	if pr, err := semver.NewPRVersion("dev"); err == nil {
		version.Pre = append(version.Pre, pr)
	}
	if parts := strings.Split(desc, "-"); len(parts) >= 2 {
		if ahead, err := semver.NewPRVersion(parts[1]); err == nil {
			version.Pre = append(version.Pre, ahead)
		}
	}

	fmt.Println(version.String())
}
