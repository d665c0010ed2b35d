package main

import (
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// A Crate identifies a package to download: a name plus a version
// requirement. Crates are parsed once from the CRATE[=VERSION] argument and
// are immutable afterwards.
type Crate struct {
	Name    string
	Version CrateVersion
}

// ParseCrate parses a CRATE[=VERSION] token. The token is split on the first
// '=' and both halves are trimmed, so " serde = 1.0 " parses the same as
// "serde=1.0". The name must be non-empty and consist of alphanumerics, '-'
// and '_' only; this holds on both the bare-name and name=version paths.
func ParseCrate(s string) (Crate, error) {
	parts := strings.SplitN(s, "=", 2)
	name := strings.TrimSpace(parts[0])
	if !validCrateName(name) {
		return Crate{}, &CrateError{Spec: s, Err: &NameError{Name: name}}
	}
	if len(parts) == 1 {
		return Crate{Name: name, Version: AnyVersion()}, nil
	}
	version, err := ParseCrateVersion(strings.TrimSpace(parts[1]))
	if err != nil {
		return Crate{}, &CrateError{Spec: s, Err: err}
	}
	return Crate{Name: name, Version: version}, nil
}

// validCrateName reports whether name is a legal crate name. The empty name
// is rejected explicitly: every character of "" trivially passes the
// character check.
func validCrateName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
			return false
		}
	}
	return true
}

func (c Crate) String() string {
	return c.Name + "=" + c.Version.String()
}

func (c Crate) Equal(o Crate) bool {
	return c.Name == o.Name && c.Version.Equal(o.Version)
}

// A CrateVersion is either an exact pinned version (the spec used a leading
// '=', like "=1.0.0") or a general semver range requirement (like "^1.0",
// "~0.3" or ">=1, <2"). Exactly one of the two fields is set.
type CrateVersion struct {
	exact *semver.Version
	req   *semver.Constraints
}

// ParseCrateVersion parses the VERSION half of a crate specification. A
// leading '=' demands a single fully-specified version; anything else is
// parsed as a range requirement.
func ParseCrateVersion(s string) (CrateVersion, error) {
	if strings.HasPrefix(s, "=") {
		v, err := semver.StrictNewVersion(s[1:])
		if err != nil {
			return CrateVersion{}, &VersionSyntaxError{Text: s[1:], Err: err}
		}
		return ExactVersion(v), nil
	}
	req, err := semver.NewConstraint(s)
	if err != nil {
		return CrateVersion{}, &RequirementError{Text: s, Err: err}
	}
	return VersionRange(req), nil
}

// ExactVersion returns the CrateVersion pinning exactly v.
func ExactVersion(v *semver.Version) CrateVersion {
	return CrateVersion{exact: v}
}

// VersionRange returns the CrateVersion matching any version satisfying req.
func VersionRange(req *semver.Constraints) CrateVersion {
	return CrateVersion{req: req}
}

// AnyVersion returns the requirement matched by every version, used when the
// crate specification carries no version at all.
func AnyVersion() CrateVersion {
	req, err := semver.NewConstraint("*")
	if err != nil {
		panic(err)
	}
	return VersionRange(req)
}

// Exact returns the pinned version and true if this is an exact pin.
func (v CrateVersion) Exact() (*semver.Version, bool) {
	return v.exact, v.exact != nil
}

// Req projects the version onto a requirement: an exact pin becomes the
// singleton requirement "=X.Y.Z", a range is returned as-is. Resolution code
// only ever deals with the requirement shape.
func (v CrateVersion) Req() *semver.Constraints {
	if v.exact == nil {
		return v.req
	}
	req, err := semver.NewConstraint("=" + v.exact.String())
	if err != nil {
		panic(err)
	}
	return req
}

func (v CrateVersion) String() string {
	if v.exact != nil {
		return "=" + v.exact.String()
	}
	return v.req.String()
}

func (v CrateVersion) Equal(o CrateVersion) bool {
	if (v.exact != nil) != (o.exact != nil) {
		return false
	}
	if v.exact != nil {
		return v.exact.Equal(o.exact)
	}
	return v.req.String() == o.req.String()
}

// An Output describes where the downloaded crate should go: a file or
// directory path, or the process's standard output.
type Output struct {
	path   string
	stdout bool
}

// ParseOutput maps the --output value to an Output. The literal "-" selects
// standard output; any other string, including the empty one, is taken
// verbatim as a path. No existence check, no normalization.
func ParseOutput(s string) Output {
	if s == "-" {
		return Output{stdout: true}
	}
	return Output{path: s}
}

// Stdout reports whether output should be streamed to standard output.
func (o Output) Stdout() bool { return o.stdout }

// Path returns the target path. Only meaningful when Stdout is false.
func (o Output) Path() string { return o.path }

func (o Output) String() string {
	if o.stdout {
		return "-"
	}
	return o.path
}
