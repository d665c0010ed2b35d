package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jessevdk/go-flags"
)

// Options holds the fully validated result of command-line parsing. It is
// built exactly once per invocation and handed to the download, extraction
// and logging code, which never look at the raw arguments themselves.
type Options struct {
	// Verbosity is the number of -v flags minus the number of -q flags.
	Verbosity int
	// Crate to download.
	Crate Crate
	// Extract requests unpacking the crate archive after downloading.
	Extract bool
	// Output is the requested target, or nil for the default location.
	Output *Output
}

func (o *Options) Verbose() bool { return o.Verbosity > 0 }
func (o *Options) Quiet() bool   { return o.Verbosity < 0 }

// Sentinels surfaced by ParseArgs for flags that short-circuit the normal
// download flow. The caller prints usage or version info and exits cleanly.
var (
	ErrHelp    = errors.New("help requested")
	ErrVersion = errors.New("version requested")
)

// ErrExtractToStdout rejects -x combined with -o -. It is a semantic rule
// across two otherwise valid fields, so it is checked only after every field
// has parsed successfully.
var ErrExtractToStdout = errors.New("cannot extract a crate to standard output")

var (
	errConflictingVerbosity = errors.New("--verbose and --quiet cannot both be given")
	errMissingCrate         = errors.New("the required argument CRATE[=VERSION] was not given")
)

// A ParseError is a grammar-level failure: unknown flag, missing or surplus
// positional, or the verbosity conflict. It wraps the underlying diagnostic.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// A CrateError wraps whatever went wrong inside the CRATE[=VERSION] token,
// keeping the offending spec string for the message.
type CrateError struct {
	Spec string
	Err  error
}

func (e *CrateError) Error() string { return fmt.Sprintf("invalid crate spec: %v", e.Err) }
func (e *CrateError) Unwrap() error { return e.Err }

// A NameError reports a crate name that is empty or contains characters
// outside the alphanumeric/'-'/'_' set.
type NameError struct {
	Name string
}

func (e *NameError) Error() string { return fmt.Sprintf("invalid crate name `%s`", e.Name) }

// A VersionSyntaxError reports '='-prefixed version text that does not parse
// as a single fully-specified semantic version.
type VersionSyntaxError struct {
	Text string
	Err  error
}

func (e *VersionSyntaxError) Error() string {
	return fmt.Sprintf("invalid crate version `%s`: %v", e.Text, e.Err)
}
func (e *VersionSyntaxError) Unwrap() error { return e.Err }

// A RequirementError reports version text that does not parse as a semver
// range requirement.
type RequirementError struct {
	Text string
	Err  error
}

func (e *RequirementError) Error() string {
	return fmt.Sprintf("invalid version requirement `%s`: %v", e.Text, e.Err)
}
func (e *RequirementError) Unwrap() error { return e.Err }

const downloadSubcommand = "download"

// ParseArgs parses a full argument vector, program name included, into
// validated Options. When invoked as `<binary> download ...` (the cargo
// subcommand convention) the literal "download" at index 1 is dropped before
// matching, so it never lands in the positional slot.
func ParseArgs(argv []string) (*Options, error) {
	args := append([]string(nil), argv...)
	if len(args) >= 2 && args[1] == downloadSubcommand {
		args = append(args[:1], args[2:]...)
	}

	var cmdline []string
	if len(args) > 1 {
		cmdline = args[1:]
	}

	var fl Flags
	rest, err := newFlagParser(&fl).ParseArgs(cmdline)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if fl.Help {
		return nil, ErrHelp
	}
	if fl.Version {
		return nil, ErrVersion
	}
	if len(fl.Verbose) > 0 && len(fl.Quiet) > 0 {
		return nil, &ParseError{Err: errConflictingVerbosity}
	}
	return newOptions(&fl, rest)
}

// newOptions assembles Options from the matched flags and the remaining
// positional arguments. Pure validation, no side effects.
func newOptions(fl *Flags, rest []string) (*Options, error) {
	if len(rest) == 0 {
		return nil, &ParseError{Err: errMissingCrate}
	}
	if len(rest) > 1 {
		return nil, &ParseError{Err: fmt.Errorf("unexpected argument `%s`", rest[1])}
	}

	crate, err := ParseCrate(rest[0])
	if err != nil {
		return nil, err
	}

	var output *Output
	if fl.Output != nil {
		o := ParseOutput(*fl.Output)
		output = &o
	}

	if fl.Extract && output != nil && output.Stdout() {
		return nil, ErrExtractToStdout
	}

	return &Options{
		Verbosity: len(fl.Verbose) - len(fl.Quiet),
		Crate:     crate,
		Extract:   fl.Extract,
		Output:    output,
	}, nil
}

func newFlagParser(fl *Flags) *flags.Parser {
	parser := flags.NewParser(fl, flags.PassDoubleDash)
	parser.Name = "crget"
	parser.Usage = "[OPTIONS] CRATE[=VERSION]"
	return parser
}

// WriteUsage writes the help text for the argument grammar to w.
func WriteUsage(w io.Writer) {
	var fl Flags
	newFlagParser(&fl).WriteHelp(w)
}
