package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gobwas/glob"
	pb "github.com/schollz/progressbar/v3"

	"github.com/crget/crget/home"
)

// Version is the version of crget. Release builds overwrite it via the
// linker.
var Version = "dev"

func fatal(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
	os.Exit(1)
}

// IsDirectory returns true if the file at 'path' is a directory.
func IsDirectory(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

// applyConfig folds the loaded configuration into the parsed options; flags
// given on the command line always win. It returns the archive-member filter
// when the crate's config section declares one.
func applyConfig(opts *Options, config *Config) (glob.Glob, error) {
	section := config.CrateConfig(opts.Crate.Name)

	if opts.Output == nil {
		target := config.Global.Output
		if section != nil && section.Output != "" {
			target = section.Output
		}
		if target != "" {
			expanded, err := home.Expand(target)
			if err != nil {
				return nil, err
			}
			output := ParseOutput(expanded)
			opts.Output = &output
		}
	}

	if section == nil {
		return nil, nil
	}
	if section.Extract {
		opts.Extract = true
	}
	if section.FileFilter == "" {
		return nil, nil
	}
	filter, err := glob.Compile(section.FileFilter)
	if err != nil {
		return nil, fmt.Errorf("file_filter `%s`: %w", section.FileFilter, err)
	}
	return filter, nil
}

func main() {
	opts, err := ParseArgs(os.Args)
	if errors.Is(err, ErrHelp) {
		WriteUsage(os.Stdout)
		os.Exit(0)
	}
	if errors.Is(err, ErrVersion) {
		fmt.Println("crget version", Version)
		os.Exit(0)
	}
	if err != nil {
		fatal(err)
	}

	config, err := InitializeConfig()
	if err != nil {
		fatal(err)
	}

	filter, err := applyConfig(opts, config)
	if err != nil {
		fatal(err)
	}

	toStdout := opts.Output != nil && opts.Output.Stdout()
	if opts.Extract && toStdout {
		// the config may have requested extraction after the flags passed
		// validation, so the combination is rechecked after the merge
		fatal(ErrExtractToStdout)
	}

	verbosity := opts.Verbosity
	if verbosity == 0 && config.Global.Quiet {
		verbosity = -1
	}
	// logs go to stderr so they never mix with an archive streamed to stdout
	logger := NewLogger(os.Stderr, verbosity)
	quiet := verbosity < 0

	finder := &RegistryFinder{BaseURL: config.Global.Registry}
	releases, err := finder.Find(opts.Crate.Name)
	if err != nil {
		fatal(err)
	}

	release, err := Resolve(releases, opts.Crate)
	if err != nil {
		fatal(err)
	}
	logger.Info("resolved", "crate", opts.Crate.Name, "version", release.Version)
	logger.Debug("downloading", "url", release.URL)

	// download with progress bar
	buf := &bytes.Buffer{}
	err = Download(release.URL, buf, func(size int64) *pb.ProgressBar {
		var pbout io.Writer = os.Stderr
		if quiet || toStdout {
			pbout = io.Discard
		}
		return pb.NewOptions64(size,
			pb.OptionSetWriter(pbout),
			pb.OptionShowBytes(true),
			pb.OptionSetWidth(10),
			pb.OptionThrottle(65*time.Millisecond),
			pb.OptionShowCount(),
			pb.OptionSpinnerType(14),
			pb.OptionFullWidth(),
			pb.OptionSetDescription("Downloading"),
			pb.OptionOnCompletion(func() {
				fmt.Fprint(pbout, "\n")
			}),
			pb.OptionSetTheme(pb.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	})
	if err != nil {
		fatal(err)
	}

	body := buf.Bytes()

	var verifier Verifier = &NoVerifier{}
	if release.Checksum != "" {
		verifier, err = NewSha256Verifier(release.Checksum)
		if err != nil {
			fatal(err)
		}
	}
	if err := verifier.Verify(body); err != nil {
		fatal(err)
	}
	if release.Checksum != "" {
		logger.Debug("checksum verified", "sha256", release.Checksum)
	}

	archiveName := fmt.Sprintf("%s-%s.crate", opts.Crate.Name, release.Version)

	if opts.Extract {
		// extracted crates land in a directory named after the archive
		// unless an explicit output path was given
		dir := fmt.Sprintf("%s-%s", opts.Crate.Name, release.Version)
		if opts.Output != nil {
			dir = opts.Output.Path()
		}
		if err := ExtractArchive(body, archiveName, dir, filter); err != nil {
			fatal(err)
		}
		logger.Info("extracted", "dir", dir)
		return
	}

	// without -o the compressed crate is dumped to standard output
	if opts.Output == nil || toStdout {
		if _, err := os.Stdout.Write(body); err != nil {
			fatal(err)
		}
		return
	}

	out := opts.Output.Path()
	if IsDirectory(out) {
		out = filepath.Join(out, archiveName)
	}
	if err := writeFile(body, out, 0644); err != nil {
		fatal(err)
	}
	logger.Info("saved", "file", out)
}
