package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Masterminds/semver/v3"
)

// DefaultRegistry is the registry queried when the configuration does not
// name another one.
const DefaultRegistry = "https://crates.io"

// A VersionFinder lists the published releases of a crate.
type VersionFinder interface {
	Find(name string) ([]CrateRelease, error)
}

// A CrateRelease is one published version of a crate, with the URL of its
// archive and the checksum the registry recorded for it.
type CrateRelease struct {
	Version  *semver.Version
	URL      string
	Checksum string
}

// crateIndex matches the versions portion of the registry's crate API json.
type crateIndex struct {
	Versions []struct {
		Num      string `json:"num"`
		DLPath   string `json:"dl_path"`
		Checksum string `json:"checksum"`
		Yanked   bool   `json:"yanked"`
	} `json:"versions"`
}

type RegistryError struct {
	Code   int
	Status string
	Body   []byte
	URL    string
}

type errResponse struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (re *RegistryError) Error() string {
	var msg errResponse
	json.Unmarshal(re.Body, &msg)

	if len(msg.Errors) > 0 && msg.Errors[0].Detail != "" {
		return fmt.Sprintf("%s: %s", re.Status, msg.Errors[0].Detail)
	}
	return fmt.Sprintf("%s (URL: %s)", re.Status, re.URL)
}

// A RegistryFinder finds the published versions of a crate by querying a
// crates.io-compatible registry API.
type RegistryFinder struct {
	BaseURL string
}

func (f *RegistryFinder) base() string {
	if f.BaseURL == "" {
		return DefaultRegistry
	}
	return f.BaseURL
}

func (f *RegistryFinder) Find(name string) ([]CrateRelease, error) {
	url := fmt.Sprintf("%s/api/v1/crates/%s", f.base(), name)
	resp, err := Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RegistryError{
			Status: resp.Status,
			Code:   resp.StatusCode,
			Body:   body,
			URL:    url,
		}
	}

	var index crateIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, err
	}

	// accumulate the usable releases: yanked versions and version numbers
	// that are not valid semver are skipped
	releases := make([]CrateRelease, 0, len(index.Versions))
	for _, v := range index.Versions {
		if v.Yanked {
			continue
		}
		ver, err := semver.NewVersion(v.Num)
		if err != nil {
			continue
		}
		dl := v.DLPath
		if dl == "" {
			dl = fmt.Sprintf("/api/v1/crates/%s/%s/download", name, v.Num)
		}
		releases = append(releases, CrateRelease{
			Version:  ver,
			URL:      f.base() + dl,
			Checksum: v.Checksum,
		})
	}
	return releases, nil
}

// Resolve picks the highest release satisfying the crate's version
// requirement. An exact pin only ever matches that one version.
func Resolve(releases []CrateRelease, crate Crate) (CrateRelease, error) {
	req := crate.Version.Req()

	var best *CrateRelease
	for i := range releases {
		r := &releases[i]
		if !req.Check(r.Version) {
			continue
		}
		if best == nil || r.Version.GreaterThan(best.Version) {
			best = r
		}
	}
	if best == nil {
		return CrateRelease{}, fmt.Errorf("no published version of `%s` matches `%s`", crate.Name, req)
	}
	return *best, nil
}
