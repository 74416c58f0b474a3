package page

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/xy-planning-network/webbot"
	"gopkg.in/yaml.v3"
)

// ManifestFile names the manifest describing an app, at the root of its directory.
const ManifestFile = "webbot.yaml"

// Metadata describes the app every page belongs to.
type Metadata struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"`

	// DefaultPage is the page the root URL leads to.
	DefaultPage string `yaml:"defaultPage,omitempty"`

	// PagesDir is the directory holding one directory per page.
	PagesDir string `yaml:"pagesDir,omitempty"`

	// Backend names the router pages are mounted on: mux or servemux.
	Backend string `yaml:"backend,omitempty"`

	// Module is the Go module path of the app.
	Module string `yaml:"module,omitempty"`
}

// Defaults fills in every optional field left empty.
func (md Metadata) Defaults() Metadata {
	if md.DefaultPage == "" {
		md.DefaultPage = "Home"
	}

	if md.PagesDir == "" {
		md.PagesDir = "pages"
	}

	if md.Backend == "" {
		md.Backend = "mux"
	}

	return md
}

// Valid checks md names the app.
func (md Metadata) Valid() error {
	if strings.TrimSpace(md.Label) == "" {
		return fmt.Errorf("%w: label", webbot.ErrMissingData)
	}

	switch md.Backend {
	case "", "mux", "servemux":
	default:
		return fmt.Errorf("%w: unknown backend %q", webbot.ErrNotValid, md.Backend)
	}

	return nil
}

// LoadMetadata reads the manifest at the root of fsys.
func LoadMetadata(fsys fs.FS) (Metadata, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if errors.Is(err, fs.ErrNotExist) {
		return Metadata{}, fmt.Errorf("%w: %s", webbot.ErrNotExist, ManifestFile)
	}

	if err != nil {
		return Metadata{}, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}

	var md Metadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		return Metadata{}, fmt.Errorf("%w: %s: %s", webbot.ErrBadFormat, ManifestFile, err)
	}

	if err := md.Valid(); err != nil {
		return Metadata{}, err
	}

	return md.Defaults(), nil
}

// Marshal encodes md as a manifest.
func (md Metadata) Marshal() ([]byte, error) { return yaml.Marshal(md) }
