package mockapi

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var embedded embed.FS

// ErrFixtureNotFound is returned by [Fixtures.Load] for an unknown name.
var ErrFixtureNotFound = errors.New("fixture not found")

// Fixture is a canned API response.
type Fixture struct {
	Status  int               `yaml:"status"`
	Headers map[string]string `yaml:"headers"`
	Body    any               `yaml:"body"`
}

// Payload returns the response body. String bodies are sent verbatim,
// anything else is encoded as JSON.
func (f Fixture) Payload() ([]byte, error) {
	switch body := f.Body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(body), nil
	default:
		return json.Marshal(body)
	}
}

// Fixtures loads named fixtures from a directory of YAML files.
type Fixtures struct {
	fsys fs.FS
}

// DefaultFixtures serves the fixtures compiled into the package.
func DefaultFixtures() Fixtures {
	sub, err := fs.Sub(embedded, "fixtures")
	if err != nil {
		panic(err)
	}

	return Fixtures{fsys: sub}
}

// NewFixtures reads fixtures from fsys.
func NewFixtures(fsys fs.FS) Fixtures {
	return Fixtures{fsys: fsys}
}

// Load reads the fixture called name from name.yaml or name.yml.
func (f Fixtures) Load(name string) (Fixture, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		data, err := fs.ReadFile(f.fsys, path.Clean(name)+ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Fixture{}, fmt.Errorf("reading fixture[%s]: %w", name, err)
		}

		var fx Fixture
		if err := yaml.Unmarshal(data, &fx); err != nil {
			return Fixture{}, fmt.Errorf("parsing fixture[%s]: %w", name, err)
		}
		if fx.Status == 0 {
			fx.Status = 200
		}

		return fx, nil
	}

	return Fixture{}, fmt.Errorf("fixture[%s]: %w", name, ErrFixtureNotFound)
}
