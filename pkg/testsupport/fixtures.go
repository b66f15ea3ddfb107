// Package testsupport holds shared fixtures and file helpers for tests.
package testsupport

import (
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/thomasdelmas/Ecommerce-sub000/entity"
)

//go:embed testdata/*.json
var fixtures embed.FS

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// Shared returns one of the fixtures bundled with this package.
func Shared(t *testing.T, name string) []byte {
	t.Helper()

	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("unknown shared fixture %s: %v", name, err)
	}
	return data
}

// ProductInputs returns the shared catalogue of product inputs. Names are unique.
func ProductInputs(t *testing.T) []entity.ProductInput {
	t.Helper()

	var inputs []entity.ProductInput
	if err := json.Unmarshal(Shared(t, "products.json"), &inputs); err != nil {
		t.Fatalf("failed to decode products fixture: %v", err)
	}
	return inputs
}

// UserInputs returns the shared user inputs. Usernames are unique.
func UserInputs(t *testing.T) []entity.UserInput {
	t.Helper()

	var inputs []entity.UserInput
	if err := json.Unmarshal(Shared(t, "users.json"), &inputs); err != nil {
		t.Fatalf("failed to decode users fixture: %v", err)
	}
	return inputs
}

// TempFile writes content to a file inside a per-test directory and
// returns its path. The directory is removed when the test ends.
func TempFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write temp file %s: %v", path, err)
	}
	return path
}
