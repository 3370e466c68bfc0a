package modulegraph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LumenaPaths is a package's subpath export table, keyed by subpath
// ("./sub" -> "./file.lm"); a package with a single export file instead
// carries a bare string in Lockfile's raw form.
type LumenaPaths map[string]string

// PackageEntry is one `lumina.lock.json` package record.
type PackageEntry struct {
	Version  string
	Resolved string
	// Lumina is either a single export path (len(Subpaths)==0, Main set) or
	// a subpath table.
	Main     string
	Subpaths LumenaPaths
}

// Lockfile is the parsed project lockfile.
type Lockfile struct {
	LockfileVersion int
	Packages        map[string]PackageEntry
}

// rawLockfile mirrors the JSON/YAML shape before Lumina's string-or-object
// polymorphism on the "lumina" field is resolved.
type rawLockfile struct {
	LockfileVersion int                    `json:"lockfileVersion" yaml:"lockfileVersion"`
	Packages        map[string]rawPkgEntry `json:"packages" yaml:"packages"`
}

type rawPkgEntry struct {
	Version  string      `json:"version" yaml:"version"`
	Resolved string      `json:"resolved" yaml:"resolved"`
	Lumina   interface{} `json:"lumina" yaml:"lumina"`
}

// LoadLockfile reads and parses a project lockfile. It tries
// config.LockfileName (JSON) first, then config.LockfileNameYAML as a
// fallback for hand-edited lockfiles, using gopkg.in/yaml.v3 for the
// YAML form.
func LoadLockfile(projectRoot string) (*Lockfile, error) {
	jsonPath := filepath.Join(projectRoot, "lumina.lock.json")
	if data, err := os.ReadFile(jsonPath); err == nil {
		return parseRaw(data, json.Unmarshal)
	}

	yamlPath := filepath.Join(projectRoot, "lumina.lock.yaml")
	if data, err := os.ReadFile(yamlPath); err == nil {
		return parseRaw(data, yaml.Unmarshal)
	}

	return &Lockfile{LockfileVersion: 1, Packages: map[string]PackageEntry{}}, nil
}

func parseRaw(data []byte, unmarshal func([]byte, interface{}) error) (*Lockfile, error) {
	var raw rawLockfile
	if err := unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed lockfile: %w", err)
	}

	lf := &Lockfile{LockfileVersion: raw.LockfileVersion, Packages: map[string]PackageEntry{}}
	for name, entry := range raw.Packages {
		pe := PackageEntry{Version: entry.Version, Resolved: entry.Resolved}
		switch v := entry.Lumina.(type) {
		case string:
			pe.Main = v
		case map[string]interface{}:
			pe.Subpaths = make(LumenaPaths, len(v))
			for k, val := range v {
				if s, ok := val.(string); ok {
					pe.Subpaths[k] = s
				}
			}
		case map[interface{}]interface{}: // yaml.v3 can produce this shape
			pe.Subpaths = make(LumenaPaths, len(v))
			for k, val := range v {
				ks, _ := k.(string)
				if s, ok := val.(string); ok {
					pe.Subpaths[ks] = s
				}
			}
		}
		lf.Packages[name] = pe
	}
	return lf, nil
}

// Resolve looks up specifier ("pkg" or "pkg/sub") against the lockfile,
// returning the on-disk path of the exporting file.
func (lf *Lockfile) Resolve(specifier string) (path string, ok bool) {
	pkgName, subpath := splitSpecifier(specifier)
	entry, found := lf.Packages[pkgName]
	if !found {
		return "", false
	}
	if subpath == "" {
		if entry.Main != "" {
			return filepath.Join(entry.Resolved, entry.Main), true
		}
		return "", false
	}
	if entry.Subpaths == nil {
		return "", false
	}
	rel, ok := entry.Subpaths["./"+subpath]
	if !ok {
		return "", false
	}
	return filepath.Join(entry.Resolved, rel), true
}

// HasPackage reports whether pkgName is present in the lockfile, used to
// distinguish PKG-001 (unknown package) from PKG-003 (missing subpath).
func (lf *Lockfile) HasPackage(pkgName string) bool {
	_, ok := lf.Packages[pkgName]
	return ok
}

func splitSpecifier(specifier string) (pkgName, subpath string) {
	for i := 0; i < len(specifier); i++ {
		if specifier[i] == '/' {
			return specifier[:i], specifier[i+1:]
		}
	}
	return specifier, ""
}
