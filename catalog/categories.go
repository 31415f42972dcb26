package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultCategoriesYAML []byte

// CategoryMap maps a request-type label to its tools in priority order. It is immutable once
// loaded; accessors return copies.
type CategoryMap struct {
	keys    []string
	members map[string][]string
}

type categoriesFile struct {
	Categories []struct {
		Key   string   `yaml:"key"`
		Tools []string `yaml:"tools"`
	} `yaml:"categories"`
}

// DefaultCategories returns the embedded category map.
func DefaultCategories() CategoryMap {
	m, err := LoadCategories(bytes.NewReader(defaultCategoriesYAML))
	if err != nil {
		panic("embedded categories.yaml is invalid: " + err.Error())
	}
	return m
}

// LoadCategoriesFile reads a category map from a YAML file.
func LoadCategoriesFile(path string) (CategoryMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return CategoryMap{}, fmt.Errorf("failed to open categories %s: %w", path, err)
	}
	defer f.Close()
	return LoadCategories(f)
}

func LoadCategories(r io.Reader) (CategoryMap, error) {
	var file categoriesFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return CategoryMap{}, fmt.Errorf("failed to parse categories: %w", err)
	}

	m := CategoryMap{members: make(map[string][]string, len(file.Categories))}
	for _, c := range file.Categories {
		key := strings.ToLower(strings.TrimSpace(c.Key))
		if key == "" {
			return CategoryMap{}, fmt.Errorf("category without key")
		}
		if _, dup := m.members[key]; dup {
			return CategoryMap{}, fmt.Errorf("duplicate category %q", key)
		}
		if len(c.Tools) == 0 {
			return CategoryMap{}, fmt.Errorf("category %q has no tools", key)
		}
		m.keys = append(m.keys, key)
		m.members[key] = append([]string(nil), c.Tools...)
	}
	return m, nil
}

// Keys returns the category keys in file order.
func (m CategoryMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m CategoryMap) Has(key string) bool {
	_, ok := m.members[strings.ToLower(key)]
	return ok
}

// Members returns the tools of key in priority order, or nil.
func (m CategoryMap) Members(key string) []string {
	return append([]string(nil), m.members[strings.ToLower(key)]...)
}

// CategoryOf returns the first category (in file order) listing tool.
func (m CategoryMap) CategoryOf(tool string) (string, bool) {
	for _, key := range m.keys {
		for _, member := range m.members[key] {
			if strings.EqualFold(member, tool) {
				return key, true
			}
		}
	}
	return "", false
}
