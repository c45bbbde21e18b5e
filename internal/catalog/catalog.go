// Package catalog загружает фиксированные справочники переговорных и причин бронирования.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry элемент справочника
type Entry struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// Catalog содержимое catalog.yaml
type Catalog struct {
	Rooms   []Entry `yaml:"rooms"`
	Reasons []Entry `yaml:"reasons"`

	rooms   map[string]Entry
	reasons map[string]Entry
}

// Load читает и проверяет справочник из YAML файла
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse разбирает справочник из YAML
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	rooms, err := index("rooms", c.Rooms)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	reasons, err := index("reasons", c.Reasons)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	c.rooms, c.reasons = rooms, reasons

	return &c, nil
}

func index(section string, entries []Entry) (map[string]Entry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no %s defined", section)
	}

	byCode := make(map[string]Entry, len(entries))
	for i, e := range entries {
		e.Code = strings.TrimSpace(e.Code)
		if e.Code == "" {
			return nil, fmt.Errorf("%s[%d]: code is required", section, i)
		}
		if _, dup := byCode[e.Code]; dup {
			return nil, fmt.Errorf("%s[%d]: duplicate code '%s'", section, i, e.Code)
		}
		if e.Name == "" {
			e.Name = e.Code
		}
		entries[i] = e
		byCode[e.Code] = e
	}
	return byCode, nil
}

// HasRoom returns true if the room code is in the catalog
func (c *Catalog) HasRoom(code string) bool {
	_, ok := c.rooms[code]
	return ok
}

// HasReason returns true if the reason code is in the catalog
func (c *Catalog) HasReason(code string) bool {
	_, ok := c.reasons[code]
	return ok
}

// RoomName возвращает отображаемое название переговорной (код, если не найдено)
func (c *Catalog) RoomName(code string) string {
	if e, ok := c.rooms[code]; ok {
		return e.Name
	}
	return code
}

func (c *Catalog) String() string {
	return fmt.Sprintf("Catalog: %d rooms, %d reasons", len(c.Rooms), len(c.Reasons))
}
