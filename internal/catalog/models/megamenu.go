package models

import (
	"bytes"
	"encoding/json"
)

// MenuItem is a featured company inside a megamenu section.
type MenuItem struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
	URL   string `json:"url"`
}

// MenuSection is one navigational column of the megamenu.
type MenuSection struct {
	Key   string     `json:"-"`
	Title string     `json:"title"`
	Label string     `json:"label"`
	URL   string     `json:"url"`
	Items []MenuItem `json:"items"`
}

// Megamenu is the navigation structure built from the company collection.
// It serializes as one object: "defaultActive" followed by every section
// under its key, in section order.
type Megamenu struct {
	DefaultActive string
	Sections      []MenuSection
}

// Section returns the section stored under key.
func (m Megamenu) Section(key string) (MenuSection, bool) {
	for _, s := range m.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return MenuSection{}, false
}

func (m Megamenu) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"defaultActive":`)
	if err := writeJSON(&buf, m.DefaultActive); err != nil {
		return nil, err
	}
	for _, s := range m.Sections {
		buf.WriteByte(',')
		if err := writeJSON(&buf, s.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, s); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
