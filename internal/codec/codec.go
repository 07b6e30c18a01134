// Package codec encodes a client collection as a JSON or YAML document.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"clientrepo/internal/model"
)

var ErrUnknownFormat = errors.New("unknown document format")

// Codec converts between a client collection and its serialized document.
type Codec interface {
	Name() string
	ContentType() string
	Marshal(clients []model.Client) ([]byte, error)
	// Unmarshal decodes a document. Blank input decodes to an empty collection.
	Unmarshal(data []byte) ([]model.Client, error)
}

// JSON writes an indented JSON array.
type JSON struct{}

func (JSON) Name() string        { return "json" }
func (JSON) ContentType() string { return "application/json" }

func (JSON) Marshal(clients []model.Client) ([]byte, error) {
	if clients == nil {
		clients = []model.Client{}
	}
	return json.MarshalIndent(clients, "", "  ")
}

func (JSON) Unmarshal(data []byte) ([]model.Client, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Client{}, nil
	}
	var out []model.Client
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Client{}
	}
	return out, nil
}

// YAML writes a block-style YAML sequence.
type YAML struct{}

func (YAML) Name() string        { return "yaml" }
func (YAML) ContentType() string { return "application/yaml" }

func (YAML) Marshal(clients []model.Client) ([]byte, error) {
	if clients == nil {
		clients = []model.Client{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(clients); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (YAML) Unmarshal(data []byte) ([]model.Client, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Client{}, nil
	}
	var out []model.Client
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Client{}
	}
	return out, nil
}

// ByName returns the codec called name ("json", "yaml" or "yml").
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ForPath picks a codec from the extension of path.
func ForPath(path string) (Codec, error) {
	return ByName(filepath.Ext(path))
}
