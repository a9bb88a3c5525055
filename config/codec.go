// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package config

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"
	yaml "gopkg.in/yaml.v3"
)

// Unmarshaler defines the config unmarshal interface.
type Unmarshaler interface {
	// Unmarshal deserializes the data bytes into value parameter.
	Unmarshal(data []byte, value interface{}) error
}

var (
	unmarshalers = map[string]Unmarshaler{
		"yaml": &YamlCodec{},
		"toml": &TomlCodec{},
		"json": &JSONCodec{},
	}
	unmarshalersMu sync.RWMutex
)

// RegisterUnmarshaler registers an unmarshaler by name.
func RegisterUnmarshaler(name string, us Unmarshaler) {
	unmarshalersMu.Lock()
	unmarshalers[name] = us
	unmarshalersMu.Unlock()
}

// GetUnmarshaler returns an unmarshaler by name, nil if not registered.
func GetUnmarshaler(name string) Unmarshaler {
	unmarshalersMu.RLock()
	defer unmarshalersMu.RUnlock()
	return unmarshalers[name]
}

// FormatOf returns the codec name selected by the file extension of path.
// Unknown extensions fall back to yaml.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// YamlCodec is yaml codec.
type YamlCodec struct{}

// Unmarshal deserializes the in bytes into out parameter by yaml.
func (c *YamlCodec) Unmarshal(in []byte, out interface{}) error {
	return yaml.Unmarshal(in, out)
}

// TomlCodec is toml codec.
type TomlCodec struct{}

// Unmarshal deserializes the in bytes into out parameter by toml.
func (c *TomlCodec) Unmarshal(in []byte, out interface{}) error {
	return toml.Unmarshal(in, out)
}

// JSONCodec is json codec.
type JSONCodec struct{}

// Unmarshal deserializes the in bytes into out parameter by json.
func (c *JSONCodec) Unmarshal(in []byte, out interface{}) error {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(in, out)
}
