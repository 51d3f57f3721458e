// Package yamlutil is the single entry point to the YAML library. Manifests,
// recipe records, config files and markdown front matter are all decoded or
// encoded here, with the same size limit and error prefix.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the bytes accepted by the decoders.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

type (
	// MapSlice is a mapping that keeps document key order.
	MapSlice = yaml.MapSlice
	// MapItem is one key/value pair of a MapSlice.
	MapItem = yaml.MapItem
)

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalOrdered decodes into a generic tree in which every mapping is a
// MapSlice.
func UnmarshalOrdered(data []byte, v any) error {
	return decode(data, v, yaml.UseOrderedMap())
}

// UnmarshalStrict fails on keys that v has no field for.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

// Marshal encodes v.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
