package ion

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec decodes raw watcher bytes into a Value. Implement this
// interface to feed atoms from formats beyond JSON and YAML.
type Codec interface {
	// Unmarshal decodes bytes into a Value. Scalars decode to scalar
	// kinds; maps and sequences decode to the object kind.
	Unmarshal(data []byte) (Value, error)

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Unmarshal decodes JSON bytes into a Value.
func (JSONCodec) Unmarshal(data []byte) (Value, error) {
	var x any
	if err := json.Unmarshal(data, &x); err != nil {
		return Value{}, fmt.Errorf("expected JSON: %w", err)
	}
	return FromAny(x), nil
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure JSONCodec implements Codec.
var _ Codec = JSONCodec{}

// YAMLCodec implements Codec using gopkg.in/yaml.v3. YAML also accepts
// plain JSON.
type YAMLCodec struct{}

// Unmarshal decodes YAML bytes into a Value.
func (YAMLCodec) Unmarshal(data []byte) (Value, error) {
	var x any
	if err := yaml.Unmarshal(data, &x); err != nil {
		return Value{}, err
	}
	return FromAny(x), nil
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Ensure YAMLCodec implements Codec.
var _ Codec = YAMLCodec{}

// AutoCodec detects the format from content: a leading '{' or '['
// decodes as JSON, anything else as YAML (which also handles plain
// scalars and JSON).
type AutoCodec struct{}

// Unmarshal decodes bytes into a Value, detecting the format.
func (AutoCodec) Unmarshal(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return JSONCodec{}.Unmarshal(data)
	}
	return YAMLCodec{}.Unmarshal(data)
}

// ContentType returns a generic MIME type.
func (AutoCodec) ContentType() string {
	return "application/octet-stream"
}

// Ensure AutoCodec implements Codec.
var _ Codec = AutoCodec{}
