package domain

// RawValue is a post field delivered in both raw and rendered form.
type RawValue struct {
	Raw      any    `json:"raw" yaml:"raw" mapstructure:"raw"`
	Rendered string `json:"rendered,omitempty" yaml:"rendered,omitempty" mapstructure:"rendered"`
}

// KeyRaw is the member name that marks a structured raw/rendered field.
const KeyRaw = "raw"

// Normalize resolves a field that may be a raw/rendered pair to its raw form.
// Anything else is returned unchanged.
func Normalize(value any) any {
	switch v := value.(type) {
	case RawValue:
		return v.Raw
	case *RawValue:
		if v == nil {
			return value
		}
		return v.Raw
	case map[string]any:
		if raw, ok := v[KeyRaw]; ok {
			return raw
		}
	}
	return value
}

// NormalizeAll applies Normalize to every value of a map.
func NormalizeAll(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = Normalize(v)
	}
	return out
}
