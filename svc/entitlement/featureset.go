package entitlement

import (
	"encoding/json"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

type featureKind uint8

const (
	// The zero kind is an empty legacy list, which denies everything.
	featureKindLegacy featureKind = iota
	featureKindFlags
)

// FeatureSet is a tagged variant over the two historical shapes of plan
// feature data: a map of feature key to boolean, or a legacy list of
// free-text capability phrases. Existing plan rows are not guaranteed to be
// migrated, so both shapes resolve through the same query surface (Has).
//
// The zero value is an empty legacy list: no feature is granted.
type FeatureSet struct {
	kind   featureKind
	flags  map[string]bool
	legacy []string
}

// NewFeatureFlags builds the boolean-map variant. The map is copied.
func NewFeatureFlags(flags map[string]bool) FeatureSet {
	return FeatureSet{kind: featureKindFlags, flags: maps.Clone(flags)}
}

// NewLegacyFeatures builds the legacy free-text variant. The slice is copied.
func NewLegacyFeatures(phrases ...string) FeatureSet {
	return FeatureSet{kind: featureKindLegacy, legacy: slices.Clone(phrases)}
}

// EmptyFeatureSet grants nothing.
func EmptyFeatureSet() FeatureSet {
	return FeatureSet{}
}

// IsEmpty reports whether no feature can possibly be granted.
func (fs FeatureSet) IsEmpty() bool {
	if fs.kind == featureKindFlags {
		return len(fs.flags) == 0
	}
	return len(fs.legacy) == 0
}

// DecodeFeatureSet reconciles a raw JSON payload (typically a jsonb column)
// into a FeatureSet. Ambiguous or malformed payloads decode to the empty
// set rather than an error: feature data gates paid functionality, so a bad
// row must deny, never crash or allow.
func DecodeFeatureSet(raw []byte) FeatureSet {
	if len(raw) == 0 {
		return EmptyFeatureSet()
	}

	var flags map[string]bool
	if err := json.Unmarshal(raw, &flags); err == nil {
		return FeatureSet{kind: featureKindFlags, flags: flags}
	}

	var phrases []string
	if err := json.Unmarshal(raw, &phrases); err == nil {
		return FeatureSet{kind: featureKindLegacy, legacy: phrases}
	}

	return EmptyFeatureSet()
}

// UnmarshalJSON implements json.Unmarshaler with the same never-fail,
// fail-closed contract as DecodeFeatureSet.
func (fs *FeatureSet) UnmarshalJSON(data []byte) error {
	*fs = DecodeFeatureSet(data)
	return nil
}

// MarshalJSON round-trips the active variant.
func (fs FeatureSet) MarshalJSON() ([]byte, error) {
	if fs.kind == featureKindFlags {
		return json.Marshal(fs.flags)
	}
	if fs.legacy == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(fs.legacy)
}

// UnmarshalYAML supports plan files where features are either a mapping of
// key to boolean or a plain list of phrases. Any other node decodes to the
// empty set.
func (fs *FeatureSet) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var flags map[string]bool
		if err := value.Decode(&flags); err != nil {
			*fs = EmptyFeatureSet()
			return nil
		}
		*fs = FeatureSet{kind: featureKindFlags, flags: flags}
	case yaml.SequenceNode:
		var phrases []string
		if err := value.Decode(&phrases); err != nil {
			*fs = EmptyFeatureSet()
			return nil
		}
		*fs = FeatureSet{kind: featureKindLegacy, legacy: phrases}
	default:
		*fs = EmptyFeatureSet()
	}
	return nil
}

// clone returns an independent copy so shared plan rows cannot be mutated
// through a returned FeatureSet.
func (fs FeatureSet) clone() FeatureSet {
	return FeatureSet{
		kind:   fs.kind,
		flags:  maps.Clone(fs.flags),
		legacy: slices.Clone(fs.legacy),
	}
}
