// Copyright 2019, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package records

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// The payload schema is the upstream provider's Example message:
//
//	Example  { features = 1 }
//	Features { feature  = 1 }  repeated map entries of name -> Feature
//	Feature  { bytes_list = 1 | float_list = 2 | int64_list = 3 }
//	each list holds its values in field 1 (packed or unpacked)
//
// Only the feature kinds the record schema uses are decoded here.

// Record is one decoded record: a set of named features.
type Record struct {
	features map[string]feature
}

type feature struct {
	floats []float64
	ints   []int64
	bytes  [][]byte
	kind   byte // 'f', 'i' or 'b'
}

// Keys lists the feature names present in the record.
func (rec *Record) Keys() []string {
	keys := make([]string, 0, len(rec.features))
	for k := range rec.features {
		keys = append(keys, k)
	}
	return keys
}

// Floats returns a float-list feature.
func (rec *Record) Floats(key string) ([]float64, error) {
	f, ok := rec.features[key]
	if !ok {
		return nil, fmt.Errorf("record has no feature %q", key)
	}
	if f.kind != 'f' {
		return nil, fmt.Errorf("feature %q is not a float list", key)
	}
	return f.floats, nil
}

// Float returns a single-element float feature.
func (rec *Record) Float(key string) (float64, error) {
	floats, err := rec.Floats(key)
	if err != nil {
		return 0, err
	}
	if len(floats) != 1 {
		return 0, fmt.Errorf("feature %q has %d values, expected 1", key, len(floats))
	}
	return floats[0], nil
}

// Ints returns an int64-list feature.
func (rec *Record) Ints(key string) ([]int64, error) {
	f, ok := rec.features[key]
	if !ok {
		return nil, fmt.Errorf("record has no feature %q", key)
	}
	if f.kind != 'i' {
		return nil, fmt.Errorf("feature %q is not an int64 list", key)
	}
	return f.ints, nil
}

// Int returns a single-element int64 feature.
func (rec *Record) Int(key string) (int64, error) {
	ints, err := rec.Ints(key)
	if err != nil {
		return 0, err
	}
	if len(ints) != 1 {
		return 0, fmt.Errorf("feature %q has %d values, expected 1", key, len(ints))
	}
	return ints[0], nil
}

// Bytes returns the single element of a bytes-list feature.
func (rec *Record) Bytes(key string) ([]byte, error) {
	f, ok := rec.features[key]
	if !ok {
		return nil, fmt.Errorf("record has no feature %q", key)
	}
	if f.kind != 'b' {
		return nil, fmt.Errorf("feature %q is not a bytes list", key)
	}
	if len(f.bytes) != 1 {
		return nil, fmt.Errorf("feature %q has %d byte strings, expected 1", key, len(f.bytes))
	}
	return f.bytes[0], nil
}

func parseRecord(payload []byte) (*Record, error) {
	rec := &Record{features: map[string]feature{}}

	// Example: field 1 is the Features message.
	err := eachField(payload, func(num protowire.Number, value []byte) error {
		if num != 1 {
			return nil
		}
		return parseFeatures(value, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("malformed record payload: %w", err)
	}
	return rec, nil
}

func parseFeatures(data []byte, rec *Record) error {
	// Features: field 1 is a repeated name -> Feature map entry.
	return eachField(data, func(num protowire.Number, value []byte) error {
		if num != 1 {
			return nil
		}
		var name string
		var body []byte
		err := eachField(value, func(entryNum protowire.Number, entryValue []byte) error {
			switch entryNum {
			case 1:
				name = string(entryValue)
			case 2:
				body = entryValue
			}
			return nil
		})
		if err != nil {
			return err
		}
		if name == "" {
			return fmt.Errorf("feature map entry has no name")
		}
		f, err := parseFeature(body)
		if err != nil {
			return fmt.Errorf("feature %q: %w", name, err)
		}
		rec.features[name] = f
		return nil
	})
}

func parseFeature(data []byte) (feature, error) {
	f := feature{}
	err := eachField(data, func(num protowire.Number, value []byte) error {
		switch num {
		case 1: // bytes list
			f.kind = 'b'
			return eachField(value, func(n protowire.Number, v []byte) error {
				if n == 1 {
					f.bytes = append(f.bytes, append([]byte{}, v...))
				}
				return nil
			})
		case 2: // float list
			f.kind = 'f'
			return parseFloatList(value, &f.floats)
		case 3: // int64 list
			f.kind = 'i'
			return parseIntList(value, &f.ints)
		}
		return nil
	})
	return f, err
}

// parseFloatList decodes field 1 of a FloatList, packed or unpacked.
func parseFloatList(data []byte, out *[]float64) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		if num != 1 {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			continue
		}
		switch typ {
		case protowire.BytesType: // packed
			packed, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			for len(packed) > 0 {
				v, m := protowire.ConsumeFixed32(packed)
				if m < 0 {
					return protowire.ParseError(m)
				}
				packed = packed[m:]
				*out = append(*out, float64(math.Float32frombits(v)))
			}
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			*out = append(*out, float64(math.Float32frombits(v)))
		default:
			return fmt.Errorf("unexpected wire type %d in float list", typ)
		}
	}
	return nil
}

// parseIntList decodes field 1 of an Int64List, packed or unpacked.
func parseIntList(data []byte, out *[]int64) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		if num != 1 {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			continue
		}
		switch typ {
		case protowire.BytesType: // packed
			packed, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			for len(packed) > 0 {
				v, m := protowire.ConsumeVarint(packed)
				if m < 0 {
					return protowire.ParseError(m)
				}
				packed = packed[m:]
				*out = append(*out, int64(v))
			}
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			*out = append(*out, int64(v))
		default:
			return fmt.Errorf("unexpected wire type %d in int64 list", typ)
		}
	}
	return nil
}

// eachField walks a message's length-delimited fields, handing the field
// payload to fn. Non-bytes fields are skipped.
func eachField(data []byte, fn func(num protowire.Number, value []byte) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			continue
		}

		value, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		if err := fn(num, value); err != nil {
			return err
		}
	}
	return nil
}
