// Package common holds the file-format-independent half of snapshot parsing:
// the raw document shape shared by the JSON and YAML parsers, mode value
// decoding, and validation.
package common

import (
	"errors"
	"fmt"
	"strings"

	"bennypowers.dev/dtexport/internal/color"
	"bennypowers.dev/dtexport/internal/variables"
	"github.com/go-playground/validator/v10"
)

// AliasType is the "type" of a mode value that references another variable
const AliasType = "VARIABLE_ALIAS"

// RawSnapshot is the on-disk shape of a variables snapshot
type RawSnapshot struct {
	Collections []RawCollection `json:"collections" yaml:"collections" validate:"dive"`
	Variables   []RawVariable   `json:"variables" yaml:"variables" validate:"dive"`
}

// RawCollection is a collection as written in a snapshot
type RawCollection struct {
	ID    string    `json:"id" yaml:"id" validate:"required"`
	Name  string    `json:"name" yaml:"name"`
	Modes []RawMode `json:"modes" yaml:"modes" validate:"dive"`
}

// RawMode is a collection mode as written in a snapshot
type RawMode struct {
	ModeID string `json:"modeId" yaml:"modeId" validate:"required"`
	Name   string `json:"name" yaml:"name" validate:"required"`
}

// RawVariable is a variable whose mode values are still undecoded
type RawVariable struct {
	ID           string         `json:"id" yaml:"id" validate:"required"`
	Name         string         `json:"name" yaml:"name" validate:"required"`
	ResolvedType string         `json:"resolvedType" yaml:"resolvedType" validate:"required"`
	CollectionID string         `json:"variableCollectionId" yaml:"variableCollectionId" validate:"required"`
	ValuesByMode map[string]any `json:"valuesByMode" yaml:"valuesByMode"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Build validates raw and converts it into a Snapshot. Values of non-color
// variables are dropped without being decoded. All problems are reported together.
func Build(raw *RawSnapshot, filePath string) (*variables.Snapshot, error) {
	if err := validate.Struct(raw); err != nil {
		return nil, variables.NewInvalidSnapshotError(filePath, describeValidation(err))
	}

	snapshot := &variables.Snapshot{
		Collections: make([]*variables.Collection, 0, len(raw.Collections)),
		Variables:   make([]*variables.Variable, 0, len(raw.Variables)),
	}
	for _, rc := range raw.Collections {
		c := &variables.Collection{ID: rc.ID, Name: rc.Name}
		for _, rm := range rc.Modes {
			c.Modes = append(c.Modes, variables.Mode{ModeID: rm.ModeID, Name: rm.Name})
		}
		snapshot.Collections = append(snapshot.Collections, c)
	}

	var errs []error
	for _, rv := range raw.Variables {
		v := &variables.Variable{
			ID:           rv.ID,
			Name:         rv.Name,
			ResolvedType: rv.ResolvedType,
			CollectionID: rv.CollectionID,
			ValuesByMode: make(map[string]variables.Value, len(rv.ValuesByMode)),
		}
		if v.IsColor() {
			for modeID, rawValue := range rv.ValuesByMode {
				value, err := DecodeValue(rawValue)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s mode %s: %w", rv.Name, modeID, err))
					continue
				}
				v.ValuesByMode[modeID] = value
			}
		}
		snapshot.Variables = append(snapshot.Variables, v)
	}
	if len(errs) > 0 {
		return nil, variables.NewInvalidSnapshotError(filePath, errors.Join(errs...).Error())
	}
	return snapshot, nil
}

// DecodeValue decodes one mode value. Accepted forms are an alias object
// {"type": "VARIABLE_ALIAS", "id": ...}, a normalized {"r","g","b","a"?} object,
// or any CSS color string.
func DecodeValue(raw any) (variables.Value, error) {
	switch v := raw.(type) {
	case string:
		c, err := color.Parse(v)
		if err != nil {
			return variables.Value{}, err
		}
		return variables.ColorValue(c), nil

	case map[string]any:
		if t, _ := v["type"].(string); t == AliasType {
			id, _ := v["id"].(string)
			if id == "" {
				return variables.Value{}, fmt.Errorf("alias is missing its id")
			}
			return variables.AliasValue(id), nil
		}
		return decodeRGBA(v)

	case nil:
		return variables.Value{}, fmt.Errorf("value is null")

	default:
		return variables.Value{}, fmt.Errorf("unsupported value %v (%T)", raw, raw)
	}
}

func decodeRGBA(obj map[string]any) (variables.Value, error) {
	var c variables.RGBA
	for _, ch := range []struct {
		key string
		dst *float64
	}{{"r", &c.R}, {"g", &c.G}, {"b", &c.B}} {
		f, ok := toFloat(obj[ch.key])
		if !ok {
			return variables.Value{}, fmt.Errorf("color is missing numeric channel %q", ch.key)
		}
		*ch.dst = f
	}
	if rawAlpha, exists := obj["a"]; exists && rawAlpha != nil {
		a, ok := toFloat(rawAlpha)
		if !ok {
			return variables.Value{}, fmt.Errorf("alpha must be a number")
		}
		c.A = &a
	}
	if err := validate.Struct(c); err != nil {
		return variables.Value{}, fmt.Errorf("channels must be between 0 and 1: %s", describeValidation(err))
	}
	return variables.ColorValue(c), nil
}

// toFloat accepts the numeric types produced by encoding/json and yaml.v3
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		reasons = append(reasons, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(reasons, "; ")
}
