// Copyright 2019 - 2025 The Samply Community
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cube contains the data cube model of dimensions, measures and
// observations in the JSON shape the visualization front end consumes.
package cube

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

type DimensionType string

const (
	TemporalDimension DimensionType = "TemporalDimension"
	NominalDimension  DimensionType = "NominalDimension"
	OrdinalDimension  DimensionType = "OrdinalDimension"
)

type MeasureType string

const (
	NumericalMeasure MeasureType = "NumericalMeasure"
)

type TimeUnit string

const (
	TimeUnitYear   TimeUnit = "Year"
	TimeUnitMonth  TimeUnit = "Month"
	TimeUnitWeek   TimeUnit = "Week"
	TimeUnitDay    TimeUnit = "Day"
	TimeUnitHour   TimeUnit = "Hour"
	TimeUnitMinute TimeUnit = "Minute"
	TimeUnitSecond TimeUnit = "Second"
)

// DimensionValue is one permissible value of a component together with its
// human readable label.
type DimensionValue struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Position *int   `json:"position,omitempty"`
}

// Limit is a threshold drawn alongside a measure.
type Limit struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Dimension is one classification axis of a cube.
type Dimension struct {
	Type           DimensionType    `json:"__typename"`
	CubeIRI        string           `json:"cubeIri"`
	ID             ComponentID      `json:"id"`
	Label          string           `json:"label"`
	Description    string           `json:"description,omitempty"`
	IsNumerical    bool             `json:"isNumerical"`
	IsKeyDimension bool             `json:"isKeyDimension"`
	Values         []DimensionValue `json:"values"`
	TimeUnit       TimeUnit         `json:"timeUnit,omitempty"`
	TimeFormat     string           `json:"timeFormat,omitempty"`
}

// Measure is the quantity recorded per observation.
type Measure struct {
	Type           MeasureType      `json:"__typename"`
	CubeIRI        string           `json:"cubeIri"`
	ID             ComponentID      `json:"id"`
	Label          string           `json:"label"`
	Description    string           `json:"description,omitempty"`
	IsNumerical    bool             `json:"isNumerical"`
	IsKeyDimension bool             `json:"isKeyDimension"`
	Unit           string           `json:"unit"`
	Values         []DimensionValue `json:"values"`
	Limits         []Limit          `json:"limits"`
}

// Observation maps fully qualified component IRIs to string encoded values.
type Observation map[string]string

// Cube bundles the components of a cube with its observations.
type Cube struct {
	IRI             string        `json:"iri"`
	UnversionedIRI  string        `json:"unversionedIri"`
	Title           string        `json:"title"`
	Publisher       string        `json:"publisher,omitempty"`
	Dimensions      []Dimension   `json:"dimensions"`
	Measures        []Measure     `json:"measures"`
	Observations    []Observation `json:"observations"`
	SparqlEditorURL string        `json:"sparqlEditorUrl,omitempty"`
}

// Component is implemented by Dimension and Measure.
type Component interface {
	ComponentID() ComponentID
	ComponentLabel() string
	Kind() string
	KeyDimension() bool
	PermissibleValues() []DimensionValue
}

func (d Dimension) ComponentID() ComponentID { return d.ID }
func (d Dimension) ComponentLabel() string { return d.Label }
func (d Dimension) Kind() string { return string(d.Type) }
func (d Dimension) KeyDimension() bool { return d.IsKeyDimension }
func (d Dimension) PermissibleValues() []DimensionValue { return d.Values }

func (m Measure) ComponentID() ComponentID { return m.ID }
func (m Measure) ComponentLabel() string { return m.Label }
func (m Measure) Kind() string { return string(m.Type) }
func (m Measure) KeyDimension() bool { return m.IsKeyDimension }
func (m Measure) PermissibleValues() []DimensionValue { return m.Values }

// Layout returns the Go time layout of the dimension's time format.
func (d Dimension) Layout() (string, error) {
	if d.Type != TemporalDimension {
		return "", fmt.Errorf("dimension %s is not temporal", d.ID)
	}
	return StrftimeToLayout(d.TimeFormat)
}

// ParseTime parses value with the dimension's time format.
func (d Dimension) ParseTime(value string) (time.Time, error) {
	layout, err := d.Layout()
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(layout, value)
}

// Range returns the smallest and largest declared value of the measure.
func (m Measure) Range() (min float64, max float64, err error) {
	var found int
	for _, v := range m.Values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("measure %s: declared value %q is not a number", m.ID, v.Value)
		}
		if found == 0 || f < min {
			min = f
		}
		if found == 0 || f > max {
			max = f
		}
		found++
	}
	if found == 0 {
		return 0, 0, fmt.Errorf("measure %s declares no range", m.ID)
	}
	return min, max, nil
}

// Float parses the value stored under iri.
func (o Observation) Float(iri string) (float64, error) {
	v, ok := o[iri]
	if !ok {
		return 0, fmt.Errorf("missing value for %s", iri)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("value %q of %s is not a number", v, iri)
	}
	return f, nil
}

// Keys returns the keys of o in sorted order.
func (o Observation) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Components lists dimensions followed by measures.
func (c *Cube) Components() []Component {
	components := make([]Component, 0, len(c.Dimensions)+len(c.Measures))
	for _, d := range c.Dimensions {
		components = append(components, d)
	}
	for _, m := range c.Measures {
		components = append(components, m)
	}
	return components
}

// ObservationKeys returns the component IRIs every observation carries, in
// declaration order.
func (c *Cube) ObservationKeys() []string {
	components := c.Components()
	keys := make([]string, 0, len(components))
	for _, component := range components {
		keys = append(keys, component.ComponentID().ComponentIRI())
	}
	return keys
}

// Dimension looks up a dimension by its component IRI.
func (c *Cube) Dimension(iri string) (Dimension, bool) {
	for _, d := range c.Dimensions {
		if d.ID.ComponentIRI() == iri {
			return d, true
		}
	}
	return Dimension{}, false
}

// ResolveKey maps a user supplied key to a component IRI. Accepted are the
// IRI itself, the local name of the IRI and the component label, the latter
// two compared case-insensitively.
func (c *Cube) ResolveKey(key string) (string, error) {
	for _, component := range c.Components() {
		iri := component.ComponentID().ComponentIRI()
		if key == iri || strings.EqualFold(key, LocalName(iri)) || strings.EqualFold(key, component.ComponentLabel()) {
			return iri, nil
		}
	}
	return "", fmt.Errorf("unknown component `%s`", key)
}

// Filter returns the observations whose values equal all filters. Filter
// keys are resolved with ResolveKey. Two keys naming the same component must
// agree on the value.
func (c *Cube) Filter(filters map[string]string) ([]Observation, error) {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	resolved := make(map[string]string, len(filters))
	resolvedBy := make(map[string]string, len(filters))
	for _, key := range keys {
		iri, err := c.ResolveKey(key)
		if err != nil {
			return nil, err
		}
		if other, ok := resolvedBy[iri]; ok && resolved[iri] != filters[key] {
			return nil, fmt.Errorf("filters `%s` and `%s` select different values of %s", other, key, iri)
		}
		resolved[iri] = filters[key]
		resolvedBy[iri] = key
	}

	res := make([]Observation, 0, len(c.Observations))
	for _, o := range c.Observations {
		if matches(o, resolved) {
			res = append(res, o)
		}
	}
	return res, nil
}

func matches(o Observation, filters map[string]string) bool {
	for iri, value := range filters {
		if o[iri] != value {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of c.
func (c *Cube) Clone() *Cube {
	clone := *c
	clone.Dimensions = CloneDimensions(c.Dimensions)
	clone.Measures = CloneMeasures(c.Measures)
	clone.Observations = CloneObservations(c.Observations)
	return &clone
}

func CloneDimensions(dimensions []Dimension) []Dimension {
	res := make([]Dimension, len(dimensions))
	for i, d := range dimensions {
		d.Values = cloneValues(d.Values)
		res[i] = d
	}
	return res
}

func CloneMeasures(measures []Measure) []Measure {
	res := make([]Measure, len(measures))
	for i, m := range measures {
		m.Values = cloneValues(m.Values)
		m.Limits = append(make([]Limit, 0, len(m.Limits)), m.Limits...)
		res[i] = m
	}
	return res
}

func CloneObservations(observations []Observation) []Observation {
	res := make([]Observation, len(observations))
	for i, o := range observations {
		clone := make(Observation, len(o))
		for k, v := range o {
			clone[k] = v
		}
		res[i] = clone
	}
	return res
}

func cloneValues(values []DimensionValue) []DimensionValue {
	if values == nil {
		return nil
	}
	res := make([]DimensionValue, len(values))
	for i, v := range values {
		if v.Position != nil {
			position := *v.Position
			v.Position = &position
		}
		res[i] = v
	}
	return res
}
