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

package fixture

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/samply/cubectl/cube"
)

type cubeDeclaration struct {
	IRI            string `yaml:"iri"`
	UnversionedIRI string `yaml:"unversionedIri"`
	Title          string `yaml:"title"`
	Publisher      string `yaml:"publisher"`
}

type valueDeclaration struct {
	Value    string `yaml:"value"`
	Label    string `yaml:"label"`
	Position *int   `yaml:"position"`
}

type limitDeclaration struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

type componentDeclaration struct {
	IRI            string             `yaml:"iri"`
	Column         string             `yaml:"column"`
	Type           string             `yaml:"type"`
	Label          string             `yaml:"label"`
	Description    string             `yaml:"description"`
	IsNumerical    bool               `yaml:"isNumerical"`
	IsKeyDimension bool               `yaml:"isKeyDimension"`
	TimeUnit       string             `yaml:"timeUnit"`
	TimeFormat     string             `yaml:"timeFormat"`
	Unit           string             `yaml:"unit"`
	Values         []valueDeclaration `yaml:"values"`
	Limits         []limitDeclaration `yaml:"limits"`
}

// Declaration is the YAML document describing a cube and its components.
// Observations are kept apart in a CSV table whose columns are named by the
// component's column key.
type Declaration struct {
	Cube            cubeDeclaration        `yaml:"cube"`
	SparqlEditorURL string                 `yaml:"sparqlEditorUrl"`
	Dimensions      []componentDeclaration `yaml:"dimensions"`
	Measures        []componentDeclaration `yaml:"measures"`
}

// Decode builds a cube from a YAML declaration and a CSV observation table.
func Decode(declarationYAML []byte, table []byte) (*cube.Cube, error) {
	var decl Declaration
	if err := yaml.UnmarshalWithOptions(declarationYAML, &decl, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("error while parsing cube declaration: %w", err)
	}
	if decl.Cube.IRI == "" || decl.Cube.UnversionedIRI == "" {
		return nil, errors.New("cube declaration misses iri or unversionedIri")
	}

	c := &cube.Cube{
		IRI:             decl.Cube.IRI,
		UnversionedIRI:  decl.Cube.UnversionedIRI,
		Title:           decl.Cube.Title,
		Publisher:       decl.Cube.Publisher,
		Dimensions:      make([]cube.Dimension, 0, len(decl.Dimensions)),
		Measures:        make([]cube.Measure, 0, len(decl.Measures)),
		SparqlEditorURL: decl.SparqlEditorURL,
	}
	columns := make(map[string]string)

	for i, d := range decl.Dimensions {
		if err := addColumn(columns, d); err != nil {
			return nil, fmt.Errorf("error in dimensions[%d]: %w", i, err)
		}
		c.Dimensions = append(c.Dimensions, cube.Dimension{
			Type:           cube.DimensionType(d.Type),
			CubeIRI:        c.IRI,
			ID:             cube.NewComponentID(c.UnversionedIRI, d.IRI),
			Label:          d.Label,
			Description:    d.Description,
			IsNumerical:    d.IsNumerical,
			IsKeyDimension: d.IsKeyDimension,
			Values:         values(d.Values),
			TimeUnit:       cube.TimeUnit(d.TimeUnit),
			TimeFormat:     d.TimeFormat,
		})
	}

	for i, m := range decl.Measures {
		if err := addColumn(columns, m); err != nil {
			return nil, fmt.Errorf("error in measures[%d]: %w", i, err)
		}
		limits := make([]cube.Limit, 0, len(m.Limits))
		for _, l := range m.Limits {
			limits = append(limits, cube.Limit{Name: l.Name, Value: l.Value})
		}
		c.Measures = append(c.Measures, cube.Measure{
			Type:           cube.MeasureType(m.Type),
			CubeIRI:        c.IRI,
			ID:             cube.NewComponentID(c.UnversionedIRI, m.IRI),
			Label:          m.Label,
			Description:    m.Description,
			IsNumerical:    m.IsNumerical,
			IsKeyDimension: m.IsKeyDimension,
			Unit:           m.Unit,
			Values:         values(m.Values),
			Limits:         limits,
		})
	}

	observations, err := readObservations(bytes.NewReader(table), columns)
	if err != nil {
		return nil, err
	}
	c.Observations = observations

	return c, nil
}

func addColumn(columns map[string]string, d componentDeclaration) error {
	if d.IRI == "" {
		return errors.New("missing iri")
	}
	if d.Column == "" {
		return fmt.Errorf("component %s: missing column", d.IRI)
	}
	if _, ok := columns[d.Column]; ok {
		return fmt.Errorf("component %s: column `%s` is already taken", d.IRI, d.Column)
	}
	columns[d.Column] = d.IRI
	return nil
}

func values(declared []valueDeclaration) []cube.DimensionValue {
	res := make([]cube.DimensionValue, 0, len(declared))
	for _, v := range declared {
		res = append(res, cube.DimensionValue{Value: v.Value, Label: v.Label, Position: v.Position})
	}
	return res
}

// readObservations reads a CSV table with a header row. Every header has to
// name a declared column and every declared column has to be present.
func readObservations(r io.Reader, columns map[string]string) ([]cube.Observation, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error while reading the observation header: %w", err)
	}

	iris := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, column := range header {
		iri, ok := columns[column]
		if !ok {
			return nil, fmt.Errorf("observation column `%s` is not declared", column)
		}
		if seen[column] {
			return nil, fmt.Errorf("observation column `%s` appears twice", column)
		}
		seen[column] = true
		iris[i] = iri
	}
	for column := range columns {
		if !seen[column] {
			return nil, fmt.Errorf("observation column `%s` is missing", column)
		}
	}

	var res []cube.Observation
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error while reading observations: %w", err)
		}
		o := make(cube.Observation, len(record))
		for i, value := range record {
			o[iris[i]] = value
		}
		res = append(res, o)
	}
	return res, nil
}
