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

// Package fixture provides the bathing water quality cube used to preview
// tables and charts. The cube is decoded once from embedded documents and
// handed out as copies.
package fixture

import (
	_ "embed"
	"sync"

	"github.com/samply/cubectl/cube"
)

//go:embed bathing-water.yaml
var declaration []byte

//go:embed observations.csv
var observationTable []byte

var (
	once    sync.Once
	loaded  *cube.Cube
	errLoad error
)

func shared() *cube.Cube {
	once.Do(func() {
		loaded, errLoad = Decode(declaration, observationTable)
	})
	if errLoad != nil {
		panic("fixture: embedded bathing water cube is invalid: " + errLoad.Error())
	}
	return loaded
}

// Cube returns a copy of the bathing water cube.
func Cube() *cube.Cube {
	return shared().Clone()
}

// Dimensions returns date of probing, parameter type, monitoring programme
// and station.
func Dimensions() []cube.Dimension {
	return cube.CloneDimensions(shared().Dimensions)
}

// Measures returns the bacterial concentration measure.
func Measures() []cube.Measure {
	return cube.CloneMeasures(shared().Measures)
}

// Observations returns one observation per water sample.
func Observations() []cube.Observation {
	return cube.CloneObservations(shared().Observations)
}

// SparqlEditorURL returns the link to the query behind the observations in
// the LINDAS SPARQL editor.
func SparqlEditorURL() string {
	return shared().SparqlEditorURL
}
