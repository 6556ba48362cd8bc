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

package sparql

import (
	"testing"

	"github.com/samply/cubectl/cube"
	"github.com/samply/cubectl/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservationQuery(t *testing.T) {
	t.Run("bathing water", func(t *testing.T) {
		query, err := ObservationQuery(fixture.Cube(), 1000)

		require.NoError(t, err)
		assert.Equal(t, `PREFIX cube: <https://cube.link/>
SELECT ?dateofprobing ?parametertype ?monitoringprogram ?station ?value
WHERE {
  <https://environment.ld.admin.ch/foen/ubd0104/3/> cube:observationSet/cube:observation ?observation .
  ?observation <https://environment.ld.admin.ch/foen/ubd0104/dateofprobing> ?dateofprobing ;
    <https://environment.ld.admin.ch/foen/ubd0104/parametertype> ?parametertype ;
    <https://environment.ld.admin.ch/foen/ubd0104/monitoringprogram> ?monitoringprogram ;
    <https://environment.ld.admin.ch/foen/ubd0104/station> ?station ;
    <https://environment.ld.admin.ch/foen/ubd0104/value> ?value .
}
ORDER BY ?dateofprobing ?parametertype ?station
LIMIT 1000
`, query)
	})

	t.Run("without limit and key dimensions", func(t *testing.T) {
		c := &cube.Cube{
			IRI: "https://example.org/lake/1/",
			Measures: []cube.Measure{
				{ID: cube.NewComponentID("https://example.org/lake", "https://example.org/lake/water-level")},
			},
		}

		query, err := ObservationQuery(c, 0)

		require.NoError(t, err)
		assert.Equal(t, `PREFIX cube: <https://cube.link/>
SELECT ?water_level
WHERE {
  <https://example.org/lake/1/> cube:observationSet/cube:observation ?observation .
  ?observation <https://example.org/lake/water-level> ?water_level .
}
`, query)
	})

	t.Run("no components", func(t *testing.T) {
		_, err := ObservationQuery(&cube.Cube{IRI: "https://example.org/lake/1/"}, 0)
		assert.EqualError(t, err, "cube has no components")
	})

	t.Run("no IRI", func(t *testing.T) {
		_, err := ObservationQuery(&cube.Cube{}, 0)
		assert.EqualError(t, err, "cube has no IRI")
	})
}

func TestVariables(t *testing.T) {
	c := &cube.Cube{
		Dimensions: []cube.Dimension{
			{ID: cube.NewComponentID("https://example.org/a", "https://example.org/a/site")},
			{ID: cube.NewComponentID("https://example.org/a", "https://example.org/b/site")},
		},
	}

	assert.Equal(t, map[string]string{
		"site":   "https://example.org/a/site",
		"site_2": "https://example.org/b/site",
	}, Variables(c))
}

func TestParseEditorURL(t *testing.T) {
	t.Run("fixture link", func(t *testing.T) {
		query, err := ParseEditorURL(fixture.SparqlEditorURL())

		require.NoError(t, err)
		assert.Contains(t, query, "<https://environment.ld.admin.ch/foen/ubd0104/3/> cube:observationSet/cube:observation ?observation .")
		assert.Contains(t, query, "LIMIT 1000")
	})

	t.Run("query string", func(t *testing.T) {
		query, err := ParseEditorURL("https://lindas.example.org/sparql?query=ASK%20%7B%7D")
		require.NoError(t, err)
		assert.Equal(t, "ASK {}", query)
	})

	t.Run("no query", func(t *testing.T) {
		_, err := ParseEditorURL("https://lindas.example.org/sparql#tab=1")
		assert.EqualError(t, err, "editor URL https://lindas.example.org/sparql#tab=1 carries no query")
	})

	t.Run("round trip", func(t *testing.T) {
		query := "SELECT ?a WHERE { ?a <https://example.org/p> \"x+y & z\" }"

		link, err := EditorURL("https://lindas.example.org/sparql/", query)
		require.NoError(t, err)
		parsed, err := ParseEditorURL(link)

		require.NoError(t, err)
		assert.Equal(t, query, parsed)
		assert.NotContains(t, link, "+")
	})
}
