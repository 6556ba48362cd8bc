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
package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/samply/cubectl/cube"
	"github.com/samply/cubectl/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stationIRI   = "https://environment.ld.admin.ch/foen/ubd0104/station"
	parameterIRI = "https://environment.ld.admin.ch/foen/ubd0104/parametertype"
)

func TestParseFilters(t *testing.T) {
	t.Run("several expressions", func(t *testing.T) {
		filters, err := parseFilters([]string{"station=Aare%20-%20Marzili%20Bern", "parametertype=E.coli"})

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"station": "Aare - Marzili Bern", "parametertype": "E.coli"}, filters)
	})

	t.Run("filter file", func(t *testing.T) {
		filterFile := filepath.Join(t.TempDir(), "aare.filter")
		require.NoError(t, os.WriteFile(filterFile, []byte("station=Aare%20-%20Marzili%20Bern\n"), 0644))

		filters, err := parseFilters([]string{"@" + filterFile, "monitoringprogram=Routine"})

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"station": "Aare - Marzili Bern", "monitoringprogram": "Routine"}, filters)
	})

	t.Run("key in two expressions", func(t *testing.T) {
		_, err := parseFilters([]string{"station=a", "station=b"})
		assert.EqualError(t, err, "filter key `station` is given more than once")
	})
}

func TestSelectObservations(t *testing.T) {
	c := fixture.Cube()

	t.Run("all", func(t *testing.T) {
		observations, err := selectObservations(c, nil, 0)

		require.NoError(t, err)
		assert.Len(t, observations, 285)
	})

	t.Run("limit", func(t *testing.T) {
		observations, err := selectObservations(c, nil, 3)

		require.NoError(t, err)
		require.Len(t, observations, 3)
		assert.Equal(t, "89", observations[0]["https://environment.ld.admin.ch/foen/ubd0104/value"])
	})

	t.Run("filter by local name and label", func(t *testing.T) {
		observations, err := selectObservations(c, []string{"station=Aare%20-%20Marzili%20Bern", "Parameter=E.coli"}, 0)

		require.NoError(t, err)
		require.NotEmpty(t, observations)
		for _, o := range observations {
			assert.Equal(t, "Aare - Marzili Bern", o[stationIRI])
			assert.Equal(t, "E.coli", o[parameterIRI])
		}
	})

	t.Run("label and local name of one component", func(t *testing.T) {
		_, err := selectObservations(c, []string{"station=Aare%20-%20Marzili%20Bern", "Messstelle=Thunersee%20-%20Strandbad%20Thun"}, 0)
		assert.EqualError(t, err, "filters `Messstelle` and `station` select different values of "+stationIRI)
	})

	t.Run("unknown component", func(t *testing.T) {
		_, err := selectObservations(c, []string{"lake=Aare"}, 0)
		assert.EqualError(t, err, "unknown component `lake`")
	})
}

func TestWriteObservations(t *testing.T) {
	c := newLakeCube()

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeObservations(&buf, c, c.Observations[:2], "csv"))

		assert.Equal(t, "date,site,level\n2022-01-01,north,1.5\n2022-01-01,south,3\n", buf.String())
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeObservations(&buf, c, c.Observations[:1], "table"))

		assert.Equal(t, "DATE        SITE   LEVEL [m]\n2022-01-01  north  1.5\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeObservations(&buf, c, c.Observations, "json"))

		var observations []cube.Observation
		require.NoError(t, json.Unmarshal(buf.Bytes(), &observations))
		assert.Equal(t, c.Observations, observations)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeObservations(&buf, c, c.Observations, "yaml"))

		var observations []cube.Observation
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &observations))
		assert.Equal(t, c.Observations, observations)
	})

	t.Run("invalid format", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeObservations(&buf, c, c.Observations, "xml")
		assert.EqualError(t, err, "invalid format `xml`. Must be one of: table, csv, json, yaml")
	})
}
