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
	"testing"

	"github.com/samply/cubectl/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDimensions(t *testing.T) {
	t.Run("short names", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeDimensions(&buf, fixture.Cube(), false))

		out := buf.String()
		assert.Contains(t, out, "Badegewässerqualität\nhttps://environment.ld.admin.ch/foen/ubd0104/3/\n")
		assert.Contains(t, out, "dateofprobing")
		assert.Contains(t, out, "Datum der Probenahme")
		assert.Contains(t, out, "TemporalDimension")
		assert.Contains(t, out, "Day, %Y-%m-%d")
		assert.Contains(t, out, "CFU/100ml, 0 to 7700")
		assert.NotContains(t, out, "VISUALIZE.ADMIN_COMPONENT_ID_SEPARATOR")
	})

	t.Run("full ids", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeDimensions(&buf, fixture.Cube(), true))

		assert.Contains(t, buf.String(), "https://environment.ld.admin.ch/foen/ubd0104(VISUALIZE.ADMIN_COMPONENT_ID_SEPARATOR)https://environment.ld.admin.ch/foen/ubd0104/station")
	})

	t.Run("one line per component", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeDimensions(&buf, newLakeCube(), false))

		assert.Equal(t, "Lake levels\n"+
			"https://example.org/lake/1/\n"+
			"\n"+
			"COMPONENT  LABEL  TYPE               KEY  VALUES  DETAILS\n"+
			"date       Date   TemporalDimension  yes  2       Day, %Y-%m-%d\n"+
			"site       Site   NominalDimension   yes  2       \n"+
			"level      Level  NumericalMeasure   no   2       m, 0 to 5\n", buf.String())
	})
}
