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
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/samply/cubectl/cube"
	"github.com/samply/cubectl/util"
	"github.com/spf13/cobra"
)

//go:embed preview-template.gohtml
var previewTemplate string

var previewFile string
var previewLimit int

type preview struct {
	Cube         *cube.Cube
	Headers      []string
	Rows         [][]string
	Total        int
	Statistics   util.ValueStatistics
	EditorURL    string
	Dimensions   []cube.Dimension
	MeasureLabel string
}

func renderPreview(wr io.Writer, c *cube.Cube, limit int) error {
	funcMap := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"fmtValue": util.FmtValue,
		"localName": func(id cube.ComponentID) string {
			return cube.LocalName(id.ComponentIRI())
		},
	}

	tmpl := template.Must(template.New("preview").Funcs(funcMap).Parse(previewTemplate))

	keys := c.ObservationKeys()
	observations := c.Observations
	if limit > 0 && len(observations) > limit {
		observations = observations[:limit]
	}
	rows := make([][]string, len(observations))
	for i, o := range observations {
		rows[i] = row(o, keys)
	}

	data := preview{
		Cube:       c,
		Headers:    headers(c),
		Rows:       rows,
		Total:      len(c.Observations),
		EditorURL:  c.SparqlEditorURL,
		Dimensions: c.Dimensions,
	}
	if len(c.Measures) > 0 {
		m := c.Measures[0]
		data.MeasureLabel = fmt.Sprintf("%s [%s]", m.Label, m.Unit)
		var values []float64
		for _, o := range c.Observations {
			if v, err := o.Float(m.ID.ComponentIRI()); err == nil {
				values = append(values, v)
			}
		}
		data.Statistics = util.CalculateValueStatistics(values)
	}

	return tmpl.Execute(wr, data)
}

var renderPreviewCmd = &cobra.Command{
	Use:   "render-preview",
	Short: "Renders an HTML preview of the cube",
	Long: `Renders the cube as a single HTML page with the dimensions, statistics of
the measure and a table of the first observations.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCube()
		if err != nil {
			return err
		}

		if previewFile == "" {
			return renderPreview(cmd.OutOrStdout(), c, previewLimit)
		}

		file, err := util.CreateOutputFile(previewFile)
		if err != nil {
			return err
		}
		defer file.Close()
		return renderPreview(file, c, previewLimit)
	},
}

func init() {
	rootCmd.AddCommand(renderPreviewCmd)

	renderPreviewCmd.Flags().StringVarP(&previewFile, "output-file", "o", "", "write to file instead of stdout")
	renderPreviewCmd.Flags().IntVar(&previewLimit, "limit", 100, "maximum number of observations in the table, 0 shows all")

	_ = renderPreviewCmd.MarkFlagFilename("output-file", "html")
}
