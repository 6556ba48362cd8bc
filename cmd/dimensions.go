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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samply/cubectl/cube"
	"github.com/spf13/cobra"
)

var showIds bool

func writeDimensions(w io.Writer, c *cube.Cube, ids bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n%s\n\n", c.Title, c.IRI)
	if ids {
		fmt.Fprintln(tw, "ID\tLABEL\tTYPE\tKEY\tVALUES\tDETAILS")
	} else {
		fmt.Fprintln(tw, "COMPONENT\tLABEL\tTYPE\tKEY\tVALUES\tDETAILS")
	}
	for _, d := range c.Dimensions {
		details := ""
		if d.Type == cube.TemporalDimension {
			details = fmt.Sprintf("%s, %s", d.TimeUnit, d.TimeFormat)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", componentName(d.ID, ids), d.Label, d.Type, yesNo(d.IsKeyDimension), len(d.Values), details)
	}
	for _, m := range c.Measures {
		details := m.Unit
		if min, max, err := m.Range(); err == nil {
			details = fmt.Sprintf("%s, %g to %g", m.Unit, min, max)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", componentName(m.ID, ids), m.Label, m.Type, yesNo(m.IsKeyDimension), len(m.Values), details)
	}
	return tw.Flush()
}

func componentName(id cube.ComponentID, ids bool) string {
	if ids {
		return id.String()
	}
	if iri := id.ComponentIRI(); iri != "" {
		return cube.LocalName(iri)
	}
	return id.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

var dimensionsCmd = &cobra.Command{
	Use:   "dimensions",
	Short: "Lists dimensions and measures",
	Long: `Lists all dimensions and measures of the cube with their type, whether they
are key dimensions and the number of declared values.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCube()
		if err != nil {
			return err
		}
		return writeDimensions(cmd.OutOrStdout(), c, showIds)
	},
}

func init() {
	rootCmd.AddCommand(dimensionsCmd)

	dimensionsCmd.Flags().BoolVar(&showIds, "ids", false, "show full component ids instead of short names")
}
