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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/samply/cubectl/cube"
	"github.com/samply/cubectl/util"
	"github.com/spf13/cobra"
)

var outputFormats = []string{"table", "csv", "json", "yaml"}

var outputFormat string
var limit int
var filterExpressions []string

// parseFilters merges --filter expressions. Expressions starting with `@`
// name a filter file.
func parseFilters(expressions []string) (map[string]string, error) {
	filters := make(map[string]string)
	for _, expression := range expressions {
		var parsed map[string]string
		var err error
		if strings.HasPrefix(expression, "@") {
			parsed, err = util.ReadFiltersFromFile(expression)
		} else {
			parsed, err = util.ParseFilters([]string{expression})
		}
		if err != nil {
			return nil, err
		}
		for key, value := range parsed {
			if _, ok := filters[key]; ok {
				return nil, fmt.Errorf("filter key `%s` is given more than once", key)
			}
			filters[key] = value
		}
	}
	return filters, nil
}

// selectObservations applies filters and limit. A limit of zero or less
// selects all observations.
func selectObservations(c *cube.Cube, expressions []string, limit int) ([]cube.Observation, error) {
	filters, err := parseFilters(expressions)
	if err != nil {
		return nil, err
	}
	observations, err := c.Filter(filters)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(observations) > limit {
		observations = observations[:limit]
	}
	return observations, nil
}

func writeObservations(w io.Writer, c *cube.Cube, observations []cube.Observation, format string) error {
	keys := c.ObservationKeys()
	switch format {
	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(headers(c), "\t"))
		for _, o := range observations {
			fmt.Fprintln(tw, strings.Join(row(o, keys), "\t"))
		}
		return tw.Flush()
	case "csv":
		cw := csv.NewWriter(w)
		names := make([]string, len(keys))
		for i, key := range keys {
			names[i] = cube.LocalName(key)
		}
		if err := cw.Write(names); err != nil {
			return err
		}
		for _, o := range observations {
			if err := cw.Write(row(o, keys)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(observations)
	case "yaml":
		b, err := yaml.Marshal(observations)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("invalid format `%s`. Must be one of: %s", format, strings.Join(outputFormats, ", "))
	}
}

func headers(c *cube.Cube) []string {
	var res []string
	for _, d := range c.Dimensions {
		res = append(res, strings.ToUpper(d.Label))
	}
	for _, m := range c.Measures {
		if m.Unit != "" {
			res = append(res, fmt.Sprintf("%s [%s]", strings.ToUpper(m.Label), m.Unit))
		} else {
			res = append(res, strings.ToUpper(m.Label))
		}
	}
	return res
}

func row(o cube.Observation, keys []string) []string {
	res := make([]string, len(keys))
	for i, key := range keys {
		res[i] = o[key]
	}
	return res
}

var observationsCmd = &cobra.Command{
	Use:   "observations",
	Short: "Prints observations",
	Long: `Prints the observations of the cube as a table, CSV, JSON or YAML.

Filters select observations by component. The key of a filter is the
component IRI, the last segment of it or the component label. Filters can
be read from a file by prefixing the filename with @.

Example:

  cubectl observations --filter station=Aare%20-%20Marzili%20Bern --filter parametertype=E.coli`,
	Args: cobra.NoArgs,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(outputFormats, outputFormat) {
			return fmt.Errorf("invalid format `%s`. Must be one of: %s", outputFormat, strings.Join(outputFormats, ", "))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCube()
		if err != nil {
			return err
		}
		observations, err := selectObservations(c, filterExpressions, limit)
		if err != nil {
			return err
		}
		return writeObservations(cmd.OutOrStdout(), c, observations, outputFormat)
	},
}

func init() {
	rootCmd.AddCommand(observationsCmd)

	observationsCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "output format, one of: "+strings.Join(outputFormats, ", "))
	observationsCmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of observations to print, 0 prints all")
	observationsCmd.Flags().StringArrayVar(&filterExpressions, "filter", nil, "filter as key=value, repeatable, @file reads filters from a file")

	_ = observationsCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return outputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
