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
	"sort"
	"text/tabwriter"

	"github.com/samply/cubectl/cube"
	"github.com/samply/cubectl/util"
	"github.com/spf13/cobra"
)

var groupBy string
var measureKey string

// GroupStatistics are the value statistics of one group of observations.
type GroupStatistics struct {
	Group string
	util.ValueStatistics
}

// calculateStatistics groups observations by the component groupBy and
// calculates the statistics of the measure measureIRI per group. An empty
// groupBy puts all observations into one group.
func calculateStatistics(observations []cube.Observation, measureIRI string, groupBy string) ([]GroupStatistics, error) {
	values := make(map[string][]float64)
	for i, o := range observations {
		v, err := o.Float(measureIRI)
		if err != nil {
			return nil, fmt.Errorf("observation[%d]: %w", i, err)
		}
		group := "all"
		if groupBy != "" {
			group = o[groupBy]
		}
		values[group] = append(values[group], v)
	}

	groups := make([]string, 0, len(values))
	for group := range values {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	res := make([]GroupStatistics, len(groups))
	for i, group := range groups {
		res[i] = GroupStatistics{Group: group, ValueStatistics: util.CalculateValueStatistics(values[group])}
	}
	return res, nil
}

func resolveMeasure(c *cube.Cube, key string) (cube.Measure, error) {
	if len(c.Measures) == 0 {
		return cube.Measure{}, fmt.Errorf("cube %s has no measures", c.IRI)
	}
	if key == "" {
		return c.Measures[0], nil
	}
	iri, err := c.ResolveKey(key)
	if err != nil {
		return cube.Measure{}, err
	}
	for _, m := range c.Measures {
		if m.ID.ComponentIRI() == iri {
			return m, nil
		}
	}
	return cube.Measure{}, fmt.Errorf("component `%s` is not a measure", key)
}

func writeStatistics(w io.Writer, c *cube.Cube, measureKey string, groupKey string) error {
	m, err := resolveMeasure(c, measureKey)
	if err != nil {
		return err
	}
	groupBy := ""
	if groupKey != "" {
		if groupBy, err = c.ResolveKey(groupKey); err != nil {
			return err
		}
	}

	stats, err := calculateStatistics(c.Observations, m.ID.ComponentIRI(), groupBy)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s [%s]\n", m.Label, m.Unit)
	if d, ok := c.Dimension(groupBy); ok {
		fmt.Fprintf(tw, "by %s\n", d.Label)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "GROUP\tCOUNT\tMIN\tMEAN\tQ50\tQ95\tQ99\tMAX")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n", s.Group, s.Count, util.FmtValue(s.Min),
			util.FmtValue(s.Mean), util.FmtValue(s.Q50), util.FmtValue(s.Q95), util.FmtValue(s.Q99),
			util.FmtValue(s.Max))
	}
	return tw.Flush()
}

var statisticsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Calculates statistics of measured values",
	Long: `Calculates count, min, mean, max and the 50, 95 and 99 percentiles of a
measure. With --by the observations are grouped by the given component.

Example:

  cubectl stats --by station`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCube()
		if err != nil {
			return err
		}
		return writeStatistics(cmd.OutOrStdout(), c, measureKey, groupBy)
	},
}

func init() {
	rootCmd.AddCommand(statisticsCmd)

	statisticsCmd.Flags().StringVar(&groupBy, "by", "", "component to group observations by")
	statisticsCmd.Flags().StringVar(&measureKey, "measure", "", "measure to calculate statistics for, defaults to the first one")
}
