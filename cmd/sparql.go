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
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samply/cubectl/cube"
	"github.com/samply/cubectl/sparql"
	"github.com/samply/cubectl/util"
	"github.com/spf13/cobra"
)

const defaultEditorBase = "https://int.lindas.admin.ch/sparql/"

var generateQuery bool
var printLink bool
var queryLimit int
var useGet bool

// cubeQuery returns the query stored in the editor link of c or, if
// generate is set or c carries no link, a query generated from the
// components of c.
func cubeQuery(c *cube.Cube, generate bool, limit int) (string, error) {
	if !generate && c.SparqlEditorURL != "" {
		return sparql.ParseEditorURL(c.SparqlEditorURL)
	}
	return sparql.ObservationQuery(c, limit)
}

func editorBase(c *cube.Cube) string {
	if c.SparqlEditorURL == "" {
		return defaultEditorBase
	}
	base, _, _ := strings.Cut(c.SparqlEditorURL, "#")
	return base
}

// runQuery sends query to the endpoint and converts the bindings into
// observations keyed by component IRI. A non-OK response is reported in the
// Error field of the returned stats.
func runQuery(client *sparql.Client, c *cube.Cube, query string, get bool) ([]cube.Observation, util.CommandStats, error) {
	stats := util.CommandStats{}
	start := time.Now()

	var req *http.Request
	var err error
	if get {
		req, err = client.NewGetQueryRequest(query)
	} else {
		req, err = client.NewQueryRequest(query)
	}
	if err != nil {
		return nil, stats, err
	}

	results, totalBytes, err := client.Execute(req)
	stats.TotalBytes = totalBytes
	stats.TotalDuration = time.Since(start)
	if err != nil {
		var errRes *util.ErrorResponse
		if errors.As(err, &errRes) {
			stats.Error = errRes
			return nil, stats, nil
		}
		return nil, stats, err
	}

	observations, err := results.Observations(sparql.Variables(c))
	if err != nil {
		return nil, stats, err
	}
	stats.TotalObservations = len(observations)
	if len(c.Measures) > 0 {
		m := c.Measures[0]
		stats.Unit = m.Unit
		for _, o := range observations {
			if v, err := o.Float(m.ID.ComponentIRI()); err == nil {
				stats.Values = append(stats.Values, v)
			}
		}
	}
	return observations, stats, nil
}

func checkSparqlFlags(endpoint string, link bool, get bool) error {
	if endpoint != "" && link {
		return errors.New("--link can't be combined with --endpoint")
	}
	if endpoint == "" && get {
		return errors.New("--get requires --endpoint")
	}
	return nil
}

var sparqlCmd = &cobra.Command{
	Use:   "sparql",
	Short: "Prints or runs the SPARQL query of the cube",
	Long: `Prints the SPARQL query behind the editor link of the cube. With
--generate the query is built from the dimensions and measures instead.

With --endpoint the query is sent to a SPARQL endpoint and a summary of the
returned observations is printed.

Example:

  cubectl sparql --generate --endpoint https://int.lindas.admin.ch/query`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkSparqlFlags(endpoint, printLink, useGet)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCube()
		if err != nil {
			return err
		}
		query, err := cubeQuery(c, generateQuery, queryLimit)
		if err != nil {
			return err
		}

		if endpoint == "" {
			if printLink {
				link, err := sparql.EditorURL(editorBase(c), query)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), link)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), query)
			if !strings.HasSuffix(query, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		}

		if err := createClient(); err != nil {
			return err
		}
		defer client.CloseIdleConnections()

		_, stats, err := runQuery(client, c, query, useGet)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), stats.String())
		if stats.Error != nil {
			return stats.Error
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sparqlCmd)

	sparqlCmd.Flags().StringVar(&endpoint, "endpoint", "", "the SPARQL endpoint to run the query against")
	sparqlCmd.Flags().BoolVar(&generateQuery, "generate", false, "generate the query from the cube components")
	sparqlCmd.Flags().BoolVar(&printLink, "link", false, "print a SPARQL editor link instead of the query")
	sparqlCmd.Flags().BoolVar(&useGet, "get", false, "send the query as URL parameter of a GET request")
	sparqlCmd.Flags().IntVar(&queryLimit, "limit", 1000, "limit of generated queries, 0 means no limit")
}
