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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samply/cubectl/cube"
	"github.com/samply/cubectl/util"
)

// Term is one bound RDF term of a result row.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Results is the SPARQL 1.1 query results JSON format of a SELECT query.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]Term `json:"bindings"`
	} `json:"results"`
}

// ReadResults reads and unmarshals SELECT query results.
func ReadResults(r io.Reader) (Results, error) {
	var results Results
	body, err := io.ReadAll(r)
	if err != nil {
		return results, err
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return results, fmt.Errorf("error while parsing query results: %w", err)
	}
	return results, nil
}

// Observations turns every result row into an observation. variables maps
// query variables to the component IRI their values are stored under. Rows
// missing one of the variables are rejected.
func (r Results) Observations(variables map[string]string) ([]cube.Observation, error) {
	res := make([]cube.Observation, 0, len(r.Results.Bindings))
	for idx, row := range r.Results.Bindings {
		o := make(cube.Observation, len(variables))
		for variable, iri := range variables {
			term, ok := row[variable]
			if !ok {
				return nil, fmt.Errorf("row[%d]: missing binding for ?%s", idx, variable)
			}
			o[iri] = term.Value
		}
		res = append(res, o)
	}
	return res, nil
}

// Select sends query to the endpoint as POST request and reads the results.
// Non-OK responses are returned as *util.ErrorResponse.
func (c *Client) Select(query string) (Results, error) {
	req, err := c.NewQueryRequest(query)
	if err != nil {
		return Results{}, err
	}
	results, _, err := c.Execute(req)
	return results, err
}

// Execute sends a query request created by NewQueryRequest or
// NewGetQueryRequest and reads the results. It also returns the number of
// bytes received. Non-OK responses are returned as *util.ErrorResponse.
func (c *Client) Execute(req *http.Request) (Results, int64, error) {
	resp, err := c.Do(req)
	if err != nil {
		return Results{}, 0, fmt.Errorf("could not request the SPARQL endpoint %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Results{}, int64(len(body)), fmt.Errorf("could not read the response of the SPARQL endpoint %s (status %d): %w",
			req.URL, resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		return Results{}, int64(len(body)), &util.ErrorResponse{
			StatusCode: resp.StatusCode,
			OtherError: strings.TrimSpace(string(body)),
		}
	}

	results, err := ReadResults(bytes.NewReader(body))
	return results, int64(len(body)), err
}
