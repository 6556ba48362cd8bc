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

// Package sparql talks to SPARQL endpoints serving data cubes and handles
// the editor links pointing at queries.
package sparql

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"text/template"

	"github.com/samply/cubectl/cube"
)

var queryTemplate = template.Must(template.New("query").Parse(`PREFIX cube: <https://cube.link/>
SELECT{{ range .Variables }} ?{{ .Name }}{{ end }}
WHERE {
  <{{ .Cube }}> cube:observationSet/cube:observation ?observation .
  ?observation{{ range $index, $v := .Variables }}{{ if $index }} ;
   {{ end }} <{{ $v.IRI }}> ?{{ $v.Name }}{{ end }} .
}
{{- with .OrderBy }}
ORDER BY{{ range . }} ?{{ . }}{{ end }}
{{- end }}
{{- if .Limit }}
LIMIT {{ .Limit }}
{{- end }}
`))

type variable struct {
	Name string
	IRI  string
}

var nonVariableChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Variables maps one SPARQL variable per observation key to its component
// IRI. Variable names derive from the local name of the IRI.
func Variables(c *cube.Cube) map[string]string {
	res := make(map[string]string)
	for _, v := range variables(c) {
		res[v.Name] = v.IRI
	}
	return res
}

func variables(c *cube.Cube) []variable {
	keys := c.ObservationKeys()
	res := make([]variable, 0, len(keys))
	taken := make(map[string]int)
	for _, iri := range keys {
		name := nonVariableChars.ReplaceAllString(cube.LocalName(iri), "_")
		if name == "" {
			name = "v"
		}
		taken[name]++
		if n := taken[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		res = append(res, variable{Name: name, IRI: iri})
	}
	return res
}

// ObservationQuery renders a SELECT query returning all observations of c
// with one variable per observation key. Results are ordered by the key
// dimensions. A limit of zero means no limit.
func ObservationQuery(c *cube.Cube, limit int) (string, error) {
	if c.IRI == "" {
		return "", errors.New("cube has no IRI")
	}
	vars := variables(c)
	if len(vars) == 0 {
		return "", errors.New("cube has no components")
	}

	var orderBy []string
	for i, component := range c.Components() {
		if component.KeyDimension() {
			orderBy = append(orderBy, vars[i].Name)
		}
	}

	builder := strings.Builder{}
	err := queryTemplate.Execute(&builder, struct {
		Cube      string
		Variables []variable
		OrderBy   []string
		Limit     int
	}{c.IRI, vars, orderBy, limit})
	if err != nil {
		return "", err
	}
	return builder.String(), nil
}

// ParseEditorURL extracts the query from a link into a YASGUI style SPARQL
// editor. The query is taken from the fragment if present, otherwise from
// the query string.
func ParseEditorURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("could not parse editor URL: %w", err)
	}
	if fragment := u.EscapedFragment(); fragment != "" {
		params, err := url.ParseQuery(fragment)
		if err != nil {
			return "", fmt.Errorf("could not parse editor URL fragment: %w", err)
		}
		if q := params.Get("query"); q != "" {
			return q, nil
		}
	}
	if q := u.Query().Get("query"); q != "" {
		return q, nil
	}
	return "", fmt.Errorf("editor URL %s carries no query", u.Redacted())
}

// EditorURL links query in the SPARQL editor at base. The query is put into
// the fragment so it never reaches the server.
func EditorURL(base string, query string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("could not parse editor base URL: %w", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("requestMethod", "POST")
	u.Fragment = ""
	u.RawFragment = ""
	return u.String() + "#" + strings.ReplaceAll(params.Encode(), "+", "%20"), nil
}
