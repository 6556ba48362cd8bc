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

package cube

import (
	"fmt"
	"net/url"
	"strings"
)

// ComponentIDSeparator joins the cube IRI and the component IRI of a ComponentID.
const ComponentIDSeparator = "(VISUALIZE.ADMIN_COMPONENT_ID_SEPARATOR)"

// ComponentID identifies a dimension or measure across cubes. It is the
// unversioned cube IRI followed by ComponentIDSeparator and the unversioned
// component IRI.
type ComponentID string

// NewComponentID builds the ComponentID of the component with componentIRI
// in the cube with cubeIRI.
func NewComponentID(cubeIRI, componentIRI string) ComponentID {
	return ComponentID(cubeIRI + ComponentIDSeparator + componentIRI)
}

// Parse splits id into its cube IRI and component IRI. Both halves have to
// be absolute http(s) IRIs.
func (id ComponentID) Parse() (cubeIRI string, componentIRI string, err error) {
	parts := strings.Split(string(id), ComponentIDSeparator)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("component id %q must contain the separator exactly once", string(id))
	}
	if err := checkIRI(parts[0]); err != nil {
		return "", "", fmt.Errorf("component id %q: cube %w", string(id), err)
	}
	if err := checkIRI(parts[1]); err != nil {
		return "", "", fmt.Errorf("component id %q: component %w", string(id), err)
	}
	return parts[0], parts[1], nil
}

// CubeIRI returns the cube half of id or an empty string if id is malformed.
func (id ComponentID) CubeIRI() string {
	cubeIRI, _, err := id.Parse()
	if err != nil {
		return ""
	}
	return cubeIRI
}

// ComponentIRI returns the component half of id or an empty string if id is
// malformed.
func (id ComponentID) ComponentIRI() string {
	_, componentIRI, err := id.Parse()
	if err != nil {
		return ""
	}
	return componentIRI
}

func (id ComponentID) String() string {
	return string(id)
}

func checkIRI(iri string) error {
	if iri == "" {
		return fmt.Errorf("IRI is empty")
	}
	u, err := url.Parse(iri)
	if err != nil {
		return fmt.Errorf("IRI %q is invalid: %w", iri, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("IRI %q is not an http(s) IRI", iri)
	}
	if u.Host == "" {
		return fmt.Errorf("IRI %q has no host", iri)
	}
	return nil
}

// LocalName returns the last path segment or fragment of iri, which SPARQL
// variables and short filter keys are derived from.
func LocalName(iri string) string {
	trimmed := strings.TrimRight(iri, "/#")
	if i := strings.LastIndexAny(trimmed, "/#"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
