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
	"strconv"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// NoObservation marks issues that don't belong to a single observation.
const NoObservation = -1

// Issue is a single finding of Validate.
type Issue struct {
	Severity    Severity
	Component   ComponentID
	Observation int
	Message     string
}

func (i Issue) String() string {
	if i.Observation != NoObservation {
		return fmt.Sprintf("observation[%d]: %s", i.Observation, i.Message)
	}
	if i.Component != "" {
		return fmt.Sprintf("%s: %s", i.Component, i.Message)
	}
	return i.Message
}

// ValidationError carries all issues of severity error.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return e.Issues[0].String()
	}
	return fmt.Sprintf("%d validation errors, first: %s", len(e.Issues), e.Issues[0].String())
}

// NewValidationError keeps the issues of severity error.
func NewValidationError(issues []Issue) *ValidationError {
	var errs []Issue
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return &ValidationError{Issues: errs}
}

// Check validates c and returns a *ValidationError if any issue has severity
// error. Warnings are ignored.
func Check(c *Cube) error {
	issues := Validate(c)
	if !HasErrors(issues) {
		return nil
	}
	return NewValidationError(issues)
}

// HasErrors reports whether issues contains an issue of severity error.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

type validator struct {
	cube   *Cube
	issues []Issue
}

func (v *validator) errorf(component ComponentID, observation int, format string, a ...interface{}) {
	v.issues = append(v.issues, Issue{SeverityError, component, observation, fmt.Sprintf(format, a...)})
}

func (v *validator) warnf(component ComponentID, observation int, format string, a ...interface{}) {
	v.issues = append(v.issues, Issue{SeverityWarning, component, observation, fmt.Sprintf(format, a...)})
}

// Validate runs the structural checks on c. Repeated observations are
// accepted, real sample data contains them.
func Validate(c *Cube) []Issue {
	v := &validator{cube: c}
	v.components()
	v.observationKeys()
	for _, d := range c.Dimensions {
		v.dimensionValues(d)
	}
	for _, m := range c.Measures {
		v.measureValues(m)
	}
	return v.issues
}

func (v *validator) components() {
	if len(v.cube.Components()) == 0 {
		v.errorf("", NoObservation, "cube %s has no components", v.cube.IRI)
		return
	}
	seen := make(map[ComponentID]bool)
	for _, component := range v.cube.Components() {
		id := component.ComponentID()
		if seen[id] {
			v.errorf(id, NoObservation, "duplicate component id")
		}
		seen[id] = true

		cubeIRI, _, err := id.Parse()
		if err != nil {
			v.errorf(id, NoObservation, "%v", err)
			continue
		}
		if cubeIRI != v.cube.UnversionedIRI {
			v.errorf(id, NoObservation, "id refers to cube %s instead of %s", cubeIRI, v.cube.UnversionedIRI)
		}
	}
	for _, d := range v.cube.Dimensions {
		if d.CubeIRI != v.cube.IRI {
			v.errorf(d.ID, NoObservation, "cubeIri %s differs from %s", d.CubeIRI, v.cube.IRI)
		}
		if d.Type == TemporalDimension {
			if d.TimeUnit == "" {
				v.errorf(d.ID, NoObservation, "temporal dimension without time unit")
			}
			if _, err := StrftimeToLayout(d.TimeFormat); err != nil {
				v.errorf(d.ID, NoObservation, "%v", err)
			}
		}
	}
	for _, m := range v.cube.Measures {
		if m.CubeIRI != v.cube.IRI {
			v.errorf(m.ID, NoObservation, "cubeIri %s differs from %s", m.CubeIRI, v.cube.IRI)
		}
	}
}

func (v *validator) observationKeys() {
	expected := make(map[string]bool)
	for _, key := range v.cube.ObservationKeys() {
		expected[key] = true
	}
	for idx, o := range v.cube.Observations {
		for _, key := range v.cube.ObservationKeys() {
			if _, ok := o[key]; !ok {
				v.errorf("", idx, "missing value for %s", key)
			}
		}
		for _, key := range o.Keys() {
			if !expected[key] {
				v.errorf("", idx, "unexpected key %s", key)
			}
		}
	}
}

func (v *validator) dimensionValues(d Dimension) {
	iri := d.ID.ComponentIRI()
	if iri == "" {
		return
	}
	declared := make(map[string]bool, len(d.Values))
	for _, value := range d.Values {
		declared[value.Value] = true
	}
	for idx, o := range v.cube.Observations {
		value, ok := o[iri]
		if !ok {
			continue
		}
		if d.Type == TemporalDimension {
			if _, err := d.ParseTime(value); err != nil {
				v.errorf(d.ID, idx, "value %q does not match time format %s", value, d.TimeFormat)
			}
		}
		if len(declared) > 0 && !declared[value] {
			v.warnf(d.ID, idx, "value %q of %s is not declared", value, d.Label)
		}
	}
}

func (v *validator) measureValues(m Measure) {
	iri := m.ID.ComponentIRI()
	if iri == "" || !m.IsNumerical {
		return
	}

	var observedMin, observedMax float64
	var found int
	for idx, o := range v.cube.Observations {
		if _, ok := o[iri]; !ok {
			continue
		}
		f, err := o.Float(iri)
		if err != nil {
			v.errorf(m.ID, idx, "%v", err)
			continue
		}
		if found == 0 || f < observedMin {
			observedMin = f
		}
		if found == 0 || f > observedMax {
			observedMax = f
		}
		found++
	}

	declaredMin, declaredMax, err := m.Range()
	if err != nil {
		v.warnf(m.ID, NoObservation, "%v", err)
		return
	}
	if found == 0 {
		return
	}
	if observedMin < declaredMin {
		v.errorf(m.ID, NoObservation, "observed minimum %s is below the declared minimum %s", fmtFloat(observedMin), fmtFloat(declaredMin))
	} else if observedMin != declaredMin {
		v.warnf(m.ID, NoObservation, "declared minimum %s is never observed, lowest value is %s", fmtFloat(declaredMin), fmtFloat(observedMin))
	}
	if observedMax > declaredMax {
		v.errorf(m.ID, NoObservation, "observed maximum %s is above the declared maximum %s", fmtFloat(observedMax), fmtFloat(declaredMax))
	} else if observedMax != declaredMax {
		v.warnf(m.ID, NoObservation, "declared maximum %s is never observed, highest value is %s", fmtFloat(declaredMax), fmtFloat(observedMax))
	}
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
