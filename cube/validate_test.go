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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(issues []Issue, severity Severity) []string {
	var res []string
	for _, issue := range issues {
		if issue.Severity == severity {
			res = append(res, issue.String())
		}
	}
	return res
}

func TestValidate(t *testing.T) {
	t.Run("valid cube with repeated observation", func(t *testing.T) {
		issues := Validate(newTestCube())

		assert.Empty(t, issues)
		assert.NoError(t, Check(newTestCube()))
	})

	t.Run("malformed component id", func(t *testing.T) {
		c := newTestCube()
		c.Dimensions[1].ID = ComponentID(testSite)

		issues := Validate(c)

		assert.True(t, HasErrors(issues))
		assert.Contains(t, messages(issues, SeverityError)[0], "separator exactly once")
	})

	t.Run("component of another cube", func(t *testing.T) {
		c := newTestCube()
		c.Measures[0].ID = NewComponentID("https://example.org/river", testLevel)

		issues := Validate(c)

		assert.Contains(t, messages(issues, SeverityError),
			NewComponentID("https://example.org/river", testLevel).String()+": id refers to cube https://example.org/river instead of https://example.org/lake")
	})

	t.Run("versioned cube iri mismatch", func(t *testing.T) {
		c := newTestCube()
		c.Dimensions[0].CubeIRI = "https://example.org/lake/2/"

		assert.True(t, HasErrors(Validate(c)))
	})

	t.Run("duplicate component", func(t *testing.T) {
		c := newTestCube()
		c.Dimensions = append(c.Dimensions, c.Dimensions[1])

		assert.Contains(t, messages(Validate(c), SeverityError), c.Dimensions[1].ID.String()+": duplicate component id")
	})

	t.Run("missing and unexpected keys", func(t *testing.T) {
		c := newTestCube()
		delete(c.Observations[1], testSite)
		c.Observations[2]["https://example.org/lake/depth"] = "3"

		errs := messages(Validate(c), SeverityError)

		assert.Equal(t, []string{
			"observation[1]: missing value for https://example.org/lake/site",
			"observation[2]: unexpected key https://example.org/lake/depth",
		}, errs)
	})

	t.Run("measure value is not a number", func(t *testing.T) {
		c := newTestCube()
		c.Observations[1][testLevel] = "n/a"

		errs := messages(Validate(c), SeverityError)

		require.Len(t, errs, 1)
		assert.Equal(t, `observation[1]: value "n/a" of https://example.org/lake/level is not a number`, errs[0])
	})

	t.Run("observed maximum above declared range", func(t *testing.T) {
		c := newTestCube()
		c.Observations[1][testLevel] = "7"

		errs := messages(Validate(c), SeverityError)

		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "observed maximum 7 is above the declared maximum 5")
	})

	t.Run("declared minimum never observed", func(t *testing.T) {
		c := newTestCube()
		c.Observations[0][testLevel] = "2"

		issues := Validate(c)

		assert.False(t, HasErrors(issues))
		assert.Contains(t, messages(issues, SeverityWarning)[0], "declared minimum 1 is never observed, lowest value is 2")
	})

	t.Run("temporal value with wrong format", func(t *testing.T) {
		c := newTestCube()
		c.Observations[0][testDate] = "01.01.2022"

		errs := messages(Validate(c), SeverityError)

		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], `value "01.01.2022" does not match time format %Y-%m-%d`)
	})

	t.Run("undeclared nominal value", func(t *testing.T) {
		c := newTestCube()
		c.Observations[3][testSite] = "east"

		issues := Validate(c)

		assert.False(t, HasErrors(issues))
		assert.Equal(t, []string{`observation[3]: value "east" of Site is not declared`}, messages(issues, SeverityWarning))
	})

	t.Run("temporal dimension without time unit", func(t *testing.T) {
		c := newTestCube()
		c.Dimensions[0].TimeUnit = ""

		assert.True(t, HasErrors(Validate(c)))
	})

	t.Run("empty cube", func(t *testing.T) {
		assert.Equal(t, []string{"cube  has no components"}, messages(Validate(&Cube{}), SeverityError))
	})
}

func TestCheck(t *testing.T) {
	c := newTestCube()
	delete(c.Observations[0], testSite)
	delete(c.Observations[1], testSite)

	err := Check(c)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Issues, 2)
	assert.Equal(t, "2 validation errors, first: observation[0]: missing value for https://example.org/lake/site", err.Error())
}

func TestNewValidationError(t *testing.T) {
	issues := []Issue{
		{Severity: SeverityWarning, Observation: NoObservation, Message: "a"},
		{Severity: SeverityError, Observation: 1, Message: "b"},
	}

	err := NewValidationError(issues)

	assert.True(t, HasErrors(issues))
	assert.Equal(t, []Issue{issues[1]}, err.Issues)
	assert.EqualError(t, err, "observation[1]: b")
}
