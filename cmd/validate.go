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
	"io"

	"github.com/samply/cubectl/cube"
	"github.com/samply/cubectl/util"
	"github.com/spf13/cobra"
)

var strict bool

var errWarnings = errors.New("validation found warnings")

// writeValidation prints all issues of c followed by a summary line. The
// returned error is non-nil if c has errors or, in strict mode, warnings.
func writeValidation(w io.Writer, c *cube.Cube, strict bool) error {
	issues := cube.Validate(c)

	validationErr := cube.NewValidationError(issues)
	warnCount := len(issues) - len(validationErr.Issues)

	if len(issues) > 0 {
		fmt.Fprintln(w, util.FmtIssues(issues))
	}
	fmt.Fprintf(w, "%d errors, %d warnings in %d observations\n", len(validationErr.Issues), warnCount, len(c.Observations))

	if cube.HasErrors(issues) {
		return validationErr
	}
	if strict && warnCount > 0 {
		return errWarnings
	}
	return nil
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the cube",
	Long: `Checks that all component ids are well formed, that every observation
carries exactly the component keys of the cube, that dimension values match
their declaration and that measured values stay inside the declared range.

Exits with a non-zero status if errors are found. With --strict warnings
count as well.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCube()
		if err != nil {
			return err
		}
		return writeValidation(cmd.OutOrStdout(), c, strict)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
}
