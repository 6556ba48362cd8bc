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

package util

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/samply/cubectl/cube"
)

// ErrorResponse represents an error returned from a SPARQL endpoint.
type ErrorResponse struct {
	StatusCode int
	OtherError string
}

// String returns the ErrorResponse in a default formatted way.
func (errRes *ErrorResponse) String() string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("StatusCode  : %d\n", errRes.StatusCode))
	if len(errRes.OtherError) > 0 {
		builder.WriteString(fmt.Sprintf("Error       : %s\n", IndentExceptFirstLine(14, errRes.OtherError)))
	}
	return builder.String()
}

func (errRes *ErrorResponse) Error() string {
	if len(errRes.OtherError) > 0 {
		return fmt.Sprintf("endpoint responded with status %d: %s", errRes.StatusCode, errRes.OtherError)
	}
	return fmt.Sprintf("endpoint responded with status %d", errRes.StatusCode)
}

var issueTemplate = template.Must(template.New("issues").Parse(`{{ define "issue" -}}
Severity    : {{ .Severity }}
{{ with .Component -}}
Component   : {{ . }}
{{ end -}}
{{ if ge .Observation 0 -}}
Observation : {{ .Observation }}
{{ end -}}
Message     : {{ .Message }}
{{ end -}}

{{ range $index, $issue := . -}}
{{ if $index }}---
{{ end -}}
{{ template "issue" $issue -}}
{{ end -}}
`))

// FmtIssues renders validation issues one block per issue.
func FmtIssues(issues []cube.Issue) string {
	builder := strings.Builder{}

	err := issueTemplate.Execute(&builder, issues)
	if err != nil {
		return err.Error()
	}

	return builder.String()
}

func Indent(spaces int, v string) string {
	pad := strings.Repeat(" ", spaces)
	return pad + IndentExceptFirstLine(spaces, v)
}

func IndentExceptFirstLine(spaces int, v string) string {
	pad := strings.Repeat(" ", spaces)
	return strings.ReplaceAll(v, "\n", "\n"+pad)
}
