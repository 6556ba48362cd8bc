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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samply/cubectl/cube"
	"github.com/samply/cubectl/util"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var exportFormats = []string{"json", "ndjson"}

var outputFile string
var exportFormat string

// ExportedObservation is one line of a NDJSON export.
type ExportedObservation struct {
	ID     string           `json:"id"`
	Values cube.Observation `json:"values"`
}

// ObservationID returns a name based UUID of o. The namespace is derived
// from the cube IRI and the name from the values in key order, so the same
// observation gets the same id in every export.
func ObservationID(c *cube.Cube, o cube.Observation) uuid.UUID {
	namespace := uuid.NewSHA1(uuid.NameSpaceURL, []byte(c.IRI))
	keys := c.ObservationKeys()
	values := make([]string, len(keys))
	for i, key := range keys {
		values[i] = o[key]
	}
	return uuid.NewSHA1(namespace, []byte(strings.Join(values, "\x1f")))
}

type countingWriter struct {
	w     io.Writer
	bytes int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.bytes += int64(n)
	return n, err
}

// exportCube writes c in format to w. If progress is not nil, a bar counts
// the written observations.
func exportCube(w io.Writer, c *cube.Cube, format string, progress *mpb.Progress) (util.CommandStats, error) {
	stats := util.CommandStats{}
	if len(c.Measures) > 0 {
		stats.Unit = c.Measures[0].Unit
	}
	start := time.Now()
	cw := &countingWriter{w: w}

	var bar *mpb.Bar
	if progress != nil && len(c.Observations) > 0 {
		bar = progress.AddBar(int64(len(c.Observations)),
			mpb.BarRemoveOnComplete(),
			mpb.PrependDecorators(
				decor.Name("export", decor.WC{W: 7}),
				decor.CountersNoUnit("%d / %d", decor.WC{W: 12}),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	err := writeExport(cw, c, format, bar)
	if err != nil && bar != nil {
		bar.Abort(false)
	}

	stats.TotalObservations = len(c.Observations)
	stats.TotalBytes = cw.bytes
	stats.TotalDuration = time.Since(start)
	if len(c.Measures) > 0 {
		iri := c.Measures[0].ID.ComponentIRI()
		for _, o := range c.Observations {
			if v, err := o.Float(iri); err == nil {
				stats.Values = append(stats.Values, v)
			}
		}
	}
	return stats, err
}

func writeExport(w io.Writer, c *cube.Cube, format string, bar *mpb.Bar) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(c); err != nil {
			return fmt.Errorf("error while encoding the cube: %w", err)
		}
		if bar != nil {
			bar.IncrBy(len(c.Observations))
		}
	case "ndjson":
		encoder := json.NewEncoder(w)
		for i, o := range c.Observations {
			line := ExportedObservation{ID: "urn:uuid:" + ObservationID(c, o).String(), Values: o}
			if err := encoder.Encode(line); err != nil {
				return fmt.Errorf("error while encoding observation[%d]: %w", i, err)
			}
			if bar != nil {
				bar.Increment()
			}
		}
	default:
		return fmt.Errorf("invalid format `%s`. Must be one of: %s", format, strings.Join(exportFormats, ", "))
	}
	return nil
}

// exportToFile exports c into the new file filename. The file is removed
// again if the export fails.
func exportToFile(filename string, c *cube.Cube, format string, progress *mpb.Progress) (util.CommandStats, error) {
	file, err := util.CreateOutputFile(filename)
	if err != nil {
		if progress != nil {
			progress.Wait()
		}
		return util.CommandStats{}, err
	}

	stats, err := exportCube(file, c, format, progress)
	if progress != nil {
		progress.Wait()
	}
	if err == nil {
		if err = file.Sync(); err != nil {
			err = fmt.Errorf("could not write the output file %s: %w", filename, err)
		}
	}
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("could not close the output file %s: %w", filename, closeErr)
	}
	if err != nil {
		_ = os.Remove(filename)
		return stats, err
	}
	return stats, nil
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports the cube into a file",
	Long: `Exports the cube into a new file. The json format writes the whole cube
in the shape used by the visualization tool and can be read back with --cube.
The ndjson format writes one observation per line together with a stable
urn:uuid identifier.

The cube is validated first. An existing output file is never overwritten.

Example:

  cubectl export -o bathing-water.ndjson --format ndjson`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(exportFormats, exportFormat) {
			return fmt.Errorf("invalid format `%s`. Must be one of: %s", exportFormat, strings.Join(exportFormats, ", "))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCube()
		if err != nil {
			return err
		}
		if err := cube.Check(c); err != nil {
			return fmt.Errorf("refusing to export an invalid cube: %w", err)
		}

		var progress *mpb.Progress
		if !noProgress {
			progress = mpb.New(mpb.WithOutput(os.Stderr))
		}

		stats, err := exportToFile(outputFile, c, exportFormat, progress)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), stats.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "path of the output file, must not exist yet")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format, one of: "+strings.Join(exportFormats, ", "))

	_ = exportCmd.MarkFlagRequired("output-file")
	_ = exportCmd.MarkFlagFilename("output-file", "json", "ndjson")
	_ = exportCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return exportFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
