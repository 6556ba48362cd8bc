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
	"net/url"
	"os"

	"github.com/samply/cubectl/cube"
	"github.com/samply/cubectl/fixture"
	"github.com/samply/cubectl/sparql"
	"github.com/spf13/cobra"
)

var cubeFile string
var endpoint string
var disableTlsSecurity bool
var caCert string
var basicAuthUser string
var basicAuthPassword string
var bearerToken string
var noProgress bool

var client *sparql.Client

func createClient() error {
	endpointUrl, err := url.ParseRequestURI(endpoint)
	if err != nil {
		return fmt.Errorf("could not parse the endpoint URL: %v", err)
	}

	if disableTlsSecurity {
		client = sparql.NewClientInsecure(*endpointUrl, clientAuth())
	} else if caCert != "" {
		client, err = sparql.NewClientCa(*endpointUrl, clientAuth(), caCert)
		if err != nil {
			return err
		}
	} else {
		client = sparql.NewClient(*endpointUrl, clientAuth())
	}
	return nil
}

func clientAuth() sparql.Auth {
	if basicAuthUser != "" && basicAuthPassword != "" {
		return sparql.BasicAuth{User: basicAuthUser, Password: basicAuthPassword}
	} else if bearerToken != "" {
		return sparql.TokenAuth{Token: bearerToken}
	} else {
		return nil
	}
}

// loadCube returns the built-in bathing water cube unless --cube names a
// JSON file written by the export command.
func loadCube() (*cube.Cube, error) {
	if cubeFile == "" {
		return fixture.Cube(), nil
	}
	return readCubeFile(cubeFile)
}

func readCubeFile(filename string) (*cube.Cube, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error while reading cube file: %w", err)
	}
	var c cube.Cube
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("error while parsing cube file %s: %w", filename, err)
	}
	return &c, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cubectl",
	Short: "Preview and check data cube fixtures from the Command Line",
	Long: `cubectl is a command line tool to inspect the data cube fixture used to
preview tables and charts.

The built-in fixture holds bathing water quality samples from Swiss lakes and
rivers. You can list its dimensions, print and filter observations, validate
the fixture, compute statistics, export it and render an HTML preview.`,
	Version:      "0.1.0",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cubeFile, "cube", "", "path to a cube JSON file to use instead of the built-in fixture")
	rootCmd.PersistentFlags().BoolVarP(&disableTlsSecurity, "insecure", "k", false, "allow insecure server connections when using SSL")
	rootCmd.PersistentFlags().StringVar(&caCert, "certificate-authority", "", "path to a cert file for the certificate authority")
	rootCmd.PersistentFlags().StringVar(&basicAuthUser, "user", "", "user information for basic authentication")
	rootCmd.PersistentFlags().StringVar(&basicAuthPassword, "password", "", "password information for basic authentication")
	rootCmd.PersistentFlags().StringVar(&bearerToken, "token", "", "bearer token for authentication")
	rootCmd.PersistentFlags().BoolVarP(&noProgress, "no-progress", "", false, "don't show progress bar")

	_ = rootCmd.MarkPersistentFlagFilename("cube", "json")
}
