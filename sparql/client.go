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
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Auth adds authentication information to requests sent by a Client.
type Auth interface {
	Apply(req *http.Request)
}

// BasicAuth authenticates with user and password.
type BasicAuth struct {
	User     string
	Password string
}

func (a BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(a.User, a.Password)
}

// TokenAuth authenticates with a bearer token.
type TokenAuth struct {
	Token string
}

func (a TokenAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// A Client combines an HTTP client with the URL of a SPARQL endpoint.
type Client struct {
	httpClient http.Client
	endpoint   url.URL
	auth       Auth
}

// NewClient creates a new Client for endpoint. auth may be nil.
func NewClient(endpoint url.URL, auth Auth) *Client {
	return createClient(endpoint, auth, &tls.Config{})
}

// NewClientInsecure creates a new Client as NewClient does but disables TLS
// certificate verification.
func NewClientInsecure(endpoint url.URL, auth Auth) *Client {
	return createClient(endpoint, auth, &tls.Config{InsecureSkipVerify: true})
}

// NewClientCa creates a new Client that trusts the certificate authority in
// the PEM file caCert in addition to the system pool.
func NewClientCa(endpoint url.URL, auth Auth, caCert string) (*Client, error) {
	pem, err := os.ReadFile(caCert)
	if err != nil {
		return nil, fmt.Errorf("error while reading the CA certificate: %w", err)
	}
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificate found in %s", caCert)
	}
	return createClient(endpoint, auth, &tls.Config{RootCAs: pool}), nil
}

func createClient(endpoint url.URL, auth Auth, tlsConfig *tls.Config) *Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 10
	t.TLSClientConfig = tlsConfig

	return &Client{
		httpClient: http.Client{Transport: t},
		endpoint:   endpoint,
		auth:       auth,
	}
}

const (
	sparqlQuery   = "application/sparql-query"
	sparqlResults = "application/sparql-results+json"
)

// Endpoint returns a copy of the URL queries are sent to.
func (c *Client) Endpoint() *url.URL {
	endpoint := c.endpoint
	return &endpoint
}

// NewQueryRequest creates a POST request with query as body. Otherwise it's
// identical to http.NewRequest.
func (c *Client) NewQueryRequest(query string) (*http.Request, error) {
	req, err := http.NewRequest("POST", c.endpoint.String(), strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("error while creating a query request: %w", err)
	}
	req.Header.Add("Accept", sparqlResults)
	req.Header.Add("Content-Type", sparqlQuery)
	return req, nil
}

// NewGetQueryRequest creates a GET request with query as URL parameter.
func (c *Client) NewGetQueryRequest(query string) (*http.Request, error) {
	_url := c.endpoint
	q := _url.Query()
	q.Set("query", query)
	_url.RawQuery = q.Encode()
	req, err := http.NewRequest("GET", _url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error while creating a query request: %w", err)
	}
	req.Header.Add("Accept", sparqlResults)
	return req, nil
}

// Do calls Do on the HTTP client after adding authentication.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.auth != nil {
		c.auth.Apply(req)
	}
	return c.httpClient.Do(req)
}

// CloseIdleConnections calls CloseIdleConnections on the HTTP client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
