package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dabbsLondon/rdata/api"
)

const (
	// DefaultPort rdata service port to connect with.
	DefaultPort      = 9867
	DefaultUserAgent = "rdata-client-golang"
)

type Connection struct {
	client        *http.Client
	defaultHeader http.Header
	hostURL       string
}

// NewConnection creates a new connection with the given useragent string
// and a base URL set up to talk to http://localhost:defaultport
func NewConnection() *Connection {
	u := "http://localhost:" + strconv.Itoa(DefaultPort)
	return NewConnectionTo(u)
}

// NewConnectionTo creates a new connection with the given useragent string
// and a base URL derived from the hostURL argument.
func NewConnectionTo(hostURL string) *Connection {
	h := http.Header{"Accept": []string{api.MediaTypeJSON}}
	return &Connection{
		client:        &http.Client{},
		defaultHeader: h,
		hostURL:       hostURL,
	}
}

// ClientHostURL allows us to print the host in log messages and internal error messages
func (c *Connection) ClientHostURL() string {
	return c.hostURL
}

func (c *Connection) SetUserAgent(useragent string) {
	c.defaultHeader.Set("User-Agent", useragent)
}

type Response struct {
	*http.Response
	Duration time.Duration
}

func (c *Connection) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		err = parseError(res)
	}
	return &Response{
		Response: res,
		Duration: time.Since(start),
	}, err
}

func (c *Connection) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.hostURL+path, r)
	if err != nil {
		return nil, err
	}
	for key, val := range c.defaultHeader {
		req.Header[key] = val
	}
	if body != nil {
		req.Header.Set("Content-Type", api.MediaTypeJSON)
	}
	return req, nil
}

func (c *Connection) doAndUnmarshal(ctx context.Context, method, path string, body, i interface{}) error {
	res, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return json.NewDecoder(res.Body).Decode(i)
}

// parseError parses an error from an http.Response with an error status code. For now the response type of errors is assumed to be JSON.
func parseError(r *http.Response) error {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	resErr := &ErrorResponse{Response: r}
	if r.Header.Get("Content-Type") == api.MediaTypeJSON {
		var apierr api.Error
		if err := json.Unmarshal(body, &apierr); err != nil {
			return err
		}
		resErr.Err = &apierr
	} else {
		resErr.Err = errors.New(string(body))
	}
	return resErr
}

// Ping checks to see if the server is up and measures the time it
// takes to get back the response.
func (c *Connection) Ping(ctx context.Context) (time.Duration, error) {
	res, err := c.Do(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		return 0, err
	}
	res.Body.Close()
	return res.Duration, nil
}

// Version retrieves the version string from the service.
func (c *Connection) Version(ctx context.Context) (string, error) {
	var res api.VersionResponse
	if err := c.doAndUnmarshal(ctx, http.MethodGet, "/version", nil, &res); err != nil {
		return "", err
	}
	return res.Version, nil
}

// Query submits src to the service and returns the response envelope.
func (c *Connection) Query(ctx context.Context, src string) (*api.QueryResponse, error) {
	var res api.QueryResponse
	err := c.doAndUnmarshal(ctx, http.MethodPost, "/query", api.QueryRequest{Query: src}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type ErrorResponse struct {
	*http.Response
	Err error
}

func (e *ErrorResponse) Unwrap() error {
	return e.Err
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("status code %d: %v", e.StatusCode, e.Err)
}
