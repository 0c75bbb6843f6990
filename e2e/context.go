package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext talks to a running datalayer server and keeps the last
// response for assertions.
type TestContext struct {
	BaseURL      string
	ServiceToken string

	client  *http.Client
	headers map[string]string

	status int
	header http.Header
	body   []byte
}

func NewTestContext(baseURL, token string) *TestContext {
	return &TestContext{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		ServiceToken: token,
		client:       &http.Client{Timeout: 10 * time.Second},
		headers:      map[string]string{},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.headers = map[string]string{}
	tc.status = 0
	tc.header = nil
	tc.body = nil
}

func (tc *TestContext) SetHeader(name, value string) {
	tc.headers[name] = value
}

func (tc *TestContext) POST(path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	return tc.do(http.MethodPost, path, data)
}

func (tc *TestContext) POSTRaw(path, body string) error {
	return tc.do(http.MethodPost, path, []byte(body))
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) do(method, path string, body []byte) error {
	req, err := http.NewRequest(method, tc.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.ServiceToken != "" {
		req.Header.Set("X-Service-Token", tc.ServiceToken)
	}
	for k, v := range tc.headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.header = resp.Header
	tc.body, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) Status() int {
	return tc.status
}

func (tc *TestContext) Header(name string) string {
	return tc.header.Get(name)
}

func (tc *TestContext) Body() string {
	return string(tc.body)
}

// GetResponseField resolves a dotted path such as customDL.user.customDL_ip
// in the last JSON response.
func (tc *TestContext) GetResponseField(path string) (any, error) {
	var cur any
	if err := json.Unmarshal(tc.body, &cur); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: %q is not an object", path, part)
		}
		v, ok := obj[part]
		if !ok {
			return nil, fmt.Errorf("%s: key %q not found", path, part)
		}
		cur = v
	}
	return cur, nil
}
