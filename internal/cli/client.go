package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LeJamon/tokendex/internal/rpc"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// rpcURL is shared by the client commands
var rpcURL string

// rpcClient posts JSON-RPC requests to a running node
type rpcClient struct {
	url  string
	http *http.Client
}

func newRPCClient(url string, timeout time.Duration) *rpcClient {
	return &rpcClient{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// clientFromFlags builds a client for --rpc, or for the configured server address
func clientFromFlags() (*rpcClient, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	url := rpcURL
	if url == "" {
		url = "http://" + cfg.Server.Address() + "/"
	}
	return newRPCClient(url, cfg.Server.Timeout), nil
}

// call invokes method and returns the result object. An error status in the
// result is returned as an error.
func (c *rpcClient) call(method string, params interface{}) (map[string]interface{}, error) {
	request := rpc.Request{Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		request.Params = []jsoniter.RawMessage{raw}
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rpc %s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rpc %s: read response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpc %s: http %d: %s", method, resp.StatusCode, bytes.TrimSpace(data))
	}

	var response struct {
		Result map[string]interface{} `json:"result"`
	}
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("rpc %s: decode response: %w", method, err)
	}
	if response.Result["status"] == "error" {
		return nil, fmt.Errorf("rpc %s: %v: %v", method, response.Result["error"], response.Result["error_message"])
	}
	return response.Result, nil
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
