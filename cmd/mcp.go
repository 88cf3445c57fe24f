package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/tsingjyujing/langdetect/controller"
	"github.com/tsingjyujing/langdetect/detector"
)

type DetectInput struct {
	Text  string             `json:"text" jsonschema:"the text whose language should be detected"`
	Prior map[string]float64 `json:"prior,omitempty" jsonschema:"optional prior probability per language"`
}

type DetectOutput struct {
	Language      string              `json:"language" jsonschema:"the most probable language, or unknown"`
	Probabilities []detector.Language `json:"probabilities" jsonschema:"every probable language with its probability"`
}

type LangDetectMCP struct {
	client   *http.Client
	endpoint url.URL
	token    string
}

func (v LangDetectMCP) GetUrl(relativePath string) (*url.URL, error) {
	u, err := url.Parse(relativePath)
	if err != nil {
		return nil, err
	}
	return v.endpoint.ResolveReference(u), nil
}

func (v LangDetectMCP) do(ctx context.Context, method, path string, body any, out any) error {
	u, err := v.GetUrl(path)
	if err != nil {
		return err
	}
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	request, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if v.token != "" {
		request.Header.Set("Authorization", "Bearer "+v.token)
	}
	resp, err := v.client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var failure map[string]string
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, failure["status"])
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (v LangDetectMCP) DetectLanguage(ctx context.Context, req *mcp.CallToolRequest, input DetectInput) (*mcp.CallToolResult, DetectOutput, error) {
	var result controller.DetectResult
	err := v.do(ctx, http.MethodPost, "/api/v1/detect", controller.DetectParams{Text: input.Text, Prior: input.Prior}, &result)
	if err != nil {
		return nil, DetectOutput{}, err
	}
	return nil, DetectOutput{Language: result.Language, Probabilities: result.Probabilities}, nil
}

type ListLanguagesInput struct {
	// No input parameters
}

type ListLanguagesOutput struct {
	Languages []string `json:"languages" jsonschema:"the languages the server can detect"`
}

func (v LangDetectMCP) ListLanguages(ctx context.Context, req *mcp.CallToolRequest, input ListLanguagesInput) (*mcp.CallToolResult, ListLanguagesOutput, error) {
	var result []string
	if err := v.do(ctx, http.MethodGet, "/api/v1/languages", nil, &result); err != nil {
		return nil, ListLanguagesOutput{}, err
	}
	return nil, ListLanguagesOutput{Languages: result}, nil
}

// NewMCPServer registers the detection tools on a new MCP server.
func NewMCPServer(v LangDetectMCP) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "langdetect-mcp", Title: "MCP server for detecting the language of a text", Version: "v1.0.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{Name: "detect_language", Description: "Detect the natural language of a text, returns ISO language names with probabilities"}, v.DetectLanguage)
	mcp.AddTool(server, &mcp.Tool{Name: "list_languages", Description: "List the languages the detector has profiles for"}, v.ListLanguages)
	return server
}

func NewMcpCommand() *cobra.Command {
	var (
		endpoint string
		token    string
	)
	mcpCommand := &cobra.Command{
		Use:   "mcp",
		Short: "Starting MCP server",
		Run: func(cmd *cobra.Command, args []string) {
			parsedURL, err := url.Parse(endpoint)
			if err != nil {
				logger.Fatalf("Invalid langdetect endpoint URL: %v", err)
			}
			v := LangDetectMCP{
				client:   http.DefaultClient,
				endpoint: *parsedURL,
				token:    token,
			}
			if err := NewMCPServer(v).Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				logger.Fatal(err)
			}
		},
	}
	mcpCommand.Flags().StringVarP(&endpoint, "endpoint", "e", "http://localhost:8080", "langdetect server endpoint URL")
	mcpCommand.Flags().StringVar(&token, "token", "", "bearer token of the langdetect server")
	return mcpCommand
}
