// Package lambdaengine romanizes text by invoking a uroman Lambda function.
package lambdaengine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// Invoker is the subset of the Lambda client used by the engine.
type Invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// RomanizeRequest is the payload sent to the uroman Lambda.
type RomanizeRequest struct {
	Text     string `json:"text"`
	LangCode string `json:"lang_code,omitempty"`
}

// RomanizeResponse is the payload returned by the uroman Lambda.
type RomanizeResponse struct {
	Romanized string `json:"romanized"`
	Error     string `json:"error,omitempty"`
}

// Engine calls a remote romanizer function synchronously.
type Engine struct {
	client       Invoker
	functionName string
	version      string
}

// New loads the default AWS configuration and returns an Engine bound to functionName.
func New(ctx context.Context, functionName, version string) (*Engine, error) {
	if functionName == "" {
		return nil, fmt.Errorf("engine function name is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewWithClient(lambda.NewFromConfig(cfg), functionName, version), nil
}

// NewWithClient returns an Engine using an existing client.
func NewWithClient(client Invoker, functionName, version string) *Engine {
	return &Engine{
		client:       client,
		functionName: functionName,
		version:      version,
	}
}

// Romanize invokes the remote function for a single text.
func (e *Engine) Romanize(ctx context.Context, text, langCode string) (string, error) {
	payload, err := json.Marshal(RomanizeRequest{Text: text, LangCode: langCode})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := e.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(e.functionName),
		Payload:      payload,
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke %s: %w", e.functionName, err)
	}

	// Check for Lambda errors
	if result.FunctionError != nil {
		return "", fmt.Errorf("lambda error: %s", *result.FunctionError)
	}

	var resp RomanizeResponse
	if err := json.Unmarshal(result.Payload, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Error != "" {
		return "", fmt.Errorf("romanizer error: %s", resp.Error)
	}

	return resp.Romanized, nil
}

// Version returns the configured engine version.
func (e *Engine) Version() string {
	return e.version
}
