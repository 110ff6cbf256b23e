package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Tool names exposed over MCP.
const (
	ToolRomanizeText  = "romanize_text"
	ToolRomanizeBatch = "romanize_batch"
)

var (
	romanizeTextTool = mcp.NewTool(ToolRomanizeText,
		mcp.WithDescription("Convert text in any script to Latin alphabet"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to romanize"),
		),
		mcp.WithString("lang_code",
			mcp.Description("Optional ISO language code (e.g., 'rus', 'ara', 'hin')"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	romanizeBatchTool = mcp.NewTool(ToolRomanizeBatch,
		mcp.WithDescription("Romanize multiple texts at once"),
		mcp.WithArray("texts",
			mcp.Required(),
			mcp.Description("Array of texts to romanize"),
			mcp.WithStringItems(),
		),
		mcp.WithString("lang_code",
			mcp.Description("Optional ISO language code"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
)

// Tools returns the tool descriptors in listing order: single, then batch.
func Tools() []mcp.Tool {
	return []mcp.Tool{romanizeTextTool, romanizeBatchTool}
}

// compileSchemas builds an argument validator for every tool.
func compileSchemas(tools []mcp.Tool) (map[string]*jsonschema.Schema, error) {
	schemas := make(map[string]*jsonschema.Schema, len(tools))
	for _, tool := range tools {
		raw, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("marshal %s schema: %w", tool.Name, err)
		}

		url := tool.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("%s schema resource: %w", tool.Name, err)
		}
		s, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", tool.Name, err)
		}
		schemas[tool.Name] = s
	}
	return schemas, nil
}

// validationMessage returns the most specific cause of a schema violation.
func validationMessage(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}
