package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aretw0/portfolio-mcp/pkg/registry"
	"github.com/aretw0/portfolio-mcp/pkg/schema"
)

// NewTool describes def to MCP clients. The input schema is derived from the
// same schema.Schema the registry enforces.
func NewTool(def registry.Definition) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(def.Description),
		mcp.WithTitleAnnotation(def.Title),
		mcp.WithReadOnlyHintAnnotation(def.Annotations.ReadOnly),
		mcp.WithDestructiveHintAnnotation(def.Annotations.Destructive),
		mcp.WithIdempotentHintAnnotation(def.Annotations.Idempotent),
		mcp.WithOpenWorldHintAnnotation(def.Annotations.OpenWorld),
	}
	for _, f := range def.Schema {
		opts = append(opts, property(f))
	}
	return mcp.NewTool(def.Name, opts...)
}

func property(f schema.Field) mcp.ToolOption {
	props := []mcp.PropertyOption{mcp.Description(f.Description)}
	if f.Required {
		props = append(props, mcp.Required())
	}

	switch f.Type.Name() {
	case "int", "number":
		if f.Minimum != nil {
			props = append(props, mcp.Min(*f.Minimum))
		}
		if f.Maximum != nil {
			props = append(props, mcp.Max(*f.Maximum))
		}
		switch v := f.Default.(type) {
		case int:
			props = append(props, mcp.DefaultNumber(float64(v)))
		case float64:
			props = append(props, mcp.DefaultNumber(v))
		}
		return mcp.WithNumber(f.Name, props...)
	default:
		if f.MinLen > 0 {
			props = append(props, mcp.MinLength(f.MinLen))
		}
		if f.MaxLen > 0 {
			props = append(props, mcp.MaxLength(f.MaxLen))
		}
		if len(f.Enum) > 0 {
			props = append(props, mcp.Enum(f.Enum...))
		}
		if v, ok := f.Default.(string); ok {
			props = append(props, mcp.DefaultString(v))
		}
		return mcp.WithString(f.Name, props...)
	}
}
