package local

import "context"

func init() {
	Register("hello-world", ToolFunc(helloWorld))
}

// helloWorld is the sample tool shipped with every installation.
func helloWorld(ctx context.Context, payload map[string]any) (any, error) {
	return map[string]any{"message": "Hello from BMAD Tools!"}, nil
}
