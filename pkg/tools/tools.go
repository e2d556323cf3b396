// Package tools republishes the client's operations as named tool calls
// for an AI-agent host. Every call returns a uniform Result; typed client
// errors drive the external error shape through a single mapping, so the
// adapter never needs catch-all error handling.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mudrex/mudrex-go/pkg/models"
	"github.com/mudrex/mudrex-go/pkg/mudrex"
)

// Args are the raw arguments of a tool call.
type Args map[string]any

// String returns the named argument as a string, "" when absent.
func (a Args) String(key string) string { return models.AsString(a[key]) }

// StringDefault returns the named argument or def when absent/empty.
func (a Args) StringDefault(key, def string) string {
	if s := a.String(key); s != "" {
		return s
	}
	return def
}

// Error is the external error shape handed to the agent host.
type Error struct {
	Kind        string   `json:"kind"`
	Code        string   `json:"code,omitempty"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Result is the uniform envelope every tool call returns.
type Result struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Handler executes one tool call.
type Handler func(ctx context.Context, args Args) (any, error)

// Tool is a registered, callable operation.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Handler     Handler `json:"-"`
}

// Registry holds the tool set for one client.
type Registry struct {
	tools map[string]Tool
}

// mapError is the single translation point from client errors to the
// adapter's error shape.
func mapError(err error) *Error {
	var apiErr *mudrex.APIError
	if errors.As(err, &apiErr) {
		return &Error{
			Kind:        string(apiErr.Kind),
			Code:        apiErr.Code,
			Message:     apiErr.Message,
			Suggestions: apiErr.Suggestions,
		}
	}
	return &Error{Kind: string(mudrex.KindAPI), Message: err.Error()}
}

// Call executes a named tool. Unknown names and handler failures are both
// reported through the Result, never as panics or bare errors.
func (r *Registry) Call(ctx context.Context, name string, args Args) Result {
	tool, ok := r.tools[name]
	if !ok {
		return Result{Error: &Error{
			Kind:    string(mudrex.KindNotFound),
			Message: fmt.Sprintf("unknown tool %q", name),
		}}
	}
	data, err := tool.Handler(ctx, args)
	if err != nil {
		return Result{Error: mapError(err)}
	}
	return Result{OK: true, Data: data}
}

// List returns the registered tools sorted by name.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) register(name, description string, h Handler) {
	r.tools[name] = Tool{Name: name, Description: description, Handler: h}
}

// NewRegistry builds the full trading tool set over the given client.
func NewRegistry(client *mudrex.Client) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	registerWalletTools(r, client)
	registerAssetTools(r, client)
	registerLeverageTools(r, client)
	registerOrderTools(r, client)
	registerPositionTools(r, client)
	return r
}
