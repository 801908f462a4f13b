package logging

import (
	"reflect"
	"runtime"
	"strings"
)

// Frame is one level of a captured call stack, reduced to the parts the
// resolver needs.
type Frame struct {
	// Function is the bare function or method name, e.g. "handle".
	Function string
	// Type is the receiver type name, e.g. "Server"; empty for plain functions.
	Type string
	// FullName is the qualified symbol name as reported by the runtime,
	// e.g. "net/http.(*conn).serve".
	FullName string
}

// DefaultSkipFunctions are runtime and test-harness entry frames that carry
// no caller information. Entries match either the bare or the fully
// qualified function name.
var DefaultSkipFunctions = []string{
	"runtime.main",
	"runtime.goexit",
	"runtime.doInit",
	"testing.tRunner",
}

// DefaultSkipTypes are receiver types injected by common hosting environments
// (HTTP server plumbing, router engines) rather than by application code.
var DefaultSkipTypes = []string{
	"conn",
	"serverHandler",
	"ServeMux",
	"Engine",
	"Context",
}

// loggingPkgPath is the import path of this package. Frames from it are the
// logger's own internals and never part of a caller's call path.
var loggingPkgPath = reflect.TypeOf(Resolver{}).PkgPath()

const maxStackDepth = 64

// Resolver turns the live call stack into a human-readable dot path. It is
// stateless apart from its denylists and safe for concurrent use.
type Resolver struct {
	skipFunctions map[string]struct{}
	skipTypes     map[string]struct{}
}

// NewResolver builds a resolver with the given denylists. The lists are
// complete; callers wanting the defaults must include them.
func NewResolver(skipFunctions, skipTypes []string) *Resolver {
	r := &Resolver{
		skipFunctions: make(map[string]struct{}, len(skipFunctions)),
		skipTypes:     make(map[string]struct{}, len(skipTypes)),
	}
	for _, name := range skipFunctions {
		r.skipFunctions[name] = struct{}{}
	}
	for _, name := range skipTypes {
		r.skipTypes[name] = struct{}{}
	}
	return r
}

// Resolve captures the call stack above the logging package and renders it as
// a path from the outermost relevant caller to the innermost one, joined with
// " -> ". A stack with no relevant frames renders as the empty string.
func (r *Resolver) Resolve() string {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return ""
	}
	iter := runtime.CallersFrames(pcs[:n])
	frames := make([]Frame, 0, n)
	for {
		fr, more := iter.Next()
		if fr.Function != "" {
			frames = append(frames, parseFrame(fr.Function))
		}
		if !more {
			break
		}
	}
	return r.render(frames)
}

// render filters and formats frames. Input order is innermost-first, as
// captured; output reads outermost-first.
func (r *Resolver) render(frames []Frame) string {
	parts := make([]string, 0, len(frames))
	for _, fr := range frames {
		if fr.Function == "" && fr.Type == "" {
			continue
		}
		if r.skip(fr) {
			continue
		}
		if fr.Type != "" {
			parts = append(parts, fr.Type+"."+fr.Function)
		} else {
			parts = append(parts, fr.Function)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " -> ")
}

func (r *Resolver) skip(fr Frame) bool {
	if strings.HasPrefix(fr.FullName, loggingPkgPath+".") {
		return true
	}
	if _, ok := r.skipFunctions[fr.Function]; ok {
		return true
	}
	if _, ok := r.skipFunctions[fr.FullName]; ok {
		return true
	}
	if fr.Type != "" {
		if _, ok := r.skipTypes[fr.Type]; ok {
			return true
		}
	}
	return false
}

// parseFrame splits a runtime symbol name such as
// "saibautils/logging.(*Resolver).Resolve" into its receiver type and
// function name. Symbols it cannot take apart degrade to a bare function
// name; parsing never fails.
func parseFrame(full string) Frame {
	fr := Frame{FullName: full}

	name := full
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	// Drop the package qualifier.
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}

	if strings.HasPrefix(name, "(*") {
		if j := strings.Index(name, ")."); j >= 0 {
			fr.Type = name[2:j]
			fr.Function = name[j+2:]
			return fr
		}
	}
	if j := strings.Index(name, "."); j >= 0 {
		fr.Type = name[:j]
		fr.Function = name[j+1:]
		return fr
	}
	fr.Function = name
	return fr
}
