package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultResolver(extraTypes ...string) *Resolver {
	return NewResolver(DefaultSkipFunctions, append(append([]string{}, DefaultSkipTypes...), extraTypes...))
}

func TestParseFrame(t *testing.T) {
	cases := []struct {
		full     string
		wantType string
		wantFn   string
	}{
		{"main.main", "", "main"},
		{"runtime.goexit", "", "goexit"},
		{"saibautils/logging.(*Logger).Info", "Logger", "Info"},
		{"example.com/app/internal/web.(*Handler).ServeHTTP", "Handler", "ServeHTTP"},
		{"net/http.serverHandler.ServeHTTP", "serverHandler", "ServeHTTP"},
		{"example.com/app.(*Worker).run.func1", "Worker", "run.func1"},
	}

	for _, tc := range cases {
		t.Run(tc.full, func(t *testing.T) {
			fr := parseFrame(tc.full)
			assert.Equal(t, tc.wantType, fr.Type)
			assert.Equal(t, tc.wantFn, fr.Function)
			assert.Equal(t, tc.full, fr.FullName)
		})
	}
}

func TestRenderEntryFramesOnly(t *testing.T) {
	r := defaultResolver()

	frames := []Frame{
		parseFrame("runtime.main"),
		parseFrame("runtime.goexit"),
	}
	assert.Equal(t, "", r.render(frames))
}

func TestRenderSkipsLoggerFramesAndReverses(t *testing.T) {
	r := defaultResolver()

	// Innermost-first, as captured: the logger's own frame, then the callers.
	frames := []Frame{
		parseFrame(loggingPkgPath + ".(*Logger).Info"),
		parseFrame("example.com/app.(*Foo).bar"),
		parseFrame("example.com/app.outer"),
		parseFrame("runtime.main"),
	}
	assert.Equal(t, "outer -> Foo.bar", r.render(frames))
}

func TestRenderSkipsDenylistedTypes(t *testing.T) {
	r := defaultResolver("Dispatcher")

	frames := []Frame{
		parseFrame("example.com/app.(*Foo).bar"),
		parseFrame("example.com/pool.(*Dispatcher).dispatch"),
		parseFrame("example.com/app.outer"),
	}
	assert.Equal(t, "outer -> Foo.bar", r.render(frames))

	// Position does not matter.
	frames = []Frame{
		parseFrame("example.com/pool.(*Dispatcher).dispatch"),
		parseFrame("example.com/app.outer"),
	}
	assert.Equal(t, "outer", r.render(frames))
}

func TestRenderSkipsHostingEnvironmentDefaults(t *testing.T) {
	r := defaultResolver()

	frames := []Frame{
		parseFrame("example.com/app.(*orderHandler).ServeHTTP"),
		parseFrame("net/http.serverHandler.ServeHTTP"),
		parseFrame("net/http.(*conn).serve"),
		parseFrame("runtime.goexit"),
	}
	assert.Equal(t, "orderHandler.ServeHTTP", r.render(frames))
}

func TestRenderSkipsConfiguredFunctionNames(t *testing.T) {
	r := NewResolver(append(append([]string{}, DefaultSkipFunctions...), "translateProxyHeaders"), DefaultSkipTypes)

	frames := []Frame{
		parseFrame("example.com/app.handle"),
		parseFrame("example.com/app.translateProxyHeaders"),
		parseFrame("example.com/app.outer"),
	}
	assert.Equal(t, "outer -> handle", r.render(frames))
}

func TestResolveNeverFailsOnOddFrames(t *testing.T) {
	r := defaultResolver()

	frames := []Frame{
		{FullName: "", Function: ""},
		parseFrame("example.com/app.outer"),
	}
	// A frame without introspection data is dropped instead of failing.
	assert.Equal(t, "outer", r.render(frames))
}
