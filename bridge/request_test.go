package bridge

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestBridge_buildRequest_stripsBasePath(t *testing.T) {
	b := newBridge(t, &spyHandler{})
	e := restEventOf(helloRestRequest())

	req, err := b.buildRequest(e, "/Prod", zerolog.Nop())

	assert.NoError(t, err)
	assert.Equal(t, GET, req.Method)
	assert.Equal(t, "/hello", req.Path)
	assert.Equal(t, "/Prod", req.BasePath)
	assert.Equal(t, "text/plain", req.Header.Get("Accept"))
	assert.Equal(t, "10.0.0.1", req.RemoteAddr)
}

func TestBridge_buildRequest_missingPrefixKeepsRawPath(t *testing.T) {
	b := newBridge(t, &spyHandler{})
	e := restEventOf(helloRestRequest())

	req, err := b.buildRequest(e, "/other", zerolog.Nop())

	assert.NoError(t, err)
	assert.Equal(t, "/Prod/hello", req.Path)
}

func TestBridge_buildRequest_unsupportedMethod(t *testing.T) {
	b := newBridge(t, &spyHandler{})
	rest := helloRestRequest()
	rest.HTTPMethod = "BREW"

	_, err := b.buildRequest(restEventOf(rest), "", zerolog.Nop())

	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestBridge_buildRequest_queryMultiplicity(t *testing.T) {
	b := newBridge(t, &spyHandler{})
	e := httpEventOf(helloHTTPRequest())

	req, err := b.buildRequest(e, "/prod", zerolog.Nop())

	assert.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, req.Query["q"])
}

func TestBridge_buildRequest_decodesBody(t *testing.T) {
	b := newBridge(t, &spyHandler{})
	rest := helloRestRequest()
	rest.HTTPMethod = "POST"
	rest.Body = "aGV5IGR1ZGUh"
	rest.IsBase64Encoded = true

	req, err := b.buildRequest(restEventOf(rest), "", zerolog.Nop())

	assert.NoError(t, err)
	assert.Equal(t, []byte("hey dude!"), req.Body)
}

func TestRelativePath(t *testing.T) {
	assert.Equal(t, "/hello", relativePath("/Prod/hello", "/Prod"))
	assert.Equal(t, "/", relativePath("/Prod", "/Prod"))
	assert.Equal(t, "/Prod/hello", relativePath("/Prod/hello", ""))
	assert.Equal(t, "/Produce", relativePath("/Produce", "/Prod"))
	assert.Equal(t, "/hello", relativePath("hello", ""))
	assert.Equal(t, "/", relativePath("", ""))
}

func TestBridge_buildRequest_albNoRemoteAddr(t *testing.T) {
	b := newBridge(t, &spyHandler{})

	req, err := b.buildRequest(albEventOf(helloALBRequest()), "", zerolog.Nop())

	assert.NoError(t, err)
	assert.Equal(t, "", req.RemoteAddr)
	assert.Equal(t, []string{"a", "b"}, req.Header.Values("X-Tag"))
}
