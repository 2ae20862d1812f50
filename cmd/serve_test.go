package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasu1712/scenecast/internal/config"
	"github.com/Vasu1712/scenecast/internal/logger"
)

func TestResolvePort(t *testing.T) {
	tests := []struct {
		name         string
		flag, env    string
		want         int
		wantExplicit bool
	}{
		{name: "flag wins", flag: "4000", env: "5000", want: 4000, wantExplicit: true},
		{name: "env", env: "5000", want: 5000, wantExplicit: true},
		{name: "invalid flag falls through to env", flag: "abc", env: "5000", want: 5000, wantExplicit: true},
		{name: "default", want: config.DefaultPort},
		{name: "all invalid", flag: "0", env: "70000", want: config.DefaultPort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port, explicit := resolvePort(tt.flag, tt.env, logger.Nop())
			assert.Equal(t, tt.want, port)
			assert.Equal(t, tt.wantExplicit, explicit)
		})
	}
}

func occupy(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	return ln.Addr().(*net.TCPAddr).Port
}

func TestListenRetriesNextPort(t *testing.T) {
	busy := occupy(t)

	ln, err := listen(context.Background(), busy, false, 5, logger.Nop())
	if err != nil {
		t.Skipf("no free port after %d: %v", busy, err)
	}
	defer ln.Close()
	got := ln.Addr().(*net.TCPAddr).Port
	assert.Greater(t, got, busy)
	assert.LessOrEqual(t, got, busy+5)
}

func TestListenExplicitPortDoesNotRetry(t *testing.T) {
	busy := occupy(t)

	_, err := listen(context.Background(), busy, true, 5, logger.Nop())
	assert.ErrorContains(t, err, fmt.Sprintf(":%d", busy))
}

func TestListenNoRetries(t *testing.T) {
	busy := occupy(t)

	_, err := listen(context.Background(), busy, false, 0, logger.Nop())
	assert.Error(t, err)
}

func TestCheckOrigin(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	assert.True(t, checkOrigin("*")(req("http://anywhere")))
	assert.True(t, checkOrigin("http://gm.local")(req("http://gm.local")))
	assert.True(t, checkOrigin("http://gm.local")(req("")))
	assert.False(t, checkOrigin("http://gm.local")(req("http://evil.example")))
}

func TestRootCommandFlags(t *testing.T) {
	root := newRootCmd()

	flag := root.PersistentFlags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)

	serveCmd, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serveCmd.Name())
}
