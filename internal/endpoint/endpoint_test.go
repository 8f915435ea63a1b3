package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"", "http://localhost:8000"},
		{"   ", "http://localhost:8000"},
		{"localhost", "http://localhost:8000"},
		{"192.168.1.20", "http://192.168.1.20:8000"},
		{" rag.lan ", "http://rag.lan:8000"},
		{"::1", "http://[::1]:8000"},
		{"[::1]", "http://[::1]:8000"},
		{"myhost:9000", "http://myhost:8000"},
		{"http://myhost", "http://myhost:8000"},
		{"https://rag.lan:8443/api/", "http://rag.lan:8000"},
		{"[::1]:9000", "http://[::1]:8000"},
		{"http://", "http://localhost:8000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Resolve(tc.host).String(), "host %q", tc.host)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	a := Resolve("10.0.0.5")
	b := Resolve("10.0.0.5")
	assert.Equal(t, a.String(), b.String())
	a.Host = "mutated"
	assert.Equal(t, "http://10.0.0.5:8000", b.String())
}

func TestHostFromEnv(t *testing.T) {
	t.Setenv(HostEnv, "")
	assert.Equal(t, DefaultHost, HostFromEnv())

	t.Setenv(HostEnv, "box.local")
	assert.Equal(t, "box.local", HostFromEnv())
}
