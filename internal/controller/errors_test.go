package controller

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"ragdesk/internal/ragapi"
)

func TestDescribe(t *testing.T) {
	base := "http://localhost:8000"
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"overload", &ragapi.HTTPError{Path: "/ask", Status: http.StatusServiceUnavailable, Detail: "rate limited"}, MsgOverloaded},
		{"not found", &ragapi.HTTPError{Path: "/ask", Status: http.StatusNotFound}, MsgNotFound},
		{"server detail", &ragapi.HTTPError{Path: "/ask", Status: http.StatusInternalServerError, Detail: "boom"}, "Server error: boom"},
		{"server generic", &ragapi.HTTPError{Path: "/ask", Status: http.StatusInternalServerError}, "Server error: Something went wrong on the server."},
		{"other detail", &ragapi.HTTPError{Path: "/ask", Status: http.StatusBadRequest, Detail: "bad input"}, "Error: bad input"},
		{"other generic", &ragapi.HTTPError{Path: "/ask", Status: http.StatusTeapot}, "Error: Something went wrong. Please try again."},
		{"transport", errors.New("dial tcp: connection refused"), "Network error. Please check if the backend server is running at http://localhost:8000"},
		{"wrapped http", errors.Wrap(&ragapi.HTTPError{Status: http.StatusServiceUnavailable}, "ask"), MsgOverloaded},
		{"decode", &ragapi.DecodeError{Path: "/ask", Err: errors.New("eof")}, "Error: the service returned an unexpected response."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Describe(tc.err, base))
		})
	}
}

func TestDescribeAction(t *testing.T) {
	base := "http://10.0.0.2:8000"
	assert.Equal(t,
		"Upload failed: Only .txt and .md files are supported",
		describeAction("Upload", &ragapi.HTTPError{Status: http.StatusBadRequest, Detail: "Only .txt and .md files are supported"}, base),
	)
	assert.Equal(t,
		"Activation failed: Something went wrong. Please try again.",
		describeAction("Activation", &ragapi.HTTPError{Status: http.StatusInternalServerError}, base),
	)
	assert.Equal(t,
		MsgOverloaded,
		describeAction("Upload", &ragapi.HTTPError{Status: http.StatusServiceUnavailable, Detail: "busy"}, base),
	)
	assert.Equal(t,
		"Activation failed: Document missing.md not found",
		describeAction("Activation", &ragapi.HTTPError{Status: http.StatusNotFound, Detail: "Document missing.md not found"}, base),
	)
	assert.Contains(t, describeAction("Upload", errors.New("connection reset"), base), base)
}
