package controller

import (
	"fmt"
	"net/http"
	"strings"

	"ragdesk/internal/ragapi"
)

const (
	MsgOverloaded = "The service is temporarily unavailable due to high demand. Please try again in a few moments."
	MsgNotFound   = "API endpoint not found. Please check if the backend server is running."

	fallbackServerError = "Something went wrong on the server."
	fallbackError       = "Something went wrong. Please try again."
	unexpectedResponse  = "Error: the service returned an unexpected response."
)

// Describe turns a failed user action into the message shown to the user.
func Describe(err error, baseURL string) string {
	if err == nil {
		return ""
	}
	if httpErr, ok := ragapi.AsHTTPError(err); ok {
		switch httpErr.Status {
		case http.StatusServiceUnavailable:
			return MsgOverloaded
		case http.StatusNotFound:
			return MsgNotFound
		case http.StatusInternalServerError:
			return "Server error: " + orDefault(httpErr.Detail, fallbackServerError)
		default:
			return "Error: " + orDefault(httpErr.Detail, fallbackError)
		}
	}
	if ragapi.IsTransport(err) {
		return networkError(baseURL)
	}
	return unexpectedResponse
}

// describeAction is used for document actions. Overload keeps its fixed
// advice; otherwise the service's detail (e.g. "Only .txt and .md files are
// supported", or a missing document on activation) is more useful than the
// status class.
func describeAction(action string, err error, baseURL string) string {
	if httpErr, ok := ragapi.AsHTTPError(err); ok {
		if httpErr.Status == http.StatusServiceUnavailable {
			return MsgOverloaded
		}
		if httpErr.Detail != "" {
			return fmt.Sprintf("%s failed: %s", action, httpErr.Detail)
		}
		return fmt.Sprintf("%s failed: %s", action, fallbackError)
	}
	if ragapi.IsTransport(err) {
		return networkError(baseURL)
	}
	return fmt.Sprintf("%s failed: the service returned an unexpected response.", action)
}

func networkError(baseURL string) string {
	return "Network error. Please check if the backend server is running at " + baseURL
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
