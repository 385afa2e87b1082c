package relay

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// InboundEvent is a raw webhook call
type InboundEvent struct {
	Headers map[string]string
	Body    []byte
}

// Header returns the value of a header, matching the name case-insensitively.
func (e InboundEvent) Header(name string) string {
	if v, ok := e.Headers[name]; ok {
		return v
	}
	for k, v := range e.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Response is the reply to a webhook call
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

type messageBody struct {
	Message string `json:"message"`
}

// Message is a 200 reply explaining why nothing was sent
func Message(text string) Response {
	body, _ := json.Marshal(messageBody{Message: text})
	return Response{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        body,
	}
}

// Forbidden is the reply to a call with an invalid signature
func Forbidden() Response {
	return Response{StatusCode: http.StatusForbidden}
}

// Delivered forwards the body returned by the incoming webhook
func Delivered(body []byte) Response {
	return Response{
		StatusCode:  http.StatusOK,
		ContentType: "text/plain; charset=utf-8",
		Body:        body,
	}
}
