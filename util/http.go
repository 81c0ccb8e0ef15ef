// Copyright 2019, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

var sharedClient = &http.Client{Timeout: 120 * time.Second}

// HTTPClient returns the shared HTTP client used for archive and service calls
func HTTPClient() *http.Client {
	return sharedClient
}

// HTTPErr is an error carrying the HTTP status that should be reported for it
type HTTPErr struct {
	Status  int
	Message string
}

func (err HTTPErr) Error() string {
	return err.Message
}

// Error is a richer error for operations against external services,
// separating the detailed log message from the user-facing one
type Error struct {
	LogMsg    string
	SimpleMsg string
	Request   string
	Response  string
	URL       string
}

// Log writes the detailed message to the log and returns an error holding
// the user-facing message
func (e Error) Log(ctx LogContext, prefix string) error {
	message := e.LogMsg
	if prefix != "" {
		message = prefix + ": " + message
	}
	ev := event(ctx, zerolog.ErrorLevel).Str("url", e.URL)
	if e.Request != "" {
		ev = ev.Str("request", e.Request)
	}
	if e.Response != "" {
		ev = ev.Str("response", e.Response)
	}
	ev.Msg(message)

	if e.SimpleMsg != "" {
		return errors.New(e.SimpleMsg)
	}
	return errors.New(e.LogMsg)
}

// errorResponse is the JSON body written by HTTPError
type errorResponse struct {
	Error string `json:"error"`
}

// HTTPError writes a JSON error body with the given status and logs it
func HTTPError(r *http.Request, w http.ResponseWriter, ctx LogContext, message string, status int) {
	event(ctx, zerolog.ErrorLevel).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg(message)

	body, _ := json.Marshal(errorResponse{Error: message})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// ReqByObjJSON performs an HTTP request with a JSON-marshaled input object,
// unmarshaling the response body into the output object
func ReqByObjJSON(method, url, auth string, inObj, outObj interface{}) (*http.Response, error) {
	requestBody, err := json.Marshal(inObj)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequest(method, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	if auth != "" {
		request.Header.Set("Authorization", auth)
	}

	response, err := HTTPClient().Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return response, HTTPErr{Status: response.StatusCode, Message: fmt.Sprintf("Non-2xx response from %s: %d", url, response.StatusCode)}
	}

	if outObj != nil {
		if err = json.NewDecoder(response.Body).Decode(outObj); err != nil {
			return response, err
		}
	}

	return response, nil
}

// PsuUUID generates a pseudo-UUID from random bytes
func PsuUUID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:]), nil
}
