package util

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPError(t *testing.T) {
	request := httptest.NewRequest("GET", "/localindex/goes/abc", strings.NewReader(""))
	response := httptest.NewRecorder()

	HTTPError(request, response, &BasicLogContext{}, "scene not found", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"scene not found"}`, response.Body.String())
}

func TestHTTPErr(t *testing.T) {
	err := HTTPErr{Status: 422, Message: "not visible"}
	assert.Equal(t, "not visible", err.Error())
}

func TestError_Log(t *testing.T) {
	withSimple := Error{LogMsg: "detailed failure", SimpleMsg: "something went wrong", URL: "https://example.localdomain"}
	assert.Equal(t, "something went wrong", withSimple.Log(&BasicLogContext{}, "prefix").Error())

	withoutSimple := Error{LogMsg: "detailed failure", URL: "https://example.localdomain"}
	assert.Equal(t, "detailed failure", withoutSimple.Log(&BasicLogContext{}, "").Error())
}

func TestReqByObjJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	out := map[string]interface{}{}
	response, err := ReqByObjJSON("POST", server.URL, "", map[string]string{"q": "x"}, &out)
	assert.Nil(t, err)
	assert.Equal(t, 200, response.StatusCode)
	assert.Equal(t, true, out["ok"])
}

func TestReqByObjJSON_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := ReqByObjJSON("GET", server.URL, "", nil, nil)
	assert.NotNil(t, err)
	httpErr, ok := err.(HTTPErr)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusBadGateway, httpErr.Status)
	}
}

func TestPsuUUID(t *testing.T) {
	a, err := PsuUUID()
	assert.Nil(t, err)
	b, err := PsuUUID()
	assert.Nil(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
