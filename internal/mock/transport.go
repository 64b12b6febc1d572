package mock

import (
	"fmt"
	"net/http"
	"net/http/httptest"
)

// BaseURL is the address clients use to reach an in-process handler.
const BaseURL = "http://skillswap.mock"

// Transport serves requests from Handler without touching the network.
type Transport struct {
	Handler http.Handler
}

// RoundTrip runs the handler and returns its recorded response. A request
// whose context ends first gets the context error, like a network transport.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Handler == nil {
		return nil, fmt.Errorf("mock transport: no handler")
	}
	done := make(chan *http.Response, 1)
	go func() {
		rec := httptest.NewRecorder()
		defer func() {
			if p := recover(); p != nil {
				rec = httptest.NewRecorder()
				rec.WriteHeader(http.StatusInternalServerError)
			}
			res := rec.Result()
			res.Request = req
			done <- res
		}()
		t.Handler.ServeHTTP(rec, req)
	}()
	select {
	case res := <-done:
		return res, nil
	case <-req.Context().Done():
		return nil, req.Context().Err()
	}
}

// NewClient returns an *http.Client bound to handler.
func NewClient(handler http.Handler) *http.Client {
	return &http.Client{Transport: &Transport{Handler: handler}}
}
