package app_test

import (
	"context"
)

var ctx = context.Background()

type (
	request  struct{}
	response struct {
		Value string
	}
)

// okHandler returns a fixed response, so tests can assert the decorators do not change it.
type okHandler struct{}

func (okHandler) H(_ context.Context, _ request) (response, error) {
	return response{Value: "ok"}, nil
}
