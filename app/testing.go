package app

import (
	"context"
	"errors"
)

//
// This file contains convenience helpers you can use to easier test
// your calling code relying on this usecase pattern.
//

var ErrUseCaseFailed = errors.New("usecase failed")

// TestSuccessRequestHandler returns a Request that always succeeds with the zero Res.
func TestSuccessRequestHandler[Req any, Res any]() Request[Req, Res] {
	return testHandler[Req, Res]{}
}

// TestFailureRequestHandler returns a Request that always fails with ErrUseCaseFailed.
func TestFailureRequestHandler[Req any, Res any]() Request[Req, Res] {
	return testHandler[Req, Res]{err: ErrUseCaseFailed}
}

func TestSuccessCommandHandler[C any]() Command[C] {
	return decoratedCommand[C]{base: testHandler[C, struct{}]{}}
}

func TestFailureCommandHandler[C any]() Command[C] {
	return decoratedCommand[C]{base: testHandler[C, struct{}]{err: ErrUseCaseFailed}}
}

func TestSuccessQueryHandler[Q any, Res any]() Query[Q, Res] {
	return testHandler[Q, Res]{}
}

func TestFailureQueryHandler[Q any, Res any]() Query[Q, Res] {
	return testHandler[Q, Res]{err: ErrUseCaseFailed}
}

type testHandler[In any, Out any] struct {
	err error
}

func (h testHandler[In, Out]) H(_ context.Context, _ In) (Out, error) { //nolint:ireturn // valid use of generics
	var result Out

	return result, h.err
}
