package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/catalog/alog"
	"github.com/go-arrower/catalog/app"
)

func TestLoggingDecorator_H(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		handler := app.NewLoggedRequest[request, response](logger, okHandler{})

		res, err := handler.H(ctx, request{})
		assert.NoError(t, err)
		assert.Equal(t, response{Value: "ok"}, res)

		logger.Total(2)
		logger.Contains(`msg="executing request"`)
		logger.Contains(`command=app_test.request`)
		logger.Contains(`msg="request executed successfully"`)
	})

	t.Run("failed request", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		handler := app.NewLoggedRequest[request, response](logger, app.TestFailureRequestHandler[request, response]())

		_, err := handler.H(ctx, request{})
		assert.ErrorIs(t, err, app.ErrUseCaseFailed)

		logger.Contains(`msg="executing request"`)
		logger.Contains(`msg="failed to execute request"`)
		logger.Contains(`error="usecase failed"`)
	})

	t.Run("successful command", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		handler := app.NewLoggedCommand[request](logger, app.TestSuccessCommandHandler[request]())

		err := handler.H(ctx, request{})
		assert.NoError(t, err)

		logger.Contains(`msg="executing command"`)
		logger.Contains(`msg="command executed successfully"`)
	})

	t.Run("failed command", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		handler := app.NewLoggedCommand[request](logger, app.TestFailureCommandHandler[request]())

		err := handler.H(ctx, request{})
		assert.ErrorIs(t, err, app.ErrUseCaseFailed)

		logger.Contains(`msg="failed to execute command"`)
	})

	t.Run("successful query", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		handler := app.NewLoggedQuery[request, response](logger, app.TestSuccessQueryHandler[request, response]())

		_, err := handler.H(ctx, request{})
		assert.NoError(t, err)

		logger.Contains(`msg="executing query"`)
		logger.Contains(`msg="query executed successfully"`)
	})

	t.Run("failed query", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		handler := app.NewLoggedQuery[request, response](logger, app.TestFailureQueryHandler[request, response]())

		_, err := handler.H(ctx, request{})
		assert.ErrorIs(t, err, app.ErrUseCaseFailed)

		logger.Contains(`msg="failed to execute query"`)
	})

	t.Run("not logged above debug level", func(t *testing.T) {
		t.Parallel()

		handler := app.NewLoggedQuery[request, response](alog.NewNoop(), okHandler{})

		res, err := handler.H(ctx, request{})
		assert.NoError(t, err)
		assert.Equal(t, response{Value: "ok"}, res)
	})
}
