package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testCommand struct {
	Value   string
	invalid bool
}

func (c testCommand) Validate() error {
	if c.invalid {
		return errors.New("invalid command")
	}
	return nil
}

func TestCommandBus(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to the registered handler", func(t *testing.T) {
		commandBus := NewCommandBus()
		require.NoError(t, commandBus.Register(testCommand{}, CommandHandlerFunc(
			func(ctx context.Context, cmd Command) (interface{}, error) {
				return cmd.(testCommand).Value + "-handled", nil
			},
		)))

		result, err := commandBus.Send(ctx, testCommand{Value: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hello-handled", result)
	})

	t.Run("validates before dispatching", func(t *testing.T) {
		commandBus := NewCommandBus()
		called := false
		require.NoError(t, commandBus.Register(testCommand{}, CommandHandlerFunc(
			func(ctx context.Context, cmd Command) (interface{}, error) {
				called = true
				return nil, nil
			},
		)))

		_, err := commandBus.Send(ctx, testCommand{invalid: true})

		require.Error(t, err)
		assert.False(t, called)
	})

	t.Run("rejects unregistered commands", func(t *testing.T) {
		commandBus := NewCommandBus()

		_, err := commandBus.Send(ctx, testCommand{})

		assert.Error(t, err)
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		commandBus := NewCommandBus()
		handler := CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
			return nil, nil
		})

		require.NoError(t, commandBus.Register(testCommand{}, handler))
		assert.Error(t, commandBus.Register(testCommand{}, handler))
	})

	t.Run("middleware wraps outermost first", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next CommandHandler) CommandHandler {
				return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
					order = append(order, name)
					return next.Handle(ctx, cmd)
				})
			}
		}

		handler := Chain(CommandHandlerFunc(
			func(ctx context.Context, cmd Command) (interface{}, error) {
				order = append(order, "handler")
				return nil, nil
			},
		), mw("outer"), mw("inner"))

		_, err := handler.Handle(ctx, testCommand{})
		require.NoError(t, err)
		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	})

	t.Run("logging middleware passes results through", func(t *testing.T) {
		handler := Chain(CommandHandlerFunc(
			func(ctx context.Context, cmd Command) (interface{}, error) {
				return 42, nil
			},
		), LoggingMiddleware(zap.NewNop()))

		result, err := handler.Handle(ctx, testCommand{})
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})
}
