package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, duration and, on failure, the error code.
// Client mistakes (invalid argument, not found, already exists) log at Warn;
// everything else that fails logs at Error.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err == nil {
				logger.Info("RPC ok",
					"procedure", procedure,
					"duration_ms", duration,
				)
				return resp, nil
			}

			var connectErr *connect.Error
			if errors.As(err, &connectErr) && isClientError(connectErr.Code()) {
				logger.Warn("RPC rejected",
					"procedure", procedure,
					"code", connectErr.Code(),
					"error", connectErr.Message(),
					"duration_ms", duration,
				)
			} else {
				logger.Error("RPC error",
					"procedure", procedure,
					"code", connect.CodeOf(err),
					"error", err,
					"duration_ms", duration,
				)
			}
			return resp, err
		}
	}
}

func isClientError(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeAlreadyExists:
		return true
	}
	return false
}
