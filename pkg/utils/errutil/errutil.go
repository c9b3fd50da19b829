package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cherish-app/cherish/pkg/utils/logging"
	"github.com/cherish-app/cherish/pkg/utils/safe"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs the error with a message and reports it to Sentry when a client
// is configured. It returns err unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	log(ctx, msg, err)
	Report(ctx, err)

	return err
}

// HandleHTTP logs the error and writes body as a JSON string with statusCode.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int, body string) {
	if err == nil {
		return
	}

	log(ctx, "HTTP error", err, "status", statusCode)

	data, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		http.Error(w, body, statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, data)
}

// Report sends err to Sentry. It is a no-op when Sentry is not initialized.
func Report(ctx context.Context, err error) {
	if err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		var ge *goerr.Error
		if errors.As(err, &ge) {
			if values := ge.Values(); len(values) > 0 {
				scope.SetContext("goerr", sentry.Context(values))
			}
		}
		if eventID := hub.CaptureException(err); eventID != nil {
			logging.From(ctx).Debug("error reported to sentry", "event_id", *eventID)
		}
	})
}

func log(ctx context.Context, msg string, err error, attrs ...any) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		attrs = append(attrs,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		attrs = append(attrs, "error", err.Error())
	}

	logger.Error(msg, attrs...)
}
