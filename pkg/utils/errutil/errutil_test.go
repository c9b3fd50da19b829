package errutil_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cherish-app/cherish/pkg/utils/errutil"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHandleHTTP(t *testing.T) {
	t.Run("writes JSON string body", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := goerr.New("boom", goerr.V("key", "value"))

		errutil.HandleHTTP(context.Background(), w, err, http.StatusBadRequest, `Error: "quoted" boom`)

		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, w.Header().Get("Content-Type")).Contains("application/json")

		var body string
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.Value(t, body).Equal(`Error: "quoted" boom`)
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, nil, http.StatusBadRequest, "unused")
		gt.Number(t, w.Body.Len()).Equal(0)
	})
}

func TestHandle(t *testing.T) {
	err := errors.New("plain")
	gt.Value(t, errutil.Handle(context.Background(), err, "failed")).Equal(err)
	gt.NoError(t, errutil.Handle(context.Background(), nil, "unused"))
}

func newCapturingContext(t *testing.T) (context.Context, *[]*sentry.Event) {
	t.Helper()

	var events []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:        "https://public@sentry.example.com/1",
		SampleRate: 1.0,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			events = append(events, event)
			return nil
		},
	})
	gt.NoError(t, err).Required()

	hub := sentry.NewHub(client, sentry.NewScope())
	return sentry.SetHubOnContext(context.Background(), hub), &events
}

func TestReport(t *testing.T) {
	t.Run("goerr values reach the event", func(t *testing.T) {
		ctx, events := newCapturingContext(t)

		errutil.Report(ctx, goerr.New("boom",
			goerr.V("action_id", "a1"),
			goerr.V("user_id", "u1")))

		gt.Array(t, *events).Length(1).Required()
		goerrCtx, ok := (*events)[0].Contexts["goerr"]
		gt.Bool(t, ok).True().Required()
		gt.Value(t, goerrCtx["action_id"]).Equal(any("a1"))
		gt.Value(t, goerrCtx["user_id"]).Equal(any("u1"))
	})

	t.Run("plain error has no goerr context", func(t *testing.T) {
		ctx, events := newCapturingContext(t)

		errutil.Report(ctx, errors.New("plain"))

		gt.Array(t, *events).Length(1).Required()
		_, ok := (*events)[0].Contexts["goerr"]
		gt.Bool(t, ok).False()
	})

	t.Run("Handle reports through the same path", func(t *testing.T) {
		ctx, events := newCapturingContext(t)

		err := goerr.New("failed", goerr.V("kind", "like"))
		gt.Value(t, errutil.Handle(ctx, err, "failed")).Equal(error(err))

		gt.Array(t, *events).Length(1).Required()
		gt.Value(t, (*events)[0].Contexts["goerr"]["kind"]).Equal(any("like"))
	})

	t.Run("nil error reports nothing", func(t *testing.T) {
		ctx, events := newCapturingContext(t)
		errutil.Report(ctx, nil)
		gt.Array(t, *events).Length(0)
	})
}
