package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpctrl "github.com/cherish-app/cherish/pkg/controller/http"
	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/cherish-app/cherish/pkg/repository/memory"
	"github.com/cherish-app/cherish/pkg/usecase"
	"github.com/m-mizutani/gt"
)

const testAdminID = "admin-user"

type actionJSON struct {
	ID          string   `json:"_id"`
	Action      string   `json:"action"`
	For         []string `json:"for"`
	Likes       []string `json:"likes"`
	Done        []string `json:"done"`
	SuggestedBy string   `json:"suggestedBy"`
	Approved    bool     `json:"approved"`
	Description *string  `json:"description"`
	ImageLink   *string  `json:"imageLink"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type messageJSON[T any] struct {
	Message string `json:"message"`
	Result  T      `json:"result"`
}

type userJSON struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T, opts ...usecase.Option) *testServer {
	t.Helper()
	opts = append([]usecase.Option{
		usecase.WithAdminGuard(usecase.NewAdminGuard([]model.UserID{testAdminID})),
	}, opts...)
	uc := usecase.New(memory.New(), opts...)
	return &testServer{t: t, handler: httpctrl.New(uc)}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			gt.NoError(s.t, json.NewEncoder(&buf).Encode(v)).Required()
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

func (s *testServer) addUser(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/users/add", map[string]any{"email": email})
	gt.Number(s.t, w.Code).Equal(http.StatusCreated)
	return decode[messageJSON[userJSON]](s.t, w).Result.ID
}

func (s *testServer) suggest(body map[string]any) actionJSON {
	s.t.Helper()
	w := s.do(http.MethodPost, "/actions/suggest", body)
	gt.Number(s.t, w.Code).Equal(http.StatusCreated)
	return decode[messageJSON[actionJSON]](s.t, w).Result
}

func (s *testServer) approve(id string) {
	s.t.Helper()
	w := s.do(http.MethodPut, "/actions/approve/"+id, map[string]any{"userId": testAdminID})
	gt.Number(s.t, w.Code).Equal(http.StatusOK)
}

func ids(actions []actionJSON) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.ID
	}
	return out
}

func TestSuggestAction(t *testing.T) {
	t.Run("creates action and returns message", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(http.MethodPost, "/actions/suggest", map[string]any{
			"act":       "Learn something new about someone",
			"desc":      "Have a nice conversation",
			"for":       []string{"stranger", "family"},
			"like":      true,
			"did":       false,
			"suggester": "U1",
		})
		gt.Number(t, w.Code).Equal(http.StatusCreated)

		resp := decode[messageJSON[actionJSON]](t, w)
		gt.Value(t, resp.Message).Equal("Your suggested act of kindness has been submitted for approval!")
		gt.String(t, resp.Result.ID).NotEqual("")
		gt.Value(t, resp.Result.Action).Equal("Learn something new about someone")
		gt.Array(t, resp.Result.For).Equal([]string{"stranger", "family"})
		gt.Array(t, resp.Result.Likes).Equal([]string{"U1"})
		gt.Array(t, resp.Result.Done).Equal([]string{})
		gt.Value(t, resp.Result.SuggestedBy).Equal("U1")
		gt.Bool(t, resp.Result.Approved).False()
		gt.Value(t, *resp.Result.Description).Equal("Have a nice conversation")
		gt.Value(t, resp.Result.ImageLink).Nil()
		gt.String(t, resp.Result.CreatedAt).NotEqual("")
	})

	t.Run("explicit null optional fields are treated as absent", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(http.MethodPost, "/actions/suggest",
			`{"act":"Smile","for":[],"suggester":"U1","desc":null,"img":null}`)
		gt.Number(t, w.Code).Equal(http.StatusCreated)
		gt.String(t, w.Body.String()).NotContains("description")
		gt.String(t, w.Body.String()).NotContains("imageLink")
	})

	t.Run("optional fields are omitted when absent", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(http.MethodPost, "/actions/suggest", map[string]any{
			"act":       "Smile",
			"for":       []string{},
			"suggester": "U1",
		})
		gt.Number(t, w.Code).Equal(http.StatusCreated)
		gt.String(t, w.Body.String()).NotContains("description")
		gt.String(t, w.Body.String()).NotContains("imageLink")
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		tests := []struct {
			name string
			body map[string]any
		}{
			{"missing act", map[string]any{"for": []string{"x"}, "suggester": "U1"}},
			{"missing for", map[string]any{"act": "a", "suggester": "U1"}},
			{"missing suggester", map[string]any{"act": "a", "for": []string{"x"}}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := newTestServer(t)

				w := s.do(http.MethodPost, "/actions/suggest", tt.body)
				gt.Number(t, w.Code).Equal(http.StatusBadRequest)
				gt.String(t, decode[string](t, w)).HasPrefix("Error adding your act of kindness: ")

				all := s.do(http.MethodGet, "/actions/all", nil)
				gt.Array(t, decode[[]actionJSON](t, all)).Length(0)
			})
		}
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(http.MethodPost, "/actions/suggest", "{not json")
		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, decode[string](t, w)).HasPrefix("Error adding your act of kindness: ")
	})
}

func TestListActions(t *testing.T) {
	s := newTestServer(t)

	family := s.suggest(map[string]any{"act": "a1", "for": []string{"family", "friends"}, "suggester": "U1"})
	stranger := s.suggest(map[string]any{"act": "a2", "for": []string{"stranger"}, "suggester": "U1"})
	pending := s.suggest(map[string]any{"act": "a3", "for": []string{"friends"}, "suggester": "U1"})
	s.approve(family.ID)
	s.approve(stranger.ID)

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"approved only", "/actions", []string{family.ID, stranger.ID}},
		{"all", "/actions/all", []string{family.ID, stranger.ID, pending.ID}},
		{"approved with one tag", "/actions?for=friends", []string{family.ID}},
		{"approved with any tag", "/actions?for=stranger&for=friends", []string{family.ID, stranger.ID}},
		{"approved with unmatched tag", "/actions?for=coworker", []string{}},
		{"all with tag", "/actions/all?for=friends", []string{family.ID, pending.ID}},
		{"empty tag means no filter", "/actions?for=", []string{family.ID, stranger.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.path, nil)
			gt.Number(t, w.Code).Equal(http.StatusOK)
			gt.Array(t, ids(decode[[]actionJSON](t, w))).Equal(tt.want)
		})
	}

	t.Run("empty list is an array", func(t *testing.T) {
		w := newTestServer(t).do(http.MethodGet, "/actions", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		gt.String(t, w.Body.String()).Equal("[]")
	})
}

func TestGetAction(t *testing.T) {
	s := newTestServer(t)
	created := s.suggest(map[string]any{"act": "Call a friend", "for": []string{"friends"}, "suggester": "U1"})

	w := s.do(http.MethodGet, "/actions/get/"+created.ID, nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode[actionJSON](t, w).ID).Equal(created.ID)

	w = s.do(http.MethodGet, "/actions/get/does-not-exist", nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Body.String()).Equal("null")
}

func TestRandomAction(t *testing.T) {
	t.Run("no approved actions", func(t *testing.T) {
		s := newTestServer(t)
		s.suggest(map[string]any{"act": "pending", "for": []string{}, "suggester": "U1"})

		w := s.do(http.MethodGet, "/actions/random", nil)
		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
		gt.Value(t, decode[string](t, w)).
			Equal("Error getting a random act of kindness: No approved acts of kindness to choose from.")
	})

	t.Run("picks the offset chosen by the random source", func(t *testing.T) {
		s := newTestServer(t, usecase.WithRandom(func(n int64) int64 { return n - 1 }))
		first := s.suggest(map[string]any{"act": "first", "for": []string{}, "suggester": "U1"})
		second := s.suggest(map[string]any{"act": "second", "for": []string{}, "suggester": "U1"})
		s.suggest(map[string]any{"act": "pending", "for": []string{}, "suggester": "U1"})
		s.approve(first.ID)
		s.approve(second.ID)

		w := s.do(http.MethodGet, "/actions/random", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, decode[actionJSON](t, w).ID).Equal(second.ID)
	})
}

func TestApproveAction(t *testing.T) {
	s := newTestServer(t)
	created := s.suggest(map[string]any{"act": "Help out", "for": []string{}, "suggester": "U1"})

	t.Run("non-admin is rejected", func(t *testing.T) {
		w := s.do(http.MethodPut, "/actions/approve/"+created.ID, map[string]any{"userId": "U1"})
		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
		gt.Value(t, decode[string](t, w)).Equal("Your account cannot be used to approve suggested acts of kindness.")
	})

	t.Run("admin approves twice", func(t *testing.T) {
		for range 2 {
			w := s.do(http.MethodPut, "/actions/approve/"+created.ID, map[string]any{"userId": testAdminID})
			gt.Number(t, w.Code).Equal(http.StatusOK)

			resp := decode[messageJSON[actionJSON]](t, w)
			gt.Value(t, resp.Message).Equal("The specified act of kindness has successfully been approved.")
			gt.Bool(t, resp.Result.Approved).True()
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		w := s.do(http.MethodPut, "/actions/approve/missing", map[string]any{"userId": testAdminID})
		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, decode[string](t, w)).HasPrefix("Error finding the specified act of kindness to update approval: ")
	})
}

func TestToggleEngagement(t *testing.T) {
	tests := []struct {
		path    string
		plural  string
		added   string
		removed string
	}{
		{
			path:    "/actions/like/",
			plural:  "likes",
			added:   "Your like for an act of kindness has successfully been added.",
			removed: "Your like for an act of kindness has successfully been removed.",
		},
		{
			path:    "/actions/done/",
			plural:  "done votes",
			added:   "Your done vote for an act of kindness has successfully been added.",
			removed: "Your done vote for an act of kindness has successfully been removed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.plural, func(t *testing.T) {
			s := newTestServer(t)
			userID := s.addUser("u@example.com")
			created := s.suggest(map[string]any{"act": "Help out", "for": []string{}, "suggester": "U1"})

			w := s.do(http.MethodPut, tt.path+created.ID, map[string]any{"userId": userID})
			gt.Number(t, w.Code).Equal(http.StatusOK)
			gt.Value(t, decode[string](t, w)).Equal(tt.added)

			w = s.do(http.MethodPut, tt.path+created.ID, map[string]any{"userId": userID})
			gt.Number(t, w.Code).Equal(http.StatusOK)
			gt.Value(t, decode[string](t, w)).Equal(tt.removed)

			w = s.do(http.MethodPut, tt.path+created.ID, map[string]any{"userId": "ghost"})
			gt.Number(t, w.Code).Equal(http.StatusBadRequest)
			gt.String(t, decode[string](t, w)).
				HasPrefix("Error finding user to update " + tt.plural + " for the specified act of kindness: ")

			w = s.do(http.MethodPut, tt.path+"missing", map[string]any{"userId": userID})
			gt.Number(t, w.Code).Equal(http.StatusBadRequest)
			gt.String(t, decode[string](t, w)).
				HasPrefix("Error finding the specified act of kindness to update " + tt.plural + ": ")
		})
	}
}

func TestToggleEngagement_UnknownKind(t *testing.T) {
	s := newTestServer(t)
	userID := s.addUser("u@example.com")
	created := s.suggest(map[string]any{"act": "Help out", "for": []string{}, "suggester": "U1"})

	for _, kind := range []string{"share", "likes", "xlike", "LIKE"} {
		w := s.do(http.MethodPut, "/actions/"+kind+"/"+created.ID, map[string]any{"userId": userID})
		gt.Number(t, w.Code).Equal(http.StatusNotFound)
	}

	w := s.do(http.MethodGet, "/actions/get/"+created.ID, nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	got := decode[actionJSON](t, w)
	gt.Array(t, got.Likes).Length(0)
	gt.Array(t, got.Done).Length(0)
}

func TestDeleteAction(t *testing.T) {
	s := newTestServer(t)
	created := s.suggest(map[string]any{"act": "Help out", "for": []string{}, "suggester": "U1"})

	w := s.do(http.MethodDelete, "/actions/"+created.ID, map[string]any{"userId": "U1"})
	gt.Number(t, w.Code).Equal(http.StatusBadRequest)
	gt.Value(t, decode[string](t, w)).Equal("Your account cannot be used to delete acts of kindness.")

	w = s.do(http.MethodGet, "/actions/get/"+created.ID, nil)
	gt.Value(t, decode[*actionJSON](t, w)).NotNil()

	w = s.do(http.MethodDelete, "/actions/"+created.ID, map[string]any{"userId": testAdminID})
	gt.Number(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode[string](t, w)).Equal("Specified act of kindness has successfully been deleted.")

	w = s.do(http.MethodGet, "/actions/get/"+created.ID, nil)
	gt.String(t, w.Body.String()).Equal("null")

	w = s.do(http.MethodDelete, "/actions/"+created.ID, map[string]any{"userId": testAdminID})
	gt.Number(t, w.Code).Equal(http.StatusBadRequest)
	gt.String(t, decode[string](t, w)).HasPrefix("Error deleting an act of kindness: ")
}

func TestUsers(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/users/add", map[string]any{"email": "alice@example.com", "name": "Alice"})
	gt.Number(t, w.Code).Equal(http.StatusCreated)
	resp := decode[messageJSON[userJSON]](t, w)
	gt.Value(t, resp.Message).Equal("User has been added!")
	gt.Value(t, resp.Result.Email).Equal("alice@example.com")

	w = s.do(http.MethodGet, "/users/get/"+resp.Result.ID, nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode[userJSON](t, w).Name).Equal("Alice")

	w = s.do(http.MethodGet, "/users/get/missing", nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Body.String()).Equal("null")

	w = s.do(http.MethodPost, "/users/add", map[string]any{"name": "No Email"})
	gt.Number(t, w.Code).Equal(http.StatusBadRequest)
	gt.String(t, decode[string](t, w)).HasPrefix("Error adding user: ")
}

func TestScenario(t *testing.T) {
	s := newTestServer(t)
	u1 := s.addUser("u1@example.com")
	u3 := s.addUser("u3@example.com")

	a := s.suggest(map[string]any{"act": "Leave a kind note", "for": []string{"friends"}, "like": true, "suggester": u1})
	gt.Array(t, a.Likes).Equal([]string{u1})
	gt.Bool(t, a.Approved).False()

	w := s.do(http.MethodPut, "/actions/approve/"+a.ID, map[string]any{"userId": u1})
	gt.Number(t, w.Code).Equal(http.StatusBadRequest)

	s.approve(a.ID)

	w = s.do(http.MethodGet, "/actions", nil)
	gt.Array(t, ids(decode[[]actionJSON](t, w))).Equal([]string{a.ID})

	w = s.do(http.MethodPut, "/actions/like/"+a.ID, map[string]any{"userId": u3})
	gt.Value(t, decode[string](t, w)).Equal("Your like for an act of kindness has successfully been added.")
	w = s.do(http.MethodGet, "/actions/get/"+a.ID, nil)
	gt.Array(t, decode[actionJSON](t, w).Likes).Equal([]string{u1, u3})

	w = s.do(http.MethodPut, "/actions/like/"+a.ID, map[string]any{"userId": u3})
	gt.Value(t, decode[string](t, w)).Equal("Your like for an act of kindness has successfully been removed.")
	w = s.do(http.MethodGet, "/actions/get/"+a.ID, nil)
	gt.Array(t, decode[actionJSON](t, w).Likes).Equal([]string{u1})
}
