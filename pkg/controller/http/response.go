package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/cherish-app/cherish/pkg/usecase"
	"github.com/cherish-app/cherish/pkg/utils/errutil"
	"github.com/cherish-app/cherish/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

type actionResponse struct {
	ID          string    `json:"_id"`
	Action      string    `json:"action"`
	For         []string  `json:"for"`
	Likes       []string  `json:"likes"`
	Done        []string  `json:"done"`
	SuggestedBy string    `json:"suggestedBy"`
	Approved    bool      `json:"approved"`
	Description *string   `json:"description,omitempty"`
	ImageLink   *string   `json:"imageLink,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type userResponse struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type messageResponse struct {
	Message string `json:"message"`
	Result  any    `json:"result"`
}

func toActionResponse(a *model.Action) *actionResponse {
	if a == nil {
		return nil
	}
	forTags := a.For
	if forTags == nil {
		forTags = []string{}
	}
	return &actionResponse{
		ID:          string(a.ID),
		Action:      a.Action,
		For:         forTags,
		Likes:       a.Likes.Strings(),
		Done:        a.Done.Strings(),
		SuggestedBy: string(a.SuggestedBy),
		Approved:    a.Approved,
		Description: a.Description,
		ImageLink:   a.ImageLink,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toActionResponses(actions []*model.Action) []*actionResponse {
	resp := make([]*actionResponse, len(actions))
	for i, a := range actions {
		resp[i] = toActionResponse(a)
	}
	return resp
}

func toUserResponse(u *model.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        string(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// writeJSON encodes v as the response body with status
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"),
			http.StatusInternalServerError, "failed to marshal response")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// decodeBody decodes the JSON request body into v. An empty body leaves v
// untouched; malformed JSON is a validation failure.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	defer safe.Close(r.Context(), r.Body)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err == io.EOF {
			return nil
		}
		return goerr.Wrap(usecase.ErrValidation, "malformed request body", goerr.V("error", err.Error()))
	}
	return nil
}
