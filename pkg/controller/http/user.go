package http

import (
	"net/http"

	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/go-chi/chi/v5"
)

type addUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Server) addUser(w http.ResponseWriter, r *http.Request) {
	const failure = "Error adding user: "

	var req addUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorWithCause(w, r, err, failure)
		return
	}

	created, err := s.uc.User.AddUser(r.Context(), req.Email, req.Name)
	if err != nil {
		writeErrorWithCause(w, r, err, failure)
		return
	}

	writeJSON(w, r, http.StatusCreated, messageResponse{
		Message: "User has been added!",
		Result:  toUserResponse(created),
	})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id := model.UserID(chi.URLParam(r, "id"))

	user, err := s.uc.User.GetUser(r.Context(), id)
	if err != nil {
		writeErrorWithCause(w, r, err, "Error getting a user with the specified id: ")
		return
	}

	writeJSON(w, r, http.StatusOK, toUserResponse(user))
}
