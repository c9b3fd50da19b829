package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/cherish-app/cherish/pkg/domain/types"
	"github.com/cherish-app/cherish/pkg/usecase"
	"github.com/go-chi/chi/v5"
)

type suggestRequest struct {
	Act       string    `json:"act"`
	For       *[]string `json:"for"`
	Like      bool      `json:"like"`
	Did       bool      `json:"did"`
	Suggester string    `json:"suggester"`
	Desc      *string   `json:"desc"`
	Img       *string   `json:"img"`
}

// actorRequest carries the acting user for approve, toggle and delete
type actorRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) suggestAction(w http.ResponseWriter, r *http.Request) {
	const failure = "Error adding your act of kindness: "

	var req suggestRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorWithCause(w, r, err, failure)
		return
	}

	input := usecase.SuggestInput{
		Act:         req.Act,
		Like:        req.Like,
		Did:         req.Did,
		Suggester:   model.UserID(req.Suggester),
		Description: req.Desc,
		ImageLink:   req.Img,
	}
	if req.For != nil {
		input.For = append([]string{}, (*req.For)...)
	}

	created, err := s.uc.Action.SuggestAction(r.Context(), input)
	if err != nil {
		writeErrorWithCause(w, r, err, failure)
		return
	}

	writeJSON(w, r, http.StatusCreated, messageResponse{
		Message: "Your suggested act of kindness has been submitted for approval!",
		Result:  toActionResponse(created),
	})
}

func (s *Server) listApprovedActions(w http.ResponseWriter, r *http.Request) {
	s.listActions(w, r, true, "Error getting all approved acts of kindness: ")
}

func (s *Server) listAllActions(w http.ResponseWriter, r *http.Request) {
	s.listActions(w, r, false, "Error getting all acts of kindness: ")
}

func (s *Server) listActions(w http.ResponseWriter, r *http.Request, approvedOnly bool, unfilteredFailure string) {
	filter := model.ActionFilter{
		ApprovedOnly: approvedOnly,
		For:          model.NewForFilter(r.URL.Query()["for"]),
	}

	actions, err := s.uc.Action.ListActions(r.Context(), filter)
	if err != nil {
		failure := unfilteredFailure
		if filter.HasTagFilter() {
			failure = "Error getting filtered acts of kindness: "
		}
		writeErrorWithCause(w, r, err, failure)
		return
	}

	writeJSON(w, r, http.StatusOK, toActionResponses(actions))
}

func (s *Server) getAction(w http.ResponseWriter, r *http.Request) {
	id := model.ActionID(chi.URLParam(r, "id"))

	action, err := s.uc.Action.GetAction(r.Context(), id)
	if err != nil {
		writeErrorWithCause(w, r, err, "Error getting an act of kindness with the specified id: ")
		return
	}

	// A missing action is encoded as null
	writeJSON(w, r, http.StatusOK, toActionResponse(action))
}

func (s *Server) randomAction(w http.ResponseWriter, r *http.Request) {
	const failure = "Error getting a random act of kindness: "

	action, err := s.uc.Action.RandomAction(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoApprovedActions):
			writeError(w, r, err, failure+"No approved acts of kindness to choose from.")
		case errors.Is(err, usecase.ErrSamplePoolUnavailable):
			writeError(w, r, err, failure+"Cannot retrieve approved acts of kindness to choose from.")
		default:
			writeErrorWithCause(w, r, err, failure)
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toActionResponse(action))
}

func (s *Server) approveAction(w http.ResponseWriter, r *http.Request) {
	const failure = "Error updating approval for an act of kindness: "
	id := model.ActionID(chi.URLParam(r, "id"))

	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorWithCause(w, r, err, failure)
		return
	}

	approved, err := s.uc.Action.ApproveAction(r.Context(), id, model.UserID(req.UserID))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotAuthorized):
			writeError(w, r, err, "Your account cannot be used to approve suggested acts of kindness.")
		case errors.Is(err, usecase.ErrActionNotFound):
			writeErrorWithCause(w, r, err, "Error finding the specified act of kindness to update approval: ")
		default:
			writeErrorWithCause(w, r, err, failure)
		}
		return
	}

	writeJSON(w, r, http.StatusOK, messageResponse{
		Message: "The specified act of kindness has successfully been approved.",
		Result:  toActionResponse(approved),
	})
}

// engagementWording holds the user facing wording of one engagement kind
type engagementWording struct {
	plural   string
	singular string
}

var engagementWordings = map[types.Engagement]engagementWording{
	types.EngagementLike: {plural: "likes", singular: "like"},
	types.EngagementDone: {plural: "done votes", singular: "done vote"},
}

// engagementPattern is the chi route pattern matching every engagement kind
func engagementPattern() string {
	kinds := types.AllEngagements()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}
	return "^(" + strings.Join(names, "|") + ")$"
}

func (s *Server) toggleEngagement(w http.ResponseWriter, r *http.Request) {
	kind, err := types.ParseEngagement(chi.URLParam(r, "kind"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	wording := engagementWordings[kind]
	updateFailure := fmt.Sprintf("Error updating %s for an act of kindness: ", wording.plural)
	id := model.ActionID(chi.URLParam(r, "id"))

	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorWithCause(w, r, err, updateFailure)
		return
	}

	removed, err := s.uc.Action.ToggleEngagement(r.Context(), id, kind, model.UserID(req.UserID))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeErrorWithCause(w, r, err,
				fmt.Sprintf("Error finding user to update %s for the specified act of kindness: ", wording.plural))
		case errors.Is(err, usecase.ErrActionNotFound):
			writeErrorWithCause(w, r, err,
				fmt.Sprintf("Error finding the specified act of kindness to update %s: ", wording.plural))
		default:
			writeErrorWithCause(w, r, err, updateFailure)
		}
		return
	}

	outcome := "added"
	if removed {
		outcome = "removed"
	}
	writeJSON(w, r, http.StatusOK,
		fmt.Sprintf("Your %s for an act of kindness has successfully been %s.", wording.singular, outcome))
}

func (s *Server) deleteAction(w http.ResponseWriter, r *http.Request) {
	const failure = "Error deleting an act of kindness: "
	id := model.ActionID(chi.URLParam(r, "id"))

	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorWithCause(w, r, err, failure)
		return
	}

	if err := s.uc.Action.DeleteAction(r.Context(), id, model.UserID(req.UserID)); err != nil {
		if errors.Is(err, usecase.ErrNotAuthorized) {
			writeError(w, r, err, "Your account cannot be used to delete acts of kindness.")
			return
		}
		writeErrorWithCause(w, r, err, failure)
		return
	}

	writeJSON(w, r, http.StatusOK, "Specified act of kindness has successfully been deleted.")
}
