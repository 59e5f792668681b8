package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gymloop/accounts/internal/accounts/listing"
	"github.com/gymloop/accounts/internal/accounts/service"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/internal/accounts/validate"
	"github.com/gymloop/accounts/pkg/httpx"
	"github.com/gymloop/accounts/pkg/slogx"
)

// Allow-lists for the profiles list endpoint.
var (
	profileSortProperties   = []string{"firstName", "lastName"}
	profileFilterProperties = []string{"firstName", "lastName", "userId"}
)

// ProfilesHandler handles the admin-only profile management endpoints.
type ProfilesHandler struct {
	ProfileService *service.ProfileService
	Store          store.Store
}

// HandleCreate handles POST /v1/profiles
//
//	@Summary		Create profile
//	@Description	Creates a profile bound to an existing user. Admin only.
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		validate.CreateProfileInput	true	"Profile creation request"
//	@Success		201		{object}	ProfileResponse
//	@Failure		400		{object}	httpx.Error	"statusCode, message"
//	@Failure		401		{object}	httpx.Error	"statusCode, message"
//	@Failure		403		{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/profiles [post].
func (h *ProfilesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var in validate.CreateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if v := validate.CreateProfile(ctx, h.Store.Users(), in); len(v) > 0 {
		writeViolations(w, v)
		return
	}

	profile, err := h.ProfileService.CreateProfile(ctx, service.CreateProfileParams{
		UserID:     in.UserID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Bio:        in.Bio,
		WorkoutIDs: in.WorkoutIDs,
		RoutineIDs: in.RoutineIDs,
	})
	if err != nil {
		writeStoreError(w, log, err, "Profile not found")
		return
	}

	log.Info("profile created", "profile_id", profile.ID, "user_id", profile.UserID)
	httpx.WriteJSON(w, http.StatusCreated, toProfileResponse(profile))
}

// HandleList handles GET /v1/profiles
//
//	@Summary		List profiles
//	@Description	Returns a page of profiles. Supports page/size, sort by firstName/lastName, and filtering on firstName, lastName and userId.
//	@Tags			Profiles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int		false	"Page number (1-based)"
//	@Param			size	query		int		false	"Page size (max 100)"
//	@Param			sort	query		string	false	"property:direction, e.g. firstName:asc"
//	@Param			filter	query		string	false	"property:rule:value, e.g. lastName:like:Smith"
//	@Success		200		{object}	ListResponse[ProfileResponse]
//	@Failure		400		{object}	httpx.Error	"statusCode, message"
//	@Failure		401		{object}	httpx.Error	"statusCode, message"
//	@Failure		403		{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/profiles [get].
func (h *ProfilesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	opts, err := parseListOptions(r.URL.Query(), profileSortProperties, profileFilterProperties)
	if err != nil {
		if errors.Is(err, listing.ErrInvalid) {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeStoreError(w, log, err, "Profile not found")
		return
	}

	profiles, err := h.ProfileService.ListProfiles(ctx, opts)
	if err != nil {
		writeStoreError(w, log, err, "Profile not found")
		return
	}

	items := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		items[i] = toProfileResponse(p)
	}

	httpx.WriteJSON(w, http.StatusOK, ListResponse[ProfileResponse]{
		TotalItems: len(items),
		Items:      items,
		Page:       opts.Page.Page,
		Size:       opts.Page.Size,
	})
}

// HandleGet handles GET /v1/profiles/{id}
//
//	@Summary		Get profile by ID
//	@Tags			Profiles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Profile ID (ULID)"
//	@Success		200	{object}	ProfileResponse
//	@Failure		401	{object}	httpx.Error	"statusCode, message"
//	@Failure		403	{object}	httpx.Error	"statusCode, message"
//	@Failure		404	{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/profiles/{id} [get].
func (h *ProfilesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	profile, err := h.ProfileService.GetProfileByID(ctx, r.PathValue("id"))
	if err != nil {
		writeStoreError(w, log, err, "Profile not found")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

// HandleGetByUserID handles GET /v1/profiles/user/{userId}
//
//	@Summary		Get profile by user ID
//	@Tags			Profiles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userId	path		string	true	"User ID (ULID)"
//	@Success		200		{object}	ProfileResponse
//	@Failure		401		{object}	httpx.Error	"statusCode, message"
//	@Failure		403		{object}	httpx.Error	"statusCode, message"
//	@Failure		404		{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/profiles/user/{userId} [get].
func (h *ProfilesHandler) HandleGetByUserID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	profile, err := h.ProfileService.GetProfileByUserID(ctx, r.PathValue("userId"))
	if err != nil {
		writeStoreError(w, log, err, "Profile not found")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

// HandleUpdate handles PATCH /v1/profiles/{id}
//
//	@Summary		Update profile
//	@Description	Partially updates profile fields. Absent fields are left untouched.
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Profile ID (ULID)"
//	@Param			request	body		validate.UpdateProfileInput	true	"Fields to update"
//	@Success		200		{object}	ProfileResponse
//	@Failure		400		{object}	httpx.Error	"statusCode, message"
//	@Failure		401		{object}	httpx.Error	"statusCode, message"
//	@Failure		403		{object}	httpx.Error	"statusCode, message"
//	@Failure		404		{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/profiles/{id} [patch].
func (h *ProfilesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var in validate.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if v := validate.UpdateProfile(in); len(v) > 0 {
		writeViolations(w, v)
		return
	}

	profile, err := h.ProfileService.UpdateProfile(ctx, r.PathValue("id"), service.UpdateProfileParams{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Bio:        in.Bio,
		WorkoutIDs: in.WorkoutIDs,
		RoutineIDs: in.RoutineIDs,
	})
	if err != nil {
		writeStoreError(w, log, err, "Profile not found")
		return
	}

	log.Info("profile updated", "profile_id", profile.ID)
	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

// HandleDelete handles DELETE /v1/profiles/{id}
//
//	@Summary		Delete profile
//	@Description	Deletes the profile. The owning user account is NOT deleted with it.
//	@Tags			Profiles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Profile ID (ULID)"
//	@Success		204	"Profile deleted"
//	@Failure		401	{object}	httpx.Error	"statusCode, message"
//	@Failure		403	{object}	httpx.Error	"statusCode, message"
//	@Failure		404	{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/profiles/{id} [delete].
func (h *ProfilesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	if err := h.ProfileService.DeleteProfile(ctx, id); err != nil {
		writeStoreError(w, log, err, "Profile not found")
		return
	}

	log.Info("profile deleted", "profile_id", id)
	w.WriteHeader(http.StatusNoContent)
}
