package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/listing"
	"github.com/gymloop/accounts/internal/accounts/service"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/internal/accounts/validate"
	"github.com/gymloop/accounts/pkg/httpx"
	"github.com/gymloop/accounts/pkg/slogx"
)

// Allow-lists for the users list endpoint.
var (
	userSortProperties   = []string{"username"}
	userFilterProperties = []string{"username", "id", "role"}
)

// UsersHandler handles the admin-only user management endpoints.
type UsersHandler struct {
	UserService *service.UserService
	Store       store.Store
}

// HandleCreate handles POST /v1/users
//
//	@Summary		Create user
//	@Description	Creates a user with an arbitrary role. Admin only.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		validate.CreateUserInput	true	"User creation request"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	httpx.Error	"statusCode, message"
//	@Failure		401		{object}	httpx.Error	"statusCode, message"
//	@Failure		403		{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var in validate.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if v := validate.CreateUser(ctx, h.Store.Users(), in); len(v) > 0 {
		writeViolations(w, v)
		return
	}

	user, err := h.UserService.CreateUser(ctx, in.Username, in.Password, domain.Role(in.Role))
	if err != nil {
		writeStoreError(w, log, err, "User not found")
		return
	}

	log.Info("user created", "user_id", user.ID, "role", user.Role)
	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleList handles GET /v1/users
//
//	@Summary		List users
//	@Description	Returns a page of users. Supports page/size, sort by username, and filtering on username, id and role.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int		false	"Page number (1-based)"
//	@Param			size	query		int		false	"Page size (max 100)"
//	@Param			sort	query		string	false	"property:direction, e.g. username:asc"
//	@Param			filter	query		string	false	"property:rule:value, e.g. role:eq:ADMIN"
//	@Success		200		{object}	ListResponse[UserResponse]
//	@Failure		400		{object}	httpx.Error	"statusCode, message"
//	@Failure		401		{object}	httpx.Error	"statusCode, message"
//	@Failure		403		{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	opts, err := parseListOptions(r.URL.Query(), userSortProperties, userFilterProperties)
	if err != nil {
		if errors.Is(err, listing.ErrInvalid) {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeStoreError(w, log, err, "User not found")
		return
	}

	users, err := h.UserService.ListUsers(ctx, opts)
	if err != nil {
		writeStoreError(w, log, err, "User not found")
		return
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = toUserResponse(u)
	}

	httpx.WriteJSON(w, http.StatusOK, ListResponse[UserResponse]{
		TotalItems: len(items),
		Items:      items,
		Page:       opts.Page.Page,
		Size:       opts.Page.Size,
	})
}

// HandleGet handles GET /v1/users/{id}
//
//	@Summary		Get user by ID
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID (ULID)"
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	httpx.Error	"statusCode, message"
//	@Failure		403	{object}	httpx.Error	"statusCode, message"
//	@Failure		404	{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUserByID(ctx, r.PathValue("id"))
	if err != nil {
		writeStoreError(w, log, err, "User not found")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleGetByUsername handles GET /v1/users/username/{username}
//
//	@Summary		Get user by username
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			username	path		string	true	"Username"
//	@Success		200			{object}	UserResponse
//	@Failure		401			{object}	httpx.Error	"statusCode, message"
//	@Failure		403			{object}	httpx.Error	"statusCode, message"
//	@Failure		404			{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/users/username/{username} [get].
func (h *UsersHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUserByUsername(ctx, r.PathValue("username"))
	if err != nil {
		writeStoreError(w, log, err, "User not found")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleUpdate handles PATCH /v1/users/{id}
//
//	@Summary		Update user
//	@Description	Partially updates username, password or role. Absent fields are left untouched.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"User ID (ULID)"
//	@Param			request	body		validate.UpdateUserInput	true	"Fields to update"
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	httpx.Error	"statusCode, message"
//	@Failure		401		{object}	httpx.Error	"statusCode, message"
//	@Failure		403		{object}	httpx.Error	"statusCode, message"
//	@Failure		404		{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/users/{id} [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var in validate.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if v := validate.UpdateUser(ctx, h.Store.Users(), in); len(v) > 0 {
		writeViolations(w, v)
		return
	}

	params := service.UpdateUserParams{
		Username: in.Username,
		Password: in.Password,
	}
	if in.Role != nil {
		role := domain.Role(*in.Role)
		params.Role = &role
	}

	user, err := h.UserService.UpdateUser(ctx, r.PathValue("id"), params)
	if err != nil {
		writeStoreError(w, log, err, "User not found")
		return
	}

	log.Info("user updated", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleDelete handles DELETE /v1/users/{id}
//
//	@Summary		Delete user
//	@Description	Deletes the user. The user's profile is NOT deleted with it.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User ID (ULID)"
//	@Success		204	"User deleted"
//	@Failure		401	{object}	httpx.Error	"statusCode, message"
//	@Failure		403	{object}	httpx.Error	"statusCode, message"
//	@Failure		404	{object}	httpx.Error	"statusCode, message"
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	if err := h.UserService.DeleteUser(ctx, id); err != nil {
		writeStoreError(w, log, err, "User not found")
		return
	}

	log.Info("user deleted", "user_id", id)
	w.WriteHeader(http.StatusNoContent)
}
