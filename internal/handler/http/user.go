package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

// Me implements UserHandler.
func (h *userHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.Me(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, result)
}

// List implements UserHandler. GET /organizations/{organization_id}/users?role=
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "organization_id", organization.ErrOrganizationNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	filter := user.UserFilter{OrganizationID: orgID}
	if role := r.URL.Query().Get("role"); role != "" {
		parsed := user.Role(role)
		filter.Role = &parsed
	}
	filter.Page, filter.PerPage = pageParams(r)

	result, err := h.userService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Paginated(w, result.Users, response.Meta{
		Page:       result.Page,
		PerPage:    result.PerPage,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Create implements UserHandler. POST /organizations/{organization_id}/users
func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "organization_id", organization.ErrOrganizationNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	var req user.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, r)
		return
	}
	req.OrganizationID = orgID

	result, err := h.userService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Created(w, result)
}

// Get implements UserHandler.
func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", user.ErrUserNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	result, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, result)
}

// Update implements UserHandler.
func (h *userHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", user.ErrUserNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	var req user.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, r)
		return
	}
	req.ID = id

	result, err := h.userService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, result)
}

// Delete implements UserHandler.
func (h *userHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", user.ErrUserNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.NoContent(w)
}
