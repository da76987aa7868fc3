package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type OrganizationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type organizationHandlerImpl struct {
	organizationService organization.OrganizationService
}

func NewOrganizationHandler(organizationService organization.OrganizationService) OrganizationHandler {
	return &organizationHandlerImpl{
		organizationService: organizationService,
	}
}

// List implements OrganizationHandler.
func (h *organizationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter organization.OrganizationFilter
	filter.Page, filter.PerPage = pageParams(r)

	result, err := h.organizationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Paginated(w, result.Organizations, response.Meta{
		Page:       result.Page,
		PerPage:    result.PerPage,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Create implements OrganizationHandler.
func (h *organizationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req organization.CreateOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, r)
		return
	}

	result, err := h.organizationService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Created(w, result)
}

// Get implements OrganizationHandler.
func (h *organizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "organization_id", organization.ErrOrganizationNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	result, err := h.organizationService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, result)
}

// Update implements OrganizationHandler.
func (h *organizationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "organization_id", organization.ErrOrganizationNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	var req organization.UpdateOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, r)
		return
	}
	req.ID = id

	result, err := h.organizationService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, result)
}

// Delete implements OrganizationHandler.
func (h *organizationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "organization_id", organization.ErrOrganizationNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	if err := h.organizationService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.NoContent(w)
}
