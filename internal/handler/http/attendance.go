package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListByOrganization(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.CheckIn(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Created(w, result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, result)
}

// ListByEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r, "employee_id", attendance.ErrEmployeeNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	var filter attendance.AttendanceFilter
	filter.Page, filter.PerPage = pageParams(r)

	result, err := h.attendanceService.ListByEmployee(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	writeAttendancePage(w, result)
}

// ListByOrganization implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "organization_id", organization.ErrOrganizationNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	var filter attendance.AttendanceFilter
	filter.Page, filter.PerPage = pageParams(r)

	result, err := h.attendanceService.ListByOrganization(r.Context(), orgID, filter)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	writeAttendancePage(w, result)
}

func writeAttendancePage(w http.ResponseWriter, result attendance.ListAttendanceResponse) {
	response.Paginated(w, result.Attendances, response.Meta{
		Page:       result.Page,
		PerPage:    result.PerPage,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Create implements AttendanceHandler.
func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r, "employee_id", attendance.ErrEmployeeNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	var req attendance.CreateAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, r)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.attendanceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Created(w, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", attendance.ErrAttendanceNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	result, err := h.attendanceService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", attendance.ErrAttendanceNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	var req attendance.UpdateAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, r)
		return
	}
	req.ID = id

	result, err := h.attendanceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", attendance.ErrAttendanceNotFound)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.NoContent(w)
}
