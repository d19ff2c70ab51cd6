package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
	"github.com/go-chi/chi/v5"
)

// registerDepartmentRoutes registers all the routes of the department
// service.
func (s *Server) registerDepartmentRoutes(r chi.Router) {
	r.Get("/", s.handleGetDepartments)
	r.Post("/", s.handleCreateDepartment)
	r.Get("/{id}", s.handleGetDepartment)
	r.Patch("/{id}", s.handleUpdateDepartment)
	r.Delete("/{id}", s.handleDeleteDepartment)
}

// GET "/departments"
//
// handleGetDepartments returns all departments.
func (s *Server) handleGetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := s.DepartmentService.FindDepartments(r.Context())
	if err != nil {
		SendErr(w, r, err)
		return
	}

	if err := WriteJSON(w, departments); err != nil {
		LogError(r, err)
	}
}

// GET "/departments/{id}"
//
// handleGetDepartment gets the department with the provided id. returns 404
// if the department isnt found.
func (s *Server) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid department id format"))
		return
	}

	department, err := s.DepartmentService.FindDepartmentByID(r.Context(), id)
	if err != nil {
		SendErr(w, r, err)
		return
	}

	if err := WriteJSON(w, department); err != nil {
		LogError(r, err)
	}
}

// POST "/departments"
//
// handleCreateDepartment parses a department from the request body and
// creates it.
func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var department contoso.Department
	if err := json.NewDecoder(r.Body).Decode(&department); err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "decode: invalid request body"))
		return
	}

	if err := s.DepartmentService.CreateDepartment(r.Context(), &department); err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventDepartmentCreated, department.ID, nil)

	w.WriteHeader(http.StatusCreated)
	if err := WriteJSON(w, department); err != nil {
		LogError(r, err)
	}
}

// PATCH "/departments/{id}"
//
// handleUpdateDepartment applies a partial update to the department. The
// administrator is set through administrator_id and cleared through
// remove_administrator.
func (s *Server) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid department id format"))
		return
	}

	var upd contoso.DepartmentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "decode: invalid request body"))
		return
	}

	department, err := s.DepartmentService.UpdateDepartment(r.Context(), id, upd)
	if err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventDepartmentUpdated, id, nil)

	if err := WriteJSON(w, department); err != nil {
		LogError(r, err)
	}
}

// DELETE "/departments/{id}"
//
// handleDeleteDepartment permanently deletes the department with the provided
// id. returns 404 if the department isnt found, 409 while courses still
// belong to it and 204 if the delete is successful.
func (s *Server) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid department id format"))
		return
	}

	if err := s.DepartmentService.DeleteDepartment(r.Context(), id); err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventDepartmentDeleted, id, nil)

	w.WriteHeader(http.StatusNoContent)
}
