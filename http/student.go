package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
	"github.com/go-chi/chi/v5"
)

// registerStudentRoutes registers all the routes of the student service.
func (s *Server) registerStudentRoutes(r chi.Router) {
	r.Get("/", s.handleGetStudents)
	r.Post("/", s.handleCreateStudent)
	r.Get("/{id}", s.handleGetStudent)
	r.Patch("/{id}", s.handleUpdateStudent)
	r.Delete("/{id}", s.handleDeleteStudent)
}

// GET "/students?q=&offset=&limit="
//
// handleGetStudents returns students matched by the optional name search,
// windowed by offset/limit.
func (s *Server) handleGetStudents(w http.ResponseWriter, r *http.Request) {
	var filter contoso.StudentFilter
	if q := r.URL.Query().Get("q"); q != "" {
		filter.Search = &q
	}
	if v, err := queryInt(r, "offset"); err != nil {
		SendErr(w, r, err)
		return
	} else if v != nil {
		filter.Offset = *v
	}
	if v, err := queryInt(r, "limit"); err != nil {
		SendErr(w, r, err)
		return
	} else if v != nil {
		filter.Limit = *v
	}

	students, err := s.StudentService.FindStudents(r.Context(), filter)
	if err != nil {
		SendErr(w, r, err)
		return
	}

	if err := WriteJSON(w, students); err != nil {
		LogError(r, err)
	}
}

// GET "/students/{id}"
//
// handleGetStudent gets the student with the provided id. returns 404 if the
// student isnt found.
func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid student id format"))
		return
	}

	student, err := s.StudentService.FindStudentByID(r.Context(), id)
	if err != nil {
		SendErr(w, r, err)
		return
	}

	if err := WriteJSON(w, student); err != nil {
		LogError(r, err)
	}
}

// POST "/students"
//
// handleCreateStudent parses a student from the request body and creates it.
func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var student contoso.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "decode: invalid request body"))
		return
	}

	if err := s.StudentService.CreateStudent(r.Context(), &student); err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventStudentCreated, student.ID, nil)

	w.WriteHeader(http.StatusCreated)
	if err := WriteJSON(w, student); err != nil {
		LogError(r, err)
	}
}

// PATCH "/students/{id}"
//
// handleUpdateStudent applies a partial update to the student.
func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid student id format"))
		return
	}

	var upd contoso.StudentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "decode: invalid request body"))
		return
	}

	student, err := s.StudentService.UpdateStudent(r.Context(), id, upd)
	if err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventStudentUpdated, id, nil)

	if err := WriteJSON(w, student); err != nil {
		LogError(r, err)
	}
}

// DELETE "/students/{id}"
//
// handleDeleteStudent permanently deletes the student with the provided id
// together with its enrollments. returns 404 if the student isnt found and
// 204 if the delete is successful.
func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid student id format"))
		return
	}

	if err := s.StudentService.DeleteStudent(r.Context(), id); err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventStudentDeleted, id, nil)

	w.WriteHeader(http.StatusNoContent)
}
