package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
	"github.com/go-chi/chi/v5"
)

// registerCourseRoutes registers all the routes of the course catalog.
func (s *Server) registerCourseRoutes(r chi.Router) {
	r.Get("/", s.handleGetCourses)
	r.Post("/", s.handleCreateCourse)
	r.Get("/{id}", s.handleGetCourse)
	r.Patch("/{id}", s.handleUpdateCourse)
	r.Delete("/{id}", s.handleDeleteCourse)
}

// GET "/courses?departmentId=&q="
//
// handleGetCourses returns courses, optionally filtered by department and
// title substring.
func (s *Server) handleGetCourses(w http.ResponseWriter, r *http.Request) {
	var filter contoso.CourseFilter
	departmentID, err := queryInt(r, "departmentId")
	if err != nil {
		SendErr(w, r, err)
		return
	}
	filter.DepartmentID = departmentID
	if q := r.URL.Query().Get("q"); q != "" {
		filter.Title = &q
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

	courses, err := s.CourseService.FindCourses(r.Context(), filter)
	if err != nil {
		SendErr(w, r, err)
		return
	}

	if err := WriteJSON(w, courses); err != nil {
		LogError(r, err)
	}
}

// GET "/courses/{id}"
//
// handleGetCourse gets the course with the provided id. returns 404 if the
// course isnt found.
func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid course id format"))
		return
	}

	course, err := s.CourseService.FindCourseByID(r.Context(), id)
	if err != nil {
		SendErr(w, r, err)
		return
	}

	if err := WriteJSON(w, course); err != nil {
		LogError(r, err)
	}
}

// POST "/courses"
//
// handleCreateCourse parses a course from the request body and creates it
// under its caller-chosen course number. returns 409 if the number is taken.
func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var course contoso.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "decode: invalid request body"))
		return
	}

	if err := s.CourseService.CreateCourse(r.Context(), &course); err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventCourseCreated, course.ID, nil)

	w.WriteHeader(http.StatusCreated)
	if err := WriteJSON(w, course); err != nil {
		LogError(r, err)
	}
}

// PATCH "/courses/{id}"
//
// handleUpdateCourse applies a partial update to the course.
func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid course id format"))
		return
	}

	var upd contoso.CourseUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "decode: invalid request body"))
		return
	}

	course, err := s.CourseService.UpdateCourse(r.Context(), id, upd)
	if err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventCourseUpdated, id, nil)

	if err := WriteJSON(w, course); err != nil {
		LogError(r, err)
	}
}

// DELETE "/courses/{id}"
//
// handleDeleteCourse permanently deletes the course with the provided id
// along with its assignment links and enrollments. returns 404 if the course
// isnt found and 204 if the delete is successful.
func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid course id format"))
		return
	}

	if err := s.CourseService.DeleteCourse(r.Context(), id); err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventCourseDeleted, id, nil)

	w.WriteHeader(http.StatusNoContent)
}
