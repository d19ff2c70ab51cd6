package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
	"github.com/Taher-PIO/contoso-migrate-sub002/instructors"
	"github.com/go-chi/chi/v5"
)

// registerInstructorRoutes registers all the routes of the instructor
// feature.
func (s *Server) registerInstructorRoutes(r chi.Router) {
	// the assembled master/detail view.
	r.Get("/view", s.handleInstructorView)

	// CRUD methods.
	r.Get("/", s.handleGetInstructors)
	r.Post("/", s.handleCreateInstructor)
	r.Get("/{id}", s.handleGetInstructor)
	r.Patch("/{id}", s.handleUpdateInstructor)
	r.Delete("/{id}", s.handleDeleteInstructor)

	// assignment selection state and reconciliation.
	r.Get("/{id}/courses", s.handleGetCourseSelection)
	r.Put("/{id}/courses", s.handleReconcileCourses)
}

// GET "/instructors/{id}/courses"
//
// handleGetCourseSelection returns one row per catalog course flagged with
// the instructor's current assignment state, the data behind the edit page
// checkbox list.
func (s *Server) handleGetCourseSelection(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid instructor id format"))
		return
	}

	instructor, err := s.InstructorService.FindInstructorByID(r.Context(), id)
	if err != nil {
		SendErr(w, r, err)
		return
	}

	catalog, err := s.CourseService.FindCourses(r.Context(), contoso.CourseFilter{})
	if err != nil {
		SendErr(w, r, err)
		return
	}

	if err := WriteJSON(w, instructors.CourseSelection(instructor, catalog)); err != nil {
		LogError(r, err)
	}
}

// GET "/instructors/view?id=&courseId="
//
// handleInstructorView assembles the instructor drill-down for the requested
// depth. Both selectors are optional; stale or inconsistent selectors degrade
// to the shallower view with warnings instead of erroring.
func (s *Server) handleInstructorView(w http.ResponseWriter, r *http.Request) {
	instructorID, err := queryInt(r, "id")
	if err != nil {
		SendErr(w, r, err)
		return
	}
	courseID, err := queryInt(r, "courseId")
	if err != nil {
		SendErr(w, r, err)
		return
	}

	view, err := s.ViewService.AssembleInstructorView(r.Context(), contoso.ViewSelectors{
		InstructorID: instructorID,
		CourseID:     courseID,
	})
	if err != nil {
		SendErr(w, r, err)
		return
	}

	if err := WriteJSON(w, view); err != nil {
		LogError(r, err)
	}
}

// GET "/instructors"
//
// handleGetInstructors returns the instructor list, optionally windowed by
// offset/limit query parameters.
func (s *Server) handleGetInstructors(w http.ResponseWriter, r *http.Request) {
	var filter contoso.InstructorFilter
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

	instructors, err := s.InstructorService.FindInstructors(r.Context(), filter)
	if err != nil {
		SendErr(w, r, err)
		return
	}

	if err := WriteJSON(w, instructors); err != nil {
		LogError(r, err)
	}
}

// GET "/instructors/{id}"
//
// handleGetInstructor gets the instructor with the provided id. returns 404
// if the instructor isnt found.
func (s *Server) handleGetInstructor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid instructor id format"))
		return
	}

	instructor, err := s.InstructorService.FindInstructorByID(r.Context(), id)
	if err != nil {
		SendErr(w, r, err)
		return
	}

	if err := WriteJSON(w, instructor); err != nil {
		LogError(r, err)
	}
}

// POST "/instructors"
//
// handleCreateInstructor parses an instructor from the request body and
// creates it. Course assignments submitted here are ignored, they belong to
// the reconcile endpoint.
func (s *Server) handleCreateInstructor(w http.ResponseWriter, r *http.Request) {
	var instructor contoso.Instructor
	if err := json.NewDecoder(r.Body).Decode(&instructor); err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "decode: invalid request body"))
		return
	}

	if err := s.InstructorService.CreateInstructor(r.Context(), &instructor); err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventInstructorCreated, instructor.ID, nil)

	w.WriteHeader(http.StatusCreated)
	if err := WriteJSON(w, instructor); err != nil {
		LogError(r, err)
	}
}

// PATCH "/instructors/{id}"
//
// handleUpdateInstructor applies a partial update to the instructor. The
// office assignment is set through office_location and cleared through
// remove_office, neither touches the course assignments.
func (s *Server) handleUpdateInstructor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid instructor id format"))
		return
	}

	var upd contoso.InstructorUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "decode: invalid request body"))
		return
	}

	instructor, err := s.InstructorService.UpdateInstructor(r.Context(), id, upd)
	if err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventInstructorUpdated, id, nil)

	if err := WriteJSON(w, instructor); err != nil {
		LogError(r, err)
	}
}

// DELETE "/instructors/{id}"
//
// handleDeleteInstructor permanently deletes the instructor with the provided
// id. returns 404 if the instructor isnt found and 204 if the delete is
// successful.
func (s *Server) handleDeleteInstructor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid instructor id format"))
		return
	}

	if err := s.InstructorService.DeleteInstructor(r.Context(), id); err != nil {
		SendErr(w, r, err)
		return
	}
	s.publish(contoso.EventInstructorDeleted, id, nil)

	w.WriteHeader(http.StatusNoContent)
}

// reconcileRequest is the body of the reconcile endpoint. CourseIDs keeps the
// decoded nil/empty distinction: an absent field means no selection was
// submitted, an empty array means everything was deselected.
type reconcileRequest struct {
	CourseIDs []int `json:"course_ids"`
}

// PUT "/instructors/{id}/courses"
//
// handleReconcileCourses makes the instructor's course assignments match the
// submitted selection and returns what changed. Unknown course ids end up in
// the result warnings, they dont fail the request.
func (s *Server) handleReconcileCourses(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "invalid instructor id format"))
		return
	}

	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErr(w, r, contoso.Errorf(contoso.EINVALID, "decode: invalid request body"))
		return
	}

	instructor, err := s.InstructorService.FindInstructorByID(r.Context(), id)
	if err != nil {
		SendErr(w, r, err)
		return
	}

	result, err := s.AssignmentService.ReconcileCourses(r.Context(), instructor, req.CourseIDs)
	if err != nil {
		SendErr(w, r, err)
		return
	}
	if result.Changed() {
		s.publish(contoso.EventCoursesReconciled, id, result)
	}

	if err := WriteJSON(w, result); err != nil {
		LogError(r, err)
	}
}
