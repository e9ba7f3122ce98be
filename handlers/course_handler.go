package handlers

import (
	"net/http"

	"github.com/garry1963/golf-society-manager-sub000/services"
)

type CourseHandler struct {
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CreateHandler handles POST /courses
func (h *CourseHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCourseInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	course, err := h.courseService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"course": course}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /courses/{courseID}
func (h *CourseHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "courseID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	course, err := h.courseService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"course": course}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /courses
func (h *CourseHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"courses": courses}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PATCH /courses/{courseID}
func (h *CourseHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "courseID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateCourseInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	course, err := h.courseService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"course": course}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /courses/{courseID}
func (h *CourseHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "courseID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.courseService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPhotoHandler handles PUT /courses/{courseID}/photo
func (h *CourseHandler) UploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "courseID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	contentType := r.Header.Get("Content-Type")
	course, err := h.courseService.UploadPhoto(r.Context(), id, r.Body, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"course": course}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
