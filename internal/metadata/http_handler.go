package metadata

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"thothexport/internal/exporterr"
	"thothexport/internal/httpx"
	"thothexport/internal/work"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Register mounts the export routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /specifications", h.ListSpecifications)
	mux.HandleFunc("GET /specifications/{specificationId}", h.GetSpecification)
	mux.HandleFunc("GET /specifications/{specificationId}/work/{workId}", h.WorkRecord)
	mux.HandleFunc("GET /specifications/{specificationId}/publisher/{publisherId}", h.PublisherRecord)
}

type workParams struct {
	SpecificationID string `validate:"required,specification"`
	WorkID          string `validate:"required,uuid"`
}

type publisherParams struct {
	SpecificationID string `validate:"required,specification"`
	PublisherID     string `validate:"required,uuid"`
}

// ListSpecifications handles GET /specifications
// @Summary List export specifications
// @Tags specifications
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /specifications [get]
func (h *HTTPHandler) ListSpecifications(w http.ResponseWriter, r *http.Request) {
	specs := Specifications()
	httpx.JSONSuccessWithRequest(r, w, specs, map[string]any{"total": len(specs)})
}

// GetSpecification handles GET /specifications/{specificationId}
// @Summary Get an export specification
// @Tags specifications
// @Produce json
// @Param specificationId path string true "Specification id, e.g. onix_3.0::project_muse"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /specifications/{specificationId} [get]
func (h *HTTPHandler) GetSpecification(w http.ResponseWriter, r *http.Request) {
	spec, err := ParseSpecification(r.PathValue("specificationId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, spec, nil)
}

// WorkRecord handles GET /specifications/{specificationId}/work/{workId}
// @Summary Export the metadata record of a work
// @Tags records
// @Produce xml
// @Produce text/csv
// @Param specificationId path string true "Specification id"
// @Param workId path string true "Work UUID"
// @Success 200 {file} file
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 501 {object} httpx.ErrorResponse
// @Router /specifications/{specificationId}/work/{workId} [get]
func (h *HTTPHandler) WorkRecord(w http.ResponseWriter, r *http.Request) {
	params := workParams{
		SpecificationID: r.PathValue("specificationId"),
		WorkID:          r.PathValue("workId"),
	}
	if !h.validate(w, r, params, params.SpecificationID) {
		return
	}

	rec, err := h.svc.WorkRecord(r.Context(), params.SpecificationID, uuid.MustParse(params.WorkID))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeRecord(w, rec)
}

// PublisherRecord handles GET /specifications/{specificationId}/publisher/{publisherId}
// @Summary Export the metadata records of every work of a publisher
// @Tags records
// @Produce xml
// @Produce text/csv
// @Param specificationId path string true "Specification id"
// @Param publisherId path string true "Publisher UUID"
// @Success 200 {file} file
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /specifications/{specificationId}/publisher/{publisherId} [get]
func (h *HTTPHandler) PublisherRecord(w http.ResponseWriter, r *http.Request) {
	params := publisherParams{
		SpecificationID: r.PathValue("specificationId"),
		PublisherID:     r.PathValue("publisherId"),
	}
	if !h.validate(w, r, params, params.SpecificationID) {
		return
	}

	rec, err := h.svc.PublisherRecord(r.Context(), params.SpecificationID, uuid.MustParse(params.PublisherID))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeRecord(w, rec)
}

// validate writes the error response itself and reports whether to carry on.
// A malformed specification id is reported like an unknown one.
func (h *HTTPHandler) validate(w http.ResponseWriter, r *http.Request, params interface{}, specID string) bool {
	details := httpx.ValidateStruct(params)
	if len(details) == 0 {
		return true
	}
	for _, d := range details {
		if d.Field == "specificationID" {
			h.writeError(w, r, &exporterr.InvalidSpecificationError{Name: specID})
			return false
		}
	}
	httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid identifier", details)
	return false
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *exporterr.InvalidSpecificationError
	var incomplete *exporterr.IncompleteRecordError

	switch {
	case errors.As(err, &invalid):
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "INVALID_SPECIFICATION", invalid.Error(), nil)
	case errors.Is(err, work.ErrNotFound):
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Work not found", nil)
	case errors.As(err, &incomplete):
		httpx.JSONErrorWithRequest(r, w, http.StatusUnprocessableEntity, "INCOMPLETE_METADATA_RECORD", incomplete.Error(), nil)
	case errors.Is(err, exporterr.ErrNotImplemented):
		httpx.JSONErrorWithRequest(r, w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Specification not yet implemented", nil)
	default:
		log.Printf("export error request_id=%s path=%s error=%v", httpx.RequestIDFrom(r), r.URL.Path, err)
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

func writeRecord(w http.ResponseWriter, rec Record) {
	w.Header().Set("Content-Type", rec.ContentType())
	w.Header().Set("Content-Disposition", rec.ContentDisposition())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rec.Body); err != nil {
		log.Printf("write record failed filename=%s error=%v", rec.Filename, err)
	}
}
