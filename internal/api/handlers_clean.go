package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgallion1/cleanfile/internal/cleaner"
	"github.com/dgallion1/cleanfile/internal/inspect"
	"github.com/dgallion1/cleanfile/internal/parser"
	"github.com/dgallion1/cleanfile/internal/pipeline"
)

// handleClean cleans an uploaded document synchronously and returns the PDF.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	res, err := s.cleaner.Process(data, filename)
	if err != nil {
		s.log.Info().Err(err).Str("file", filename).Msg("clean failed")
		processError(w, err)
		return
	}

	discarded := "none"
	if res.Report != nil && !res.Report.Clean() {
		discarded = strings.Join(res.Report.Findings(), ",")
	}
	writePDF(w, s.cfg.OutputFilename, res.PDF)
	w.Header().Set("X-Cleanfile-Pages", strconv.Itoa(res.Pages))
	w.Header().Set("X-Cleanfile-Discarded", discarded)
	w.WriteHeader(http.StatusOK)
	w.Write(res.PDF)
}

type inspectResponse struct {
	*inspect.Report
	Findings []string `json:"findings"`
	Clean    bool     `json:"clean"`
}

// handleInspect reports the active content of an uploaded PDF.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	if !parser.IsPDF(filename) {
		jsonError(w, "inspect accepts only PDF files", http.StatusUnsupportedMediaType)
		return
	}

	report, err := inspect.Scan(data)
	if err != nil {
		jsonError(w, cleaner.UserMessage(err), http.StatusUnprocessableEntity)
		return
	}
	findings := report.Findings()
	if findings == nil {
		findings = []string{}
	}
	writeJSON(w, http.StatusOK, inspectResponse{
		Report:   report,
		Findings: findings,
		Clean:    report.Clean(),
	})
}

// processError maps a cleaner error to its HTTP status.
func processError(w http.ResponseWriter, err error) {
	var extErr *cleaner.ExtractionError
	switch {
	case errors.Is(err, parser.ErrUnsupportedType):
		jsonError(w, err.Error(), http.StatusUnsupportedMediaType)
	case errors.Is(err, cleaner.ErrNoReadableText), errors.As(err, &extErr):
		jsonError(w, cleaner.UserMessage(err), http.StatusUnprocessableEntity)
	default:
		jsonError(w, cleaner.UserMessage(err), http.StatusInternalServerError)
	}
}

// writePDF sets the headers for a PDF attachment. The caller writes the
// status and body.
func writePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.Header().Set("ETag", strconv.Quote(pipeline.ContentHashHex(pdf)))
}
