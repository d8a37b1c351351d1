package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vedanga/jyotish/pkg/astro/dasha"
	"github.com/vedanga/jyotish/pkg/errors"
	"github.com/vedanga/jyotish/pkg/pipeline"
)

// chartResponse is the body of POST /v1/chart.
type chartResponse struct {
	JulianDay float64        `json:"julian_day"`
	Chart     pipeline.Chart `json:"chart"`
}

// dashaResponse is the body of POST /v1/dasha.
type dashaResponse struct {
	JulianDay float64        `json:"julian_day"`
	System    string         `json:"system"`
	Periods   []dasha.Period `json:"periods"`
	Current   []dasha.Period `json:"current"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	set, err := s.runner.Positions(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	chart, err := s.runner.BuildChart(r.Context(), set, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, chartResponse{JulianDay: set.JulianDay, Chart: chart})
}

func (s *Server) handleDasha(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	set, err := s.runner.Positions(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var tree []dasha.Period
	switch opts.System {
	case pipeline.SystemChara:
		chart, err := s.runner.BuildChart(r.Context(), set, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		tree, err = s.runner.Chara(r.Context(), set, chart, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	default:
		tree, err = s.runner.Vimshottari(r.Context(), set, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	current, err := dasha.At(tree, set.Moment.UTC())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dashaResponse{
		JulianDay: set.JulianDay,
		System:    opts.System,
		Periods:   tree,
		Current:   current,
	})
}

func (s *Server) handlePanchang(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	set, err := s.runner.Positions(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	day, err := s.runner.Panchang(r.Context(), set)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, day)
}

// decodeOptions parses and validates the request body. On failure it writes
// a 400 and returns ok=false.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
		return opts, false
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return opts, false
	}
	return opts, true
}

// writeError maps a typed error onto an HTTP status and the JSON envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", reqID(r.Context()), "code", code, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// statusFor picks the HTTP status for an error code. Validation errors are
// the client's fault, ephemeris outages are the upstream's.
func statusFor(code errors.Code) int {
	switch {
	case strings.HasPrefix(string(code), "INVALID_"), code == errors.ErrCodeUnsupportedBody:
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeEphemeris:
		return http.StatusBadGateway
	case code == errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
