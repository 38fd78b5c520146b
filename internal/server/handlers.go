// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geojson/internal/codec"
	geoerrors "github.com/woozymasta/geojson/internal/errors"
	"github.com/woozymasta/geojson/internal/format"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// HandleGeometry decodes the request body as one geometry or an array of
// geometries, validates it and writes it back in normalized form.
//
// Query parameters: target (Geometry, Point, LineString, Polygon) and
// format (json, yaml, wkb-hex) for the response.
func (s *ServerContext) HandleGeometry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	target := codec.Target(r.URL.Query().Get("target"))
	if target == "" {
		target = codec.TargetGeometry
	}

	out := format.Format(r.URL.Query().Get("format"))
	switch out {
	case "":
		out = format.JSON
	case format.JSON, format.YAML, format.WKBHex:
	default:
		s.writeError(w, http.StatusBadRequest, "request", errors.Errorf("unknown format %q", out))
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.Config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request", err)
			return
		}
		s.writeError(w, http.StatusBadRequest, "request", err)
		return
	}

	c := s.newCodec()
	doc, err := format.Read(c, data, inputFormat(r), target)
	if err != nil {
		s.writeDecodeError(w, err)
		return
	}

	body, err := format.NewWriter(out, s.Config.Minify).Write(c, doc)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "encode", err)
		return
	}

	log.Debug().
		Int("geometries", len(doc.Geometries)).
		Int("crs_definitions", c.Table().Len()).
		Str("target", string(target)).
		Msg("Geometry document normalized")

	w.Header().Set("Content-Type", contentType(out))
	_, _ = w.Write(body)
}

// HandleHealth reports liveness.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func inputFormat(r *http.Request) format.Format {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return format.Auto
	}
	switch mt {
	case "application/json", "application/geo+json":
		return format.JSON
	case "application/yaml", "application/x-yaml", "text/yaml":
		return format.YAML
	case "text/plain":
		return format.WKBHex
	}
	return format.Auto
}

func contentType(f format.Format) string {
	switch f {
	case format.YAML:
		return "application/yaml"
	case format.WKBHex:
		return "text/plain; charset=utf-8"
	}
	return "application/geo+json"
}

func (s *ServerContext) writeDecodeError(w http.ResponseWriter, err error) {
	switch {
	case geoerrors.IsUnsupported(err):
		s.writeError(w, http.StatusUnsupportedMediaType, "unsupported", err)
	case geoerrors.IsConstruction(err):
		s.writeError(w, http.StatusUnprocessableEntity, "construction", err)
	case geoerrors.IsParse(err):
		s.writeError(w, http.StatusBadRequest, "parse", err)
	default:
		s.writeError(w, http.StatusBadRequest, "request", err)
	}
}

func (s *ServerContext) writeError(w http.ResponseWriter, status int, kind string, err error) {
	log.Warn().
		Err(err).
		Int("status", status).
		Str("kind", kind).
		Msg("Rejected geometry request")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error(), Kind: kind})
}
