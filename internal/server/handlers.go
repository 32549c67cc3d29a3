package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/polyskel/pkg/cache"
	"github.com/matzehuels/polyskel/pkg/errors"
	"github.com/matzehuels/polyskel/pkg/geom"
	"github.com/matzehuels/polyskel/pkg/pipeline"
	"github.com/matzehuels/polyskel/pkg/skeleton"
	"github.com/matzehuels/polyskel/pkg/store"
)

// createRequest is the POST /skeletons request body.
type createRequest struct {
	Polygon           geom.Polygon `json:"polygon"`
	Strategy          string       `json:"strategy,omitempty"`
	Tolerance         float64      `json:"tolerance,omitempty"`
	KeepExteriorEdges bool         `json:"keep_exterior_edges,omitempty"`
	Refresh           bool         `json:"refresh,omitempty"`
}

// skeletonResponse is the JSON representation of a stored skeleton.
type skeletonResponse struct {
	ID          string            `json:"id"`
	Strategy    string            `json:"strategy"`
	NodeCount   int               `json:"node_count"`
	EdgeCount   int               `json:"edge_count"`
	Polygon     geom.Polygon      `json:"polygon"`
	Skeleton    skeleton.Skeleton `json:"skeleton"`
	Path        []geom.Point      `json:"path,omitempty"`
	Branches    [][]geom.Point    `json:"branches,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	CacheHit    bool              `json:"cache_hit,omitempty"`
	ComputeTime string            `json:"compute_time,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateSkeleton(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	opts := pipeline.Options{
		Polygon:           req.Polygon,
		Strategy:          req.Strategy,
		Tolerance:         req.Tolerance,
		KeepExteriorEdges: req.KeepExteriorEdges,
		Refresh:           req.Refresh,
		Formats:           []string{pipeline.FormatJSON},
		Logger:            s.logger,
	}
	start := time.Now()
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	polyData, err := geom.MarshalPolygon(req.Polygon)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidPolygon, err, "serialize polygon"))
		return
	}

	doc := store.SkeletonDocument{
		ID:          uuid.NewString(),
		PolygonHash: cache.Hash(polyData),
		Strategy:    opts.ParsedStrategy().String(),
		Polygon:     req.Polygon,
		Skeleton:    result.Skeleton,
		NodeCount:   result.Stats.NodeCount,
		EdgeCount:   result.Stats.EdgeCount,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := docResponse(doc)
	resp.Path = result.Analysis.Path
	resp.Branches = result.Analysis.Branches
	resp.CacheHit = result.CacheInfo.SkeletonHit
	resp.ComputeTime = time.Since(start).String()
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSkeleton(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := docResponse(doc)
	resp.Path = doc.Skeleton.LongestPath()
	resp.Branches = doc.Skeleton.Branches()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSkeletons(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", raw))
			return
		}
		limit = n
	}

	docs, err := s.store.ListRecent(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]skeletonResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, docResponse(doc))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRenderSkeleton(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Polygon:  doc.Polygon,
		Strategy: doc.Strategy,
		Formats:  []string{format},
		Logger:   s.logger,
	}
	if style := r.URL.Query().Get("style"); style != "" {
		opts.Style = style
	}

	analysis, err := s.runner.Analyze(r.Context(), doc.Skeleton, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), doc.Skeleton, analysis, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleDeleteSkeleton(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Helpers =====

func docResponse(doc store.SkeletonDocument) skeletonResponse {
	return skeletonResponse{
		ID:        doc.ID,
		Strategy:  doc.Strategy,
		NodeCount: doc.NodeCount,
		EdgeCount: doc.EdgeCount,
		Polygon:   doc.Polygon,
		Skeleton:  doc.Skeleton,
		CreatedAt: doc.CreatedAt,
	}
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/json"
	}
}

func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPolygon,
		errors.ErrCodeInvalidStrategy, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound,
		errors.ErrCodeSkeletonNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStoreDenied:
		return http.StatusForbidden
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusForCode(code)
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}

	var resp errorResponse
	resp.Error.Code = string(code)
	resp.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
