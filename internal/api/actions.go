package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"stylometer/internal/config"
	"stylometer/internal/db"
	"stylometer/internal/merror"
	"stylometer/internal/similarity"
	"stylometer/internal/store"
	"stylometer/internal/textmodel"
)

type Actions struct {
	cfg    config.Config
	logger zerolog.Logger

	// writeMu serialises read-modify-write cycles on stored models.
	writeMu sync.Mutex
}

func NewActions(cfg config.Config, logger zerolog.Logger) *Actions {
	return &Actions{cfg: cfg, logger: logger}
}

type modelInfo struct {
	Name     string         `json:"name"`
	Distinct map[string]int `json:"distinct"`
	Tokens   int            `json:"tokens"`
}

func describe(m *textmodel.Model) modelInfo {
	info := modelInfo{
		Name:     m.Name,
		Distinct: make(map[string]int, len(textmodel.Features)),
		Tokens:   m.Words.Total(),
	}
	for _, f := range textmodel.Features {
		info.Distinct[f.String()] = m.Distinct(f)
	}
	return info
}

type classifyRequest struct {
	Unknown     string    `json:"unknown"`
	UnknownText string    `json:"unknown_text"`
	Candidates  [2]string `json:"candidates"`
	Record      bool      `json:"record"`
}

type classifyResponse struct {
	similarity.Result
	RunID string `json:"run_id,omitempty"`
}

func (a *Actions) ListModels(ctx *gin.Context) {
	names, err := store.List(a.cfg.ModelDir)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	uniresp.WriteJSONResponse(ctx.Writer, names)
}

func (a *Actions) ModelInfo(ctx *gin.Context) {
	m, err := store.Read(a.cfg.ModelDir, ctx.Param("name"))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, statusFor(err))
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, describe(m))
}

// AddText ingests the raw request body into the named model, creating the
// model when it does not exist yet.
func (a *Actions) AddText(ctx *gin.Context) {
	name := ctx.Param("name")
	if err := store.ValidateName(name); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, a.cfg.API.MaxTextBytes))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("read body: %w", err), http.StatusRequestEntityTooLarge)
		return
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	m := textmodel.New(name)
	if store.Exists(a.cfg.ModelDir, name) {
		m, err = store.Read(a.cfg.ModelDir, name)
		if err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, statusFor(err))
			return
		}
	}
	m.AddString(string(body))
	if err := store.Save(a.cfg.ModelDir, m); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, statusFor(err))
		return
	}
	a.logger.Info().Str("model", name).Int("bytes", len(body)).Msg("text added to model")
	uniresp.WriteJSONResponse(ctx.Writer, describe(m))
}

func (a *Actions) Classify(ctx *gin.Context) {
	var req classifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("decode request: %w", err), http.StatusBadRequest)
		return
	}

	var unknown *textmodel.Model
	switch {
	case req.UnknownText != "":
		name := req.Unknown
		if name == "" {
			name = "unknown text"
		}
		unknown = textmodel.New(name)
		unknown.AddString(req.UnknownText)
	case req.Unknown != "":
		var err error
		unknown, err = store.Read(a.cfg.ModelDir, req.Unknown)
		if err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, statusFor(err))
			return
		}
	default:
		uniresp.RespondWithErrorJSON(ctx, errors.New("either unknown or unknown_text is required"), http.StatusBadRequest)
		return
	}

	var candidates [2]*textmodel.Model
	for i, name := range req.Candidates {
		m, err := store.Read(a.cfg.ModelDir, name)
		if err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, statusFor(err))
			return
		}
		candidates[i] = m
	}

	result, err := similarity.Classify(unknown, candidates[0], candidates[1])
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, statusFor(err))
		return
	}

	resp := classifyResponse{Result: result}
	if req.Record {
		resp.RunID, err = db.RecordClassification(a.cfg.CatalogPath, result)
		if err != nil {
			a.logger.Error().Err(err).Msg("failed to record classification")
			uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
			return
		}
	}
	a.logger.Info().
		Str("unknown", result.Unknown).
		Str("winner", result.Winner).
		Msg("classified text")
	uniresp.WriteJSONResponse(ctx.Writer, resp)
}

func (a *Actions) History(ctx *gin.Context) {
	limit := 20
	if raw := ctx.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		limit = v
	}
	records, err := db.ListClassifications(a.cfg.CatalogPath, limit)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	out := make([]classifyResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, classifyResponse{Result: rec.Result, RunID: rec.ID})
	}
	uniresp.WriteJSONResponse(ctx.Writer, out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, merror.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, merror.ErrUnavailable):
		return http.StatusNotFound
	case errors.Is(err, similarity.ErrEmptyReference):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
