package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rci-tools/rcigen/pkg/artifact"
	"github.com/rci-tools/rcigen/pkg/log"
	"github.com/rci-tools/rcigen/pkg/model"
	"github.com/rci-tools/rcigen/pkg/rcigen"
)

// maxRequestBytes bounds the size of a generate request body.
const maxRequestBytes = 4 << 20

// GenerateAPI handles generation and run history requests.
type GenerateAPI struct {
	store  *Store
	logger log.Logger
}

// NewGenerateAPI creates a new generate API handler. logger receives the
// generation events of every run (optional).
func NewGenerateAPI(store *Store, logger log.Logger) *GenerateAPI {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &GenerateAPI{store: store, logger: logger}
}

// HandleGenerate handles POST /api/v1/generate.
func (a *GenerateAPI) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err), "request", "")
		return
	}
	if req.Model == "" {
		writeError(w, http.StatusBadRequest, errors.New("model is required"), "request", "")
		return
	}

	run, artifacts, err := a.generate(&req)
	if storeErr := a.store.SaveRun(run, artifacts); storeErr != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to save run: %w", storeErr), "store", run.ID)
		return
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err, run.ErrorKind, run.ID)
		return
	}

	resp := RunDetailResponse{Run: *run}
	for _, sa := range artifacts {
		resp.Artifacts = append(resp.Artifacts, sa.ArtifactInfo)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// generate runs one generation. The returned run is always populated, also
// when generation failed.
func (a *GenerateAPI) generate(req *GenerateRequest) (*Run, []StoredArtifact, error) {
	now := time.Now().UTC()
	run := &Run{
		ID:        uuid.NewString(),
		Source:    req.Source,
		CreatedAt: &now,
	}
	fail := func(err error) (*Run, []StoredArtifact, error) {
		run.Status = RunStatusFailed
		run.ErrorKind = rcigen.ErrorKind(err)
		run.ErrorMessage = err.Error()
		return run, nil, err
	}

	m, err := model.Parse([]byte(req.Model))
	if err != nil {
		return fail(err)
	}
	opts := rcigen.DefaultOptions()
	if req.Options != "" {
		if opts, err = rcigen.ParseOptions([]byte(req.Options)); err != nil {
			return fail(err)
		}
	}
	run.Mode = opts.Mode.String()

	gen := rcigen.NewGenerator(rcigen.GeneratorConfig{Logger: a.logger, Source: req.Source})
	res, err := gen.Generate(m, opts)
	if err != nil {
		return fail(err)
	}
	run.ID = res.RunID

	run.Status = RunStatusCompleted
	run.Groups = res.Plan.GroupCount()
	for _, t := range res.Plan.Active.Types() {
		run.ActiveTypes = append(run.ActiveTypes, t.String())
	}
	if res.Plan.Pool != nil {
		run.PoolSize = res.Plan.Pool.Size
	}

	artifacts := make([]StoredArtifact, 0, len(res.Artifacts))
	for _, r := range res.Artifacts {
		artifacts = append(artifacts, StoredArtifact{
			ArtifactInfo: ArtifactInfo{
				Name:   r.Name,
				Kind:   r.Kind.String(),
				Size:   len(r.Text),
				Digest: artifact.Digest(r.Text),
			},
			Content: r.Text,
		})
	}
	return run, artifacts, nil
}

// HandleList handles GET /api/v1/runs.
func (a *GenerateAPI) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	runs, err := a.store.ListRuns(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, "store", "")
		return
	}
	total, err := a.store.CountRuns()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, "store", "")
		return
	}
	writeJSON(w, http.StatusOK, RunListResponse{Runs: runs, Total: total})
}

// HandleGet handles GET /api/v1/runs/{id}.
func (a *GenerateAPI) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	run, err := a.store.GetRun(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, "store", id)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, errors.New("run not found"), "", id)
		return
	}
	artifacts, err := a.store.GetArtifacts(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, "store", id)
		return
	}
	writeJSON(w, http.StatusOK, RunDetailResponse{Run: *run, Artifacts: artifacts})
}

// HandleArtifact handles GET /api/v1/runs/{id}/artifacts/{name} and returns
// the artifact text.
func (a *GenerateAPI) HandleArtifact(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, name := vars["id"], vars["name"]

	content, ok, err := a.store.GetArtifactContent(id, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, "store", id)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("artifact not found"), "", id)
		return
	}
	w.Header().Set("Content-Type", "text/x-c; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, content)
}

// HandleDelete handles DELETE /api/v1/runs/{id}.
func (a *GenerateAPI) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := a.store.DeleteRun(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, "store", id)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, errors.New("run not found"), "", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, status int, err error, kind, runID string) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind, RunID: runID})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
