package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/katalvlaran/stepwise/catalog"
	"github.com/katalvlaran/stepwise/frame"
	"github.com/katalvlaran/stepwise/ratelimit"
	"github.com/katalvlaran/stepwise/replay"
)

type scenarioSummary struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`
}

type sessionView struct {
	Status  replay.Status `json:"status"`
	Frame   frame.Frame   `json:"frame"`
	Listing []frame.Line  `json:"listing,omitempty"`
}

type loadRequest struct {
	Scenario string `json:"scenario"`
}

type seekRequest struct {
	Index *int `json:"index"`
}

type speedRequest struct {
	Multiplier *float64 `json:"multiplier"`
}

type keyRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleScenarios(w http.ResponseWriter, _ *http.Request) {
	list := s.cat.List()
	out := make([]scenarioSummary, 0, len(list))
	for _, sc := range list {
		out = append(out, scenarioSummary{Name: sc.Name, Kind: sc.Kind, Title: sc.Title})
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": out})
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sc, ok := s.cat.Lookup(name)
	if !ok {
		s.fail(w, r, fmt.Errorf("%w: %q", catalog.ErrUnknownScenario, name))
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if !decode(w, r, &req) {
		return
	}
	inst, err := s.cat.Build(req.Scenario)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.ctrl.Load(inst); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeView(w, r, http.StatusCreated, true)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.writeView(w, r, http.StatusOK, r.URL.Query().Get("listing") == "true")
}

func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.ctrl.Listing()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"listing": listing})
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ctrl.Play(); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeView(w, r, http.StatusOK, false)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ctrl.Pause(); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeView(w, r, http.StatusOK, false)
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	_, err := s.ctrl.StepForward()
	s.afterStep(w, r, err)
}

func (s *Server) handleBackward(w http.ResponseWriter, r *http.Request) {
	_, err := s.ctrl.StepBackward()
	s.afterStep(w, r, err)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	_, err := s.ctrl.Reset()
	s.afterStep(w, r, err)
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Index == nil {
		writeError(w, http.StatusBadRequest, errors.New("index is required"))
		return
	}
	_, err := s.ctrl.Seek(*req.Index)
	s.afterStep(w, r, err)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Multiplier == nil {
		writeError(w, http.StatusBadRequest, errors.New("multiplier is required"))
		return
	}
	applied, err := s.ctrl.SetSpeed(*req.Multiplier)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	st, err := s.ctrl.Status()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"speed": applied, "status": st})
}

// afterStep answers a step, seek or reset. A boundary is a 409 that still
// carries the unchanged position.
func (s *Server) afterStep(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		s.writeView(w, r, http.StatusOK, false)
		return
	}
	var be *replay.BoundaryError
	if !errors.As(err, &be) {
		s.fail(w, r, err)
		return
	}
	snap, serr := s.ctrl.Snapshot()
	if serr != nil {
		s.fail(w, r, serr)
		return
	}
	writeJSON(w, http.StatusConflict, map[string]any{
		"error":  be.Error(),
		"status": snap.Status,
		"frame":  snap.Frame,
	})
}

func (s *Server) writeView(w http.ResponseWriter, r *http.Request, code int, withListing bool) {
	snap, err := s.ctrl.Snapshot()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view := sessionView{Status: snap.Status, Frame: snap.Frame}
	if withListing {
		if view.Listing, err = s.ctrl.Listing(); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	w.Header().Set(SessionHeader, snap.Status.SessionID.String())
	writeJSON(w, code, view)
}

func (s *Server) handleQuota(w http.ResponseWriter, r *http.Request) {
	if s.opts.Limiter == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	info, err := s.opts.Limiter.Check(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled":  true,
		"quota":    info,
		"resetsIn": ratelimit.FormatUntilReset(info.UntilReset),
	})
}

// handleQuotaRecord counts one generative-text request, or refuses it with
// 429 and Retry-After once either cap is reached.
func (s *Server) handleQuotaRecord(w http.ResponseWriter, r *http.Request) {
	if s.opts.Limiter == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	info, err := s.opts.Limiter.Allow(r.Context())
	if errors.Is(err, ratelimit.ErrLimited) {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter(info)))
		writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": err.Error(), "quota": info})
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled":  true,
		"quota":    info,
		"resetsIn": ratelimit.FormatUntilReset(info.UntilReset),
	})
}

func (s *Server) handleKeyPresence(w http.ResponseWriter, r *http.Request) {
	if !s.keeperEnabled(w) {
		return
	}
	has, err := s.opts.Keeper.Has(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"present": has})
}

func (s *Server) handleKeySave(w http.ResponseWriter, r *http.Request) {
	if !s.keeperEnabled(w) {
		return
	}
	var req keyRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.opts.Keeper.Save(r.Context(), req.Key); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleKeyClear(w http.ResponseWriter, r *http.Request) {
	if !s.keeperEnabled(w) {
		return
	}
	if err := s.opts.Keeper.Clear(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) keeperEnabled(w http.ResponseWriter) bool {
	if s.opts.Keeper == nil {
		writeError(w, http.StatusNotFound, errors.New("credential store is not configured"))
		return false
	}
	return true
}

// sameSession rejects commands aimed at a session that has been replaced.
func (s *Server) sameSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(SessionHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		want, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%s: %w", SessionHeader, err))
			return
		}
		st, err := s.ctrl.Status()
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if st.SessionID != want {
			s.log.Debug("stale command", "err", replay.ErrStaleSession, "want", want, "current", st.SessionID)
			writeError(w, http.StatusConflict, replay.ErrStaleSession)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// retryAfter rounds the wait up to whole seconds.
func retryAfter(info ratelimit.Info) int {
	return int((info.UntilReset + time.Second - 1) / time.Second)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}
