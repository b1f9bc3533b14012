package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/claude/fitmyself/internal/models"
	"github.com/claude/fitmyself/internal/tracker"
	"github.com/claude/fitmyself/internal/verify"
)

// todayResponse is the merged view of one day: generated plans with
// completion state folded in, plus the user's running stats.
type todayResponse struct {
	Date             string              `json:"date"`
	Plans            models.DailyTargets `json:"plans"`
	Stats            models.UserStats    `json:"stats"`
	ProgressFraction float64             `json:"progress_fraction"`
	PotentialReward  int                 `json:"potential_reward"`
}

// updateResponse is a todayResponse plus the reward outcome of the mutation,
// when the call completed a category.
type updateResponse struct {
	todayResponse
	Result *tracker.Result `json:"result,omitempty"`
}

func sessionView(sess *tracker.Session) todayResponse {
	return todayResponse{
		Date:             sess.Date,
		Plans:            sess.Day.Targets,
		Stats:            sess.Stats,
		ProgressFraction: sess.Day.ProgressFraction(),
		PotentialReward:  sess.Day.Targets.PotentialReward(),
	}
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		models.UserProfile
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := req.UserProfile.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := userIDFromContext(r)
	existing, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "profile already exists")
		return
	}

	sess, err := s.svc.Onboard(r.Context(), userID, req.UserProfile, requestDate(req.Date))
	if err != nil {
		s.log.Error("onboarding failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sessionView(sess))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProfile(r.Context(), userIDFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "no profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := userIDFromContext(r)
	existing, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "no profile")
		return
	}
	if err := s.store.UpdateProfile(r.Context(), userID, p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(w, r, r.URL.Query().Get("date"))
	if sess == nil || err != nil {
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess))
}

func (s *Server) handleLogWater(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Liters float64 `json:"liters"`
		Date   string  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	sess, err := s.loadSession(w, r, req.Date)
	if sess == nil || err != nil {
		return
	}
	res, err := sess.UpdateWater(r.Context(), req.Liters)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updateResponse{todayResponse: sessionView(sess), Result: res})
}

func (s *Server) handleLogSleep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hours float64 `json:"hours"`
		Date  string  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	sess, err := s.loadSession(w, r, req.Date)
	if sess == nil || err != nil {
		return
	}
	res, err := sess.UpdateSleep(r.Context(), req.Hours)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updateResponse{todayResponse: sessionView(sess), Result: res})
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Task         models.TaskKind          `json:"task"`
		Verification *models.VerificationData `json:"verification"`
		Date         string                   `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !req.Task.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown task %q", req.Task))
		return
	}

	sess, err := s.loadSession(w, r, req.Date)
	if sess == nil || err != nil {
		return
	}
	res, err := sess.CompleteTask(r.Context(), req.Task, req.Verification)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// res is nil when the task was already completed; the response still
	// carries the current day state so clients can reconcile.
	writeJSON(w, http.StatusOK, updateResponse{todayResponse: sessionView(sess), Result: res})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Task        models.TaskKind `json:"task"`
		TaskName    string          `json:"task_name"`
		ImageBase64 string          `json:"image_base64"`
		MimeType    string          `json:"mime_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	var verdict models.AIVerdict
	var err error
	switch req.Task {
	case models.TaskWorkout:
		verdict, err = s.verifier.VerifyWorkoutImage(r.Context(), req.ImageBase64, req.MimeType, req.TaskName)
	case models.TaskDiet:
		verdict, err = s.verifier.VerifyMealImage(r.Context(), req.ImageBase64, req.MimeType, req.TaskName)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("task %q is not verifiable", req.Task))
		return
	}
	if errors.Is(err, verify.ErrUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "verification unavailable")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

func (s *Server) handleVerifications(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)

	var rows []models.VerificationRow
	var err error
	if date := r.URL.Query().Get("date"); date != "" {
		rows, err = s.store.QueryVerificationsByDate(r.Context(), userID, date)
	} else {
		rows, err = s.store.QueryVerifications(r.Context(), userID, 50)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = []models.VerificationRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := s.verifier.Chat(r.Context(), req.Message, s.chatContext(r))
	if errors.Is(err, verify.ErrUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "coach unavailable")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// chatContext summarizes the caller's profile and stats for the coach
// prompt. Best effort: lookup failures just yield an empty context.
func (s *Server) chatContext(r *http.Request) string {
	userID := userIDFromContext(r)
	p, err := s.store.GetProfile(r.Context(), userID)
	if err != nil || p == nil {
		return ""
	}
	ctx := fmt.Sprintf("name: %s, age: %d, goal: %s", p.Name, p.Age, p.Goal)
	if st, err := s.store.GetStats(r.Context(), userID); err == nil && st != nil {
		ctx += fmt.Sprintf(", level: %d, streak: %d days", st.Level, st.Streak)
	}
	return ctx
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.GetStats(r.Context(), userIDFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if st == nil {
		writeError(w, http.StatusNotFound, "no stats")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// loadSession hydrates the caller's session for the given date (defaulting
// to today). On failure it writes the error response and returns nil.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, date string) (*tracker.Session, error) {
	sess, err := s.svc.Load(r.Context(), userIDFromContext(r), requestDate(date))
	if errors.Is(err, tracker.ErrNoProfile) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":               "no profile",
			"onboarding_required": true,
		})
		return nil, err
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, err
	}
	return sess, nil
}

// requestDate validates a client-supplied day key, falling back to the
// server's local date.
func requestDate(date string) string {
	if date == "" {
		return tracker.Today()
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return tracker.Today()
	}
	return date
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
