package handler

import "net/http"

// Register handles POST /auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, sessionToResponse(sess))
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// Logout handles POST /auth/logout. Logging out twice is not an error.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context()); err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /auth/session. The front-end calls it on page load
// to restore the signed-in header.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.auth.Current(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}
