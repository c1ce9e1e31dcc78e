package api

import (
	"net/http"
	"sejf-plikow/internal/account"
)

type PublicKeyResponse struct {
	PublicKey string `json:"public_key" example:"-----BEGIN PUBLIC KEY-----\nMIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEA...\n-----END PUBLIC KEY-----"`
}

// EncryptedCredentialsRequest carries base64 RSA ciphertext of the JSON
// credentials, encrypted against the key from /api/auth/public-key.
type EncryptedCredentialsRequest struct {
	Payload string `json:"payload" example:"kXh1bW9yb3VzLWNpcGhlcnRleHQ..."`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" example:"Jan Kowalski"`
	Email    *string `json:"email" example:"jan@example.com"`
}

type MessageResponse struct {
	Message string `json:"message" example:"logged out"`
}

// @Summary      Get the credential encryption key
// @Description  Returns the RSA public key (PEM) clients encrypt login and registration payloads with.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  PublicKeyResponse
// @Router       /api/auth/public-key [get]
func (s *Server) PublicKeyHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, PublicKeyResponse{PublicKey: s.keys.PublicKeyPEM()})
}

// @Summary      Register a new user
// @Description  Creates an account from an encrypted `{username, password, email, full_name?}` payload.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      EncryptedCredentialsRequest  true  "Encrypted registration data"
// @Success      201      {object}  models.User
// @Failure      400      {object}  ProblemDetail "Malformed payload"
// @Failure      409      {object}  ProblemDetail "Username or email already taken"
// @Failure      500      {object}  ProblemDetail
// @Router       /api/auth/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req EncryptedCredentialsRequest
	if !readJSON(w, r, &req) {
		return
	}

	user, err := s.accounts.Register(r.Context(), req.Payload)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// @Summary      Log a user in
// @Description  Verifies an encrypted `{username, password}` payload and returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      EncryptedCredentialsRequest  true  "Encrypted login data"
// @Success      200      {object}  account.Session
// @Failure      400      {object}  ProblemDetail "Malformed payload"
// @Failure      401      {object}  ProblemDetail "Invalid username or password"
// @Failure      403      {object}  ProblemDetail "Account disabled"
// @Failure      500      {object}  ProblemDetail
// @Router       /api/auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req EncryptedCredentialsRequest
	if !readJSON(w, r, &req) {
		return
	}

	session, err := s.accounts.Login(r.Context(), req.Payload)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  ProblemDetail
// @Router       /api/auth/me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, GetUserFromContext(r.Context()))
}

// @Summary      Update current user
// @Description  Changes full name and/or email. Omitted fields are left unchanged.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      UpdateProfileRequest  true  "Profile fields"
// @Success      200      {object}  models.User
// @Failure      400      {object}  ProblemDetail
// @Failure      401      {object}  ProblemDetail
// @Failure      409      {object}  ProblemDetail "Email already registered"
// @Router       /api/auth/me [patch]
func (s *Server) UpdateCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req UpdateProfileRequest
	if !readJSON(w, r, &req) {
		return
	}

	updated, err := s.accounts.UpdateProfile(r.Context(), user.ID, account.ProfileUpdate{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// @Summary      Log out
// @Description  Tokens are stateless; the client discards its token. Nothing changes on the server.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ProblemDetail
// @Router       /api/auth/logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}
