package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const multipartMemoryBytes = 32 << 20

type UpdateFileRequest struct {
	Name     *string        `json:"name,omitempty" example:"raport.pdf"`
	FolderID FolderRef      `json:"folder_id" swaggertype:"string" example:"V1StGXR8_Z5jdHi6B-myT"`
}

// uploadContentType prefers the type sent with the part and falls back to
// the file extension.
func uploadContentType(declared, filename string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return declared
}

// @Summary      Upload a file
// @Description  Stores the `file` part in the folder given by `folder_id`, or in the root when it is omitted.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file       formData  file    true   "File content"
// @Param        folder_id  formData  string  false  "Target folder ID"
// @Success      201        {object}  models.File
// @Failure      400        {object}  ProblemDetail "Missing file or invalid name"
// @Failure      401        {object}  ProblemDetail
// @Failure      404        {object}  ProblemDetail "Folder not found"
// @Failure      409        {object}  ProblemDetail "Name already used in the folder"
// @Failure      413        {object}  ProblemDetail "File too large"
// @Failure      500        {object}  ProblemDetail
// @Router       /api/fs/files [post]
func (s *Server) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if r.ContentLength > s.config.Server.MaxUploadBytes {
		respondProblem(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			respondProblem(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		respondProblem(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, handler, err := r.FormFile("file")
	if err != nil {
		respondProblem(w, http.StatusBadRequest, "form field 'file' is required")
		return
	}
	defer file.Close()

	folderID := r.FormValue("folder_id")
	contentType := uploadContentType(handler.Header.Get("Content-Type"), handler.Filename)

	created, err := s.tree.CreateFile(r.Context(), user.ID, handler.Filename, optionalID(&folderID), contentType, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// @Summary      Get file metadata
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        fileId  path      string  true  "File ID"
// @Success      200     {object}  models.File
// @Failure      401     {object}  ProblemDetail
// @Failure      404     {object}  ProblemDetail
// @Router       /api/fs/files/{fileId} [get]
func (s *Server) GetFileHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	file, err := s.tree.GetFile(r.Context(), user.ID, chi.URLParam(r, "fileId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, file)
}

// @Summary      Rename or move a file
// @Description  Omitted fields are left unchanged. `folder_id: null` moves the file to the root.
// @Tags         files
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        fileId   path      string             true  "File ID"
// @Param        request  body      UpdateFileRequest  true  "New name and/or folder"
// @Success      200      {object}  models.File
// @Failure      400      {object}  ProblemDetail
// @Failure      401      {object}  ProblemDetail
// @Failure      404      {object}  ProblemDetail
// @Failure      409      {object}  ProblemDetail
// @Router       /api/fs/files/{fileId} [patch]
func (s *Server) UpdateFileHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req UpdateFileRequest
	if !readJSON(w, r, &req) {
		return
	}

	file, err := s.tree.UpdateFile(r.Context(), user.ID, chi.URLParam(r, "fileId"), req.fileUpdate())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, file)
}

// @Summary      Delete a file
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        fileId  path      string  true  "File ID"
// @Success      200     {object}  DeleteResponse
// @Failure      401     {object}  ProblemDetail
// @Failure      404     {object}  ProblemDetail
// @Router       /api/fs/files/{fileId} [delete]
func (s *Server) DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	deleted, err := s.tree.DeleteFile(r.Context(), user.ID, chi.URLParam(r, "fileId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}

// @Summary      Download a file
// @Tags         files
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        fileId  path      string  true  "File ID"
// @Success      200     {file}    binary
// @Failure      401     {object}  ProblemDetail
// @Failure      404     {object}  ProblemDetail
// @Failure      500     {object}  ProblemDetail
// @Router       /api/fs/files/{fileId}/download [get]
func (s *Server) DownloadFileHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	file, content, err := s.tree.OpenFile(r.Context(), user.ID, chi.URLParam(r, "fileId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer content.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Name})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if _, err := io.Copy(w, content); err != nil {
		s.logger.Warn("file download interrupted",
			zap.String("file_id", file.ID),
			zap.Error(err),
		)
	}
}
