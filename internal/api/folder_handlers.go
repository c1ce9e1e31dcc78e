package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CreateFolderRequest struct {
	Name     string  `json:"name" example:"Dokumenty"`
	ParentID *string `json:"parent_id,omitempty" example:"V1StGXR8_Z5jdHi6B-myT"`
}

// UpdateFolderRequest renames and/or moves a folder. A null parent_id moves
// the folder to the root, an absent one keeps it where it is.
type UpdateFolderRequest struct {
	Name     *string        `json:"name,omitempty" example:"Archiwum"`
	ParentID FolderRef      `json:"parent_id" swaggertype:"string" example:"V1StGXR8_Z5jdHi6B-myT"`
}

type DeleteResponse struct {
	Deleted int64 `json:"deleted" example:"3"`
}

// @Summary      Create a folder
// @Tags         folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateFolderRequest  true  "Folder name and optional parent"
// @Success      201      {object}  models.Folder
// @Failure      400      {object}  ProblemDetail "Invalid name"
// @Failure      401      {object}  ProblemDetail
// @Failure      404      {object}  ProblemDetail "Parent folder not found"
// @Failure      409      {object}  ProblemDetail "Name already used in the parent"
// @Router       /api/fs/folders [post]
func (s *Server) CreateFolderHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req CreateFolderRequest
	if !readJSON(w, r, &req) {
		return
	}

	folder, err := s.tree.CreateFolder(r.Context(), user.ID, req.Name, optionalID(req.ParentID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, folder)
}

// @Summary      Get a folder
// @Tags         folders
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      string  true  "Folder ID"
// @Success      200       {object}  models.Folder
// @Failure      401       {object}  ProblemDetail
// @Failure      404       {object}  ProblemDetail
// @Router       /api/fs/folders/{folderId} [get]
func (s *Server) GetFolderHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	folder, err := s.tree.GetFolder(r.Context(), user.ID, chi.URLParam(r, "folderId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, folder)
}

// @Summary      Rename or move a folder
// @Description  Omitted fields are left unchanged. `parent_id: null` moves the folder to the root. Moving a folder into its own subtree is rejected.
// @Tags         folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      string               true  "Folder ID"
// @Param        request   body      UpdateFolderRequest  true  "New name and/or parent"
// @Success      200       {object}  models.Folder
// @Failure      400       {object}  ProblemDetail "Invalid name or move"
// @Failure      401       {object}  ProblemDetail
// @Failure      404       {object}  ProblemDetail
// @Failure      409       {object}  ProblemDetail
// @Router       /api/fs/folders/{folderId} [patch]
func (s *Server) UpdateFolderHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req UpdateFolderRequest
	if !readJSON(w, r, &req) {
		return
	}

	folder, err := s.tree.UpdateFolder(r.Context(), user.ID, chi.URLParam(r, "folderId"), req.folderUpdate())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, folder)
}

// @Summary      Delete a folder
// @Description  Deletes the folder with all descendant folders and files. Returns how many items were removed.
// @Tags         folders
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      string  true  "Folder ID"
// @Success      200       {object}  DeleteResponse
// @Failure      401       {object}  ProblemDetail
// @Failure      404       {object}  ProblemDetail
// @Router       /api/fs/folders/{folderId} [delete]
func (s *Server) DeleteFolderHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	deleted, err := s.tree.DeleteFolder(r.Context(), user.ID, chi.URLParam(r, "folderId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}

// @Summary      List root contents
// @Tags         folders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.FolderChildren
// @Failure      401  {object}  ProblemDetail
// @Router       /api/fs/root/children [get]
func (s *Server) ListRootChildrenHandler(w http.ResponseWriter, r *http.Request) {
	s.listChildren(w, r, nil)
}

// @Summary      List folder contents
// @Tags         folders
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      string  true  "Folder ID"
// @Success      200       {object}  models.FolderChildren
// @Failure      401       {object}  ProblemDetail
// @Failure      404       {object}  ProblemDetail
// @Router       /api/fs/folders/{folderId}/children [get]
func (s *Server) ListFolderChildrenHandler(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "folderId")
	s.listChildren(w, r, &folderID)
}

func (s *Server) listChildren(w http.ResponseWriter, r *http.Request, folderID *string) {
	user := GetUserFromContext(r.Context())

	children, err := s.tree.ListChildren(r.Context(), user.ID, folderID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, children)
}
