package api

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sejf-plikow/internal/account"
	"sejf-plikow/internal/models"
	"testing"

	"github.com/jaevor/go-nanoid"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	ID       int64
	Username string
	Password string
	Token    string
}

var usernameSuffix = func() func() string {
	generate, err := nanoid.CustomASCII("abcdefghijklmnopqrstuvwxyz0123456789", 10)
	if err != nil {
		panic(err)
	}
	return generate
}()

// encryptCredentials does what a browser client does: JSON, then RSA with
// the server's public key, then base64.
func encryptCredentials(t *testing.T, credentials interface{}) string {
	t.Helper()

	plaintext, err := json.Marshal(credentials)
	require.NoError(t, err)

	block, _ := pem.Decode([]byte(testKeys.PublicKeyPEM()))
	require.NotNil(t, block)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	require.NoError(t, err)

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, pub.(*rsa.PublicKey), plaintext)
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(ciphertext)
}

func doRequest(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return serve(req)
}

func serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	testHandler.ServeHTTP(rr, req)
	return rr
}

func uploadFile(t *testing.T, handler http.Handler, token, filename string, folderID *string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if folderID != nil {
		require.NoError(t, writer.WriteField("folder_id", *folderID))
	}
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/fs/files", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func requireProblem(t *testing.T, rr *httptest.ResponseRecorder, status int) ProblemDetail {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	require.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	problem := decodeBody[ProblemDetail](t, rr)
	require.Equal(t, status, problem.Status)
	return problem
}

func login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	payload := encryptCredentials(t, map[string]string{"username": username, "password": password})
	return doRequest(t, http.MethodPost, "/api/auth/login", "", EncryptedCredentialsRequest{Payload: payload})
}

// registerUser creates a fresh account through the API and logs it in.
func registerUser(t *testing.T) testUser {
	t.Helper()

	username := "user_" + usernameSuffix()
	password := "sekretne-haslo"
	payload := encryptCredentials(t, map[string]string{
		"username": username,
		"password": password,
		"email":    username + "@example.com",
	})

	rr := doRequest(t, http.MethodPost, "/api/auth/register", "", EncryptedCredentialsRequest{Payload: payload})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	user := decodeBody[models.User](t, rr)

	rr = login(t, username, password)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	session := decodeBody[account.Session](t, rr)

	return testUser{ID: user.ID, Username: username, Password: password, Token: session.AccessToken}
}

func createFolder(t *testing.T, user testUser, name string, parentID *string) models.Folder {
	t.Helper()
	rr := doRequest(t, http.MethodPost, "/api/fs/folders", user.Token, CreateFolderRequest{Name: name, ParentID: parentID})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody[models.Folder](t, rr)
}

func strPtr(s string) *string {
	return &s
}
