package documents_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"propdocs-backend/internal/bootstrap"
	"propdocs-backend/internal/shared/auth"
	"propdocs-backend/internal/shared/config"
)

func testApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.Sign("user-1", "owner@example.com", "Owner", 0)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func docxPayload(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` +
		body + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, data := range files {
		fw, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

type uploadResponse struct {
	Documents []struct {
		DocumentID string `json:"documentId"`
		Name       string `json:"name"`
		Content    string `json:"content"`
		MimeType   string `json:"mimeType"`
		SizeBytes  int64  `json:"sizeBytes"`
	} `json:"documents"`
	Rejected []struct {
		FileName string   `json:"fileName"`
		Reasons  []string `json:"reasons"`
	} `json:"rejected"`
}

func TestDocumentsUploadListDelete(t *testing.T) {
	app := testApp(t)
	token := bearerToken(t)

	body, contentType := multipartUpload(t,
		map[string]string{"documentType": "lease"},
		map[string][]byte{"lease.docx": docxPayload(t, "Terms of lease: rent due on the 1st.")},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if len(created.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(created.Documents))
	}
	docID := created.Documents[0].DocumentID
	if docID == "" {
		t.Fatalf("expected documentId, got empty")
	}
	if !strings.Contains(created.Documents[0].Content, "Terms of lease") {
		t.Fatalf("expected extracted content, got %q", created.Documents[0].Content)
	}

	// List returns the stored document.
	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	reqList.Header.Set("Authorization", token)
	respList := httptest.NewRecorder()
	app.Router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respList.Code)
	}
	var listed []struct {
		DocumentID string `json:"documentId"`
		Name       string `json:"name"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 1 || listed[0].DocumentID != docID {
		t.Fatalf("expected uploaded document in list, got %+v", listed)
	}

	// Delete, then confirm a repeat delete reports not found.
	reqDel := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+docID, nil)
	reqDel.Header.Set("Authorization", token)
	respDel := httptest.NewRecorder()
	app.Router.ServeHTTP(respDel, reqDel)
	if respDel.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", respDel.Code)
	}

	reqDel2 := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+docID, nil)
	reqDel2.Header.Set("Authorization", token)
	respDel2 := httptest.NewRecorder()
	app.Router.ServeHTTP(respDel2, reqDel2)
	if respDel2.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", respDel2.Code)
	}
}

func TestDocumentsUploadRejectsByPolicy(t *testing.T) {
	app := testApp(t)
	token := bearerToken(t)

	oversized := bytes.Repeat([]byte{0xFF}, 11<<20)
	body, contentType := multipartUpload(t, nil, map[string][]byte{
		"huge.jpg":  oversized,
		"notes.xyz": []byte("plain notes"),
		"photo.png": {0x89, 0x50, 0x4E, 0x47},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 with partial acceptance, got %d: %s", resp.Code, resp.Body.String())
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if len(result.Documents) != 1 || result.Documents[0].Name != "photo.png" {
		t.Fatalf("expected only photo.png accepted, got %+v", result.Documents)
	}
	if len(result.Rejected) != 2 {
		t.Fatalf("expected 2 rejections, got %+v", result.Rejected)
	}
	reasons := map[string][]string{}
	for _, rej := range result.Rejected {
		reasons[rej.FileName] = rej.Reasons
	}
	if got := reasons["huge.jpg"]; len(got) != 1 || got[0] != "file too large" {
		t.Fatalf("unexpected reasons for huge.jpg: %v", got)
	}
	if got := reasons["notes.xyz"]; len(got) != 1 || got[0] != "type not accepted" {
		t.Fatalf("unexpected reasons for notes.xyz: %v", got)
	}
}

func TestDocumentsUploadDuplicateFileNames(t *testing.T) {
	app := testApp(t)
	token := bearerToken(t)

	// Two parts share a filename; only the second is within the size limit.
	// The accepted part's bytes must be the ones stored.
	oversized := bytes.Repeat([]byte{0xFF}, 11<<20)
	small := bytes.Repeat([]byte{0xAB}, 1<<10)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, data := range [][]byte{oversized, small} {
		fw, err := writer.CreateFormFile("files", "photo.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if len(result.Rejected) != 1 || result.Rejected[0].Reasons[0] != "file too large" {
		t.Fatalf("expected the oversized part rejected, got %+v", result.Rejected)
	}
	if len(result.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(result.Documents))
	}
	if got := result.Documents[0].SizeBytes; got != int64(len(small)) {
		t.Fatalf("expected the accepted part's bytes stored (size %d), got %d", len(small), got)
	}
}

func TestDocumentsUploadAllRejected(t *testing.T) {
	app := testApp(t)
	token := bearerToken(t)

	body, contentType := multipartUpload(t, nil, map[string][]byte{
		"notes.xyz": []byte("plain notes"),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 when nothing accepted, got %d", resp.Code)
	}
	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if len(result.Documents) != 0 || len(result.Rejected) != 1 {
		t.Fatalf("expected everything rejected, got %+v", result)
	}
}

func TestDocumentsRequireAuth(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}
}

func TestDocumentsAskWithoutProvider(t *testing.T) {
	app := testApp(t)
	token := bearerToken(t)

	body, contentType := multipartUpload(t, nil, map[string][]byte{
		"lease.docx": docxPayload(t, "Terms of lease"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var created uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	docID := created.Documents[0].DocumentID

	question := bytes.NewBufferString(`{"question":"When is rent due?"}`)
	reqAsk := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+docID+"/questions", question)
	reqAsk.Header.Set("Content-Type", "application/json")
	reqAsk.Header.Set("Authorization", token)
	respAsk := httptest.NewRecorder()
	app.Router.ServeHTTP(respAsk, reqAsk)

	if respAsk.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502 without a configured provider, got %d", respAsk.Code)
	}
}
