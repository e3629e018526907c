package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/planhaus/planhaus/pkg/geometry"
	"github.com/planhaus/planhaus/pkg/pipeline"
	"github.com/planhaus/planhaus/pkg/plan"
	"github.com/planhaus/planhaus/pkg/store"
)

func testServer(t *testing.T) (http.Handler, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	runner := pipeline.NewRunner(nil, nil, nil)
	return New(st, runner, log.New(io.Discard)), st
}

func spaceFile() plan.SpaceFile {
	return plan.SpaceFile{
		Width:  10,
		Height: 8,
		Rooms: []plan.RoomEntry{
			{ID: "living", Name: "Living Room", Width: 5, Height: 4, Priority: 9},
			{ID: "kitchen", Name: "Kitchen", Width: 3, Height: 3, Type: "kitchen"},
		},
	}
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	handler, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCreateLayout(t *testing.T) {
	handler, st := testServer(t)

	rec := postJSON(t, handler, "/api/v1/layouts", CreateRequest{
		Name:  "first floor",
		Space: spaceFile(),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp CreateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("response id missing")
	}
	if resp.Name != "first floor" {
		t.Errorf("name = %q, want %q", resp.Name, "first floor")
	}
	if len(resp.Document.Rooms) != 2 {
		t.Errorf("document has %d rooms, want 2", len(resp.Document.Rooms))
	}
	if resp.SpaceHash == "" {
		t.Error("space hash missing")
	}

	// The record must be retrievable by id.
	stored, err := st.Get(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("stored record: %v", err)
	}
	if stored.Document.Metrics.Score != resp.Document.Metrics.Score {
		t.Error("stored document differs from response")
	}
}

func TestCreateLayoutInvalidSpace(t *testing.T) {
	handler, _ := testServer(t)

	bad := spaceFile()
	bad.Width = 0
	rec := postJSON(t, handler, "/api/v1/layouts", CreateRequest{Space: bad})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("error message missing")
	}
}

func TestCreateLayoutMalformedBody(t *testing.T) {
	handler, _ := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/layouts", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestValidateEndpoint(t *testing.T) {
	handler, _ := testServer(t)

	pos := geometry.Position{X: 0, Y: 0}
	overlapping := geometry.Position{X: 2, Y: 2}
	doc := plan.Document{
		Dimensions: plan.DimensionsDoc{Width: 10, Height: 8, Area: 80},
		Rooms: []plan.RoomDoc{
			{ID: "a", Name: "A", Type: "general", Dimensions: plan.DimensionsDoc{Width: 5, Height: 4, Area: 20}, Position: &pos},
			{ID: "b", Name: "B", Type: "general", Dimensions: plan.DimensionsDoc{Width: 4, Height: 3, Area: 12}, Position: &overlapping},
		},
	}

	rec := postJSON(t, handler, "/api/v1/layouts/validate", ValidateRequest{
		Space:    spaceFile(),
		Document: doc,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.IsValid {
		t.Error("overlapping rooms should be invalid")
	}
	if len(resp.Violations) == 0 {
		t.Error("violations missing")
	}
}

func TestGetListDelete(t *testing.T) {
	handler, _ := testServer(t)

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		rec := postJSON(t, handler, "/api/v1/layouts", CreateRequest{
			Name:  fmt.Sprintf("layout-%d", i),
			Space: spaceFile(),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d: status %d", i, rec.Code)
		}
		var resp CreateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		ids = append(ids, resp.ID)
	}

	// Get one back.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/layouts/"+ids[0], nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	// List with a limit.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/layouts/?limit=2", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listed []*store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("listed %d records, want 2", len(listed))
	}

	// Delete and confirm it is gone.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/layouts/"+ids[1], nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/layouts/"+ids[1], nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted status = %d, want 404", rec.Code)
	}
}

func TestListInvalidLimit(t *testing.T) {
	handler, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/layouts/?limit=x", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
