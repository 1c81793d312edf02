package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitors/internal/models"
	"visitors/internal/testutil"
)

func newTestController(store *testutil.MockRecordStore) (*ApiController, *models.Sequence) {
	seq := models.NewSequence()
	return NewApiController(&testutil.MockLogger{}, store, seq), seq
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

// --- SaveVisitor tests ---

func TestSaveVisitor_Created(t *testing.T) {
	store := &testutil.MockRecordStore{
		SaveFn: func(c *models.Candidate) (*models.Visitor, error) {
			return &models.Visitor{ID: c.ID, FullName: c.FullName.(string), Age: 30}, nil
		},
	}
	ac, _ := newTestController(store)

	body := `{"fullName":"John Doe","age":30,"dateOfVisit":"2022-01-01","timeOfVisit":"10:00","comments":"Good visit","assistorName":"Mark Bafana"}`
	req := httptest.NewRequest(http.MethodPost, "/visitor", strings.NewReader(body))
	rr := httptest.NewRecorder()
	ac.SaveVisitor(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, store.SaveCalls, 1)
	c := store.SaveCalls[0]
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "John Doe", c.FullName)
	assert.Equal(t, "2022-01-01", c.DateOfVisit)

	resp := decodeBody(t, rr)
	assert.Equal(t, float64(1), resp["id"])
	assert.Equal(t, "John Doe", resp["fullName"])
}

func TestSaveVisitor_KeepsAgeKind(t *testing.T) {
	store := &testutil.MockRecordStore{}
	ac, _ := newTestController(store)

	req := httptest.NewRequest(http.MethodPost, "/visitor", strings.NewReader(`{"age":"0"}`))
	ac.SaveVisitor(httptest.NewRecorder(), req)

	require.Len(t, store.SaveCalls, 1)
	assert.Equal(t, "0", store.SaveCalls[0].Age)
}

func TestSaveVisitor_IgnoresClientID(t *testing.T) {
	store := &testutil.MockRecordStore{}
	ac, seq := newTestController(store)
	seq.Next()

	req := httptest.NewRequest(http.MethodPost, "/visitor", strings.NewReader(`{"id":99,"fullName":"John Doe"}`))
	ac.SaveVisitor(httptest.NewRecorder(), req)

	require.Len(t, store.SaveCalls, 1)
	assert.Equal(t, int64(2), store.SaveCalls[0].ID)
}

func TestSaveVisitor_BadJSON(t *testing.T) {
	store := &testutil.MockRecordStore{}
	ac, _ := newTestController(store)

	req := httptest.NewRequest(http.MethodPost, "/visitor", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	ac.SaveVisitor(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, store.SaveCalls)
}

func TestSaveVisitor_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"field", &models.FieldValidationError{Value: "0", Param: "age", Expected: "Use an integer value"}, http.StatusUnprocessableEntity, "field_validation"},
		{"name", &models.NameValidationError{Value: "X"}, http.StatusUnprocessableEntity, "name_validation"},
		{"exists", &models.FileExistsError{Path: "visitors/visitor_john_doe.json"}, http.StatusConflict, "file_exists"},
		{"write", &models.WriteFailureError{Cause: errors.New("disk full")}, http.StatusInternalServerError, "write_failure"},
		{"other", errors.New("permission denied"), http.StatusInternalServerError, "other"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &testutil.MockRecordStore{
				SaveFn: func(_ *models.Candidate) (*models.Visitor, error) { return nil, tc.err },
			}
			ac, _ := newTestController(store)

			req := httptest.NewRequest(http.MethodPost, "/visitor", strings.NewReader(`{}`))
			rr := httptest.NewRecorder()
			ac.SaveVisitor(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			resp := decodeBody(t, rr)
			assert.Equal(t, tc.kind, resp["error"])
			assert.Equal(t, tc.err.Error(), resp["message"])
		})
	}
}

// --- GetVisitor tests ---

func TestGetVisitor_OK(t *testing.T) {
	store := &testutil.MockRecordStore{
		LoadFn: func(name string) (*models.Visitor, error) {
			return &models.Visitor{ID: 7, FullName: "John Doe", DateOfVisit: "2022-01-01T00:00:00Z"}, nil
		},
	}
	ac, _ := newTestController(store)

	req := httptest.NewRequest(http.MethodGet, "/visitor?name=John+Doe", nil)
	rr := httptest.NewRecorder()
	ac.GetVisitor(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, []string{"John Doe"}, store.LoadCalls)

	resp := decodeBody(t, rr)
	assert.Equal(t, float64(7), resp["id"])
	assert.Equal(t, "2022-01-01T00:00:00Z", resp["dateOfVisit"])
}

func TestGetVisitor_EveryRequestReachesStore(t *testing.T) {
	store := &testutil.MockRecordStore{
		LoadFn: func(name string) (*models.Visitor, error) {
			return &models.Visitor{ID: 3, FullName: "John Doe"}, nil
		},
	}
	ac, _ := newTestController(store)

	for _, target := range []string{"/visitor?name=John+Doe", "/visitor?name=JOHN%20%20DOE%20"} {
		ac.GetVisitor(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}
	assert.Equal(t, []string{"John Doe", "JOHN  DOE"}, store.LoadCalls)
}

func TestGetVisitor_NotFound(t *testing.T) {
	store := &testutil.MockRecordStore{
		LoadFn: func(_ string) (*models.Visitor, error) {
			return nil, &models.ReadFailureError{Cause: &os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}}
		},
	}
	ac, _ := newTestController(store)

	req := httptest.NewRequest(http.MethodGet, "/visitor?name=Ntokozo+Kubheka", nil)
	rr := httptest.NewRecorder()
	ac.GetVisitor(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "read_failure", decodeBody(t, rr)["error"])
}

func TestGetVisitor_InvalidName(t *testing.T) {
	store := &testutil.MockRecordStore{
		LoadFn: func(name string) (*models.Visitor, error) {
			return nil, &models.NameValidationError{Value: strings.ToLower(name)}
		},
	}
	ac, _ := newTestController(store)

	req := httptest.NewRequest(http.MethodGet, "/visitor?name=Ntokozo", nil)
	rr := httptest.NewRecorder()
	ac.GetVisitor(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "Invalid full name: ntokozo", decodeBody(t, rr)["message"])
}

func TestGetVisitor_ReadFailure(t *testing.T) {
	store := &testutil.MockRecordStore{
		LoadFn: func(_ string) (*models.Visitor, error) {
			return nil, &models.ReadFailureError{Cause: errors.New("Simulated error")}
		},
	}
	ac, _ := newTestController(store)

	req := httptest.NewRequest(http.MethodGet, "/visitor?name=John+Doe", nil)
	rr := httptest.NewRecorder()
	ac.GetVisitor(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error when trying to read file : Simulated error", decodeBody(t, rr)["message"])
}
