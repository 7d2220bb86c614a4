package organizations_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/dataset"
	"github.com/dalemusser/npoconnect/internal/app/features/organizations"
	"github.com/dalemusser/npoconnect/internal/domain/models"
	"github.com/dalemusser/npoconnect/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *organizations.Handler {
	t.Helper()
	orgs, err := dataset.New([]models.Organization{
		{ID: 1, Name: "Sunshine Youth Center", City: "Soweto", Sector: "Education", DateRegistered: "2012-05-01"},
		{ID: 2, Name: "Green Future Trust", City: "Pretoria", Sector: "Environment", DateRegistered: "2018-09-14",
			BankingDetails: &models.BankingDetails{
				BankName:      "FNB",
				AccountHolder: "Green Future Trust",
				AccountNumber: "62000000001",
				BranchCode:    "250655",
				AccountType:   "Cheque",
			}},
		{ID: 3, Name: "Evergreen Kids", City: "Soweto", Sector: "Education", DateRegistered: "2018-01-20"},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	logger := zap.NewNop()
	return organizations.NewHandler(orgs, 2, uierrors.NewErrorLogger(logger), logger)
}

type listBody struct {
	Items []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	View       string `json:"view"`
	Summary    string `json:"summary"`
	Facets     struct {
		Cities []string `json:"cities"`
		Years  []int    `json:"years"`
	} `json:"facets"`
}

func TestServeList_Filters(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/?name=GREEN&view=table", nil)
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body listBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 2 {
		t.Errorf("total = %d, want 2", body.Total)
	}
	if body.View != "table" {
		t.Errorf("view = %q, want table", body.View)
	}
	if len(body.Facets.Cities) != 2 {
		t.Errorf("facets.cities = %v, want 2 entries", body.Facets.Cities)
	}
}

func TestServeList_Paging(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/?page=2", nil)
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	var body listBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Page != 2 || body.TotalPages != 2 {
		t.Errorf("page=%d totalPages=%d, want 2/2", body.Page, body.TotalPages)
	}
	if len(body.Items) != 1 || body.Items[0].ID != 3 {
		t.Errorf("items = %+v, want only id 3", body.Items)
	}
	if body.Summary != "Showing 1 of 3 results" {
		t.Errorf("summary = %q", body.Summary)
	}
}

func TestServeList_InvalidPageFallsBackToFirst(t *testing.T) {
	h := newTestHandler(t)

	for _, q := range []string{"/?page=abc", "/?page=0", "/?page=-3", "/"} {
		rec := httptest.NewRecorder()
		h.ServeList(rec, httptest.NewRequest("GET", q, nil))

		var body listBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", q, err)
		}
		if body.Page != 1 || len(body.Items) != 2 {
			t.Errorf("%s: page=%d items=%d, want 1/2", q, body.Page, len(body.Items))
		}
	}
}

func TestServeList_CombinedFiltersNoMatch(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/?city=Pretoria&year=2012", nil)
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	var body listBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 0 || body.Items == nil {
		t.Errorf("total=%d items=%v, want 0 and an empty list", body.Total, body.Items)
	}
}

func TestServeView(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		id        string
		status    int
		canDonate bool
	}{
		{"1", http.StatusOK, false},
		{"2", http.StatusOK, true},
		{"99", http.StatusNotFound, false},
		{"abc", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/"+tt.id, nil)
		req = testutil.WithChiURLParam(req, "id", tt.id)
		rec := httptest.NewRecorder()
		h.ServeView(rec, req)

		if rec.Code != tt.status {
			t.Errorf("id %s: status = %d, want %d", tt.id, rec.Code, tt.status)
			continue
		}
		if tt.status != http.StatusOK {
			continue
		}
		var body struct {
			CanDonate        bool `json:"canDonate"`
			RegistrationYear int  `json:"registrationYear"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.CanDonate != tt.canDonate {
			t.Errorf("id %s: canDonate = %v, want %v", tt.id, body.CanDonate, tt.canDonate)
		}
		if body.RegistrationYear == 0 {
			t.Errorf("id %s: registrationYear missing", tt.id)
		}
	}
}

func TestServeDonate(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/2/donate", nil), "id", "2")
	rec := httptest.NewRecorder()
	h.ServeDonate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Fields        []models.Field `json:"fields"`
		ClipboardText string         `json:"clipboardText"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Fields) != 5 {
		t.Errorf("fields = %d, want 5", len(body.Fields))
	}
	want := "Bank Name: FNB\nAccount Holder: Green Future Trust\nAccount Number: 62000000001\nBranch Code: 250655\nAccount Type: Cheque\nReference: Donation"
	if body.ClipboardText != want {
		t.Errorf("clipboardText = %q, want %q", body.ClipboardText, want)
	}
}

func TestServeDonate_NoBankingDetails(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/1/donate", nil), "id", "1")
	rec := httptest.NewRecorder()
	h.ServeDonate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRoutes_Facets(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(organizations.Routes(h))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/facets")
	if err != nil {
		t.Fatalf("GET /facets: %v", err)
	}
	defer resp.Body.Close()

	var fs struct {
		Sectors []string `json:"sectors"`
		Years   []int    `json:"years"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fs.Sectors) != 2 || len(fs.Years) != 2 || fs.Years[0] != 2018 {
		t.Errorf("facets = %+v", fs)
	}
}
