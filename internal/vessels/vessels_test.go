package vessels_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/mariner/internal/vessels"
	"github.com/JaimeStill/mariner/pkg/routes"
)

const (
	mtBase = "https://marinetraffic.test/api"
	vfBase = "https://vesselfinder.test"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func testConfig(t *testing.T) *vessels.Config {
	t.Helper()
	cfg := &vessels.Config{
		MarineTraffic: vessels.RegistryConfig{APIKey: "mt-key", BaseURL: mtBase, RateLimit: 100, Burst: 10},
		VesselFinder:  vessels.RegistryConfig{APIKey: "vf-key", BaseURL: vfBase, RateLimit: 100, Burst: 10},
	}
	require.NoError(t, cfg.Finalize(nil))
	return cfg
}

// stubRegistry records calls and returns fixed answers.
type stubRegistry struct {
	name        string
	vessel      *vessels.Vessel
	err         error
	searchCalls int
	mmsiCalls   int
	imoCalls    int
}

func (s *stubRegistry) Name() string { return s.name }

func (s *stubRegistry) Search(ctx context.Context, hints vessels.Hints) (*vessels.Vessel, error) {
	s.searchCalls++
	return s.answer()
}

func (s *stubRegistry) LookupMMSI(ctx context.Context, mmsi string) (*vessels.Vessel, error) {
	s.mmsiCalls++
	return s.answer()
}

func (s *stubRegistry) LookupIMO(ctx context.Context, imo string) (*vessels.Vessel, error) {
	s.imoCalls++
	return s.answer()
}

func (s *stubRegistry) answer() (*vessels.Vessel, error) {
	if s.err != nil || s.vessel == nil {
		return nil, s.err
	}
	v := *s.vessel
	return &v, nil
}

func newDirectory(t *testing.T, registries ...vessels.Registry) *vessels.Directory {
	return vessels.New(testConfig(t), registries, discard(), nil)
}

func TestLookup_MMSIOnlyNeverSearches(t *testing.T) {
	stub := &stubRegistry{name: "stub"}
	dir := newDirectory(t, stub)

	v := dir.Lookup(context.Background(), vessels.Hints{MMSI: "123456789"})

	require.NotNil(t, v)
	assert.Equal(t, "Sea Explorer", v.Name)
	assert.Equal(t, vessels.SourceDemo, v.Source)
	assert.Nil(t, v.Note)
	assert.Equal(t, 0, stub.searchCalls)
	assert.Equal(t, 1, stub.mmsiCalls)
	assert.Equal(t, 0, stub.imoCalls)
}

func TestLookup_IMOOnlyNeverSearches(t *testing.T) {
	stub := &stubRegistry{name: "stub"}
	dir := newDirectory(t, stub)

	v := dir.Lookup(context.Background(), vessels.Hints{IMO: "2345678", Type: "Yacht"})

	require.NotNil(t, v)
	assert.Equal(t, "Blue Horizon", v.Name)
	assert.Equal(t, 0, stub.searchCalls)
	assert.Equal(t, 1, stub.imoCalls)
}

func TestLookup_UnknownIdentifierIsNil(t *testing.T) {
	dir := newDirectory(t)

	assert.Nil(t, dir.Lookup(context.Background(), vessels.Hints{MMSI: "000000000"}))
	assert.Nil(t, dir.LookupIMO(context.Background(), "0000000"))
	assert.Empty(t, dir.Search(context.Background(), vessels.Hints{MMSI: "000000000"}))
	assert.NotNil(t, dir.Search(context.Background(), vessels.Hints{MMSI: "000000000"}))
}

func TestLookup_RegistryPriority(t *testing.T) {
	first := &stubRegistry{name: "first", err: errors.New("rate limited")}
	second := &stubRegistry{name: "second", vessel: &vessels.Vessel{Name: "Northern Star", MMSI: "111222333"}}
	third := &stubRegistry{name: "third", vessel: &vessels.Vessel{Name: "Never Reached"}}
	dir := newDirectory(t, first, second, third)

	v := dir.Lookup(context.Background(), vessels.Hints{Type: "Yacht", Query: "northern"})

	require.NotNil(t, v)
	assert.Equal(t, "Northern Star", v.Name)
	assert.Equal(t, vessels.SourceLive, v.Source)
	assert.Nil(t, v.Note)
	assert.Equal(t, 1, first.searchCalls)
	assert.Equal(t, 1, second.searchCalls)
	assert.Equal(t, 0, third.searchCalls)
}

func TestLookup_DemoFallback(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		wantName string
	}{
		{"yacht matches first entry", "Yacht", "Sea Explorer"},
		{"case insensitive substring", "sail", "Blue Horizon"},
		{"motor yacht", "motor", "Pacific Dream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubRegistry{name: "stub"}
			dir := newDirectory(t, stub)

			v := dir.Lookup(context.Background(), vessels.Hints{Type: tt.typ, Labels: []string{"Boat"}})

			require.NotNil(t, v)
			assert.Equal(t, tt.wantName, v.Name)
			assert.Equal(t, vessels.SourceDemo, v.Source)
			require.NotNil(t, v.Note)
			assert.Equal(t, vessels.DemoNote, *v.Note)
			assert.Equal(t, 1, stub.searchCalls)
		})
	}
}

func TestLookup_DemoFallbackUnmatchedTypeIsRandomEntry(t *testing.T) {
	dir := newDirectory(t)
	names := map[string]bool{}
	for _, v := range vessels.Demo() {
		names[v.Name] = true
	}

	for range 20 {
		v := dir.Lookup(context.Background(), vessels.Hints{Type: "Speedboat"})
		require.NotNil(t, v)
		assert.True(t, names[v.Name], "unexpected vessel %q", v.Name)
		assert.Equal(t, vessels.SourceDemo, v.Source)
	}
}

func TestMarineTraffic_LookupMMSI(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(
		"GET",
		mtBase+"/vesselmasterdata/v:5/mt-key/mmsi:244660000/protocol:json",
		httpmock.NewStringResponder(http.StatusOK, `[{
			"SHIPNAME": "NORTHERN STAR",
			"MMSI": 244660000,
			"IMO": "9123456",
			"SHIPTYPE": "PLEASURE CRAFT",
			"LENGTH": 24.5,
			"DWT": "120",
			"OWNER": null,
			"FLAG": "NL"
		}]`),
	)

	cfg := testConfig(t)
	dir := vessels.New(cfg, []vessels.Registry{vessels.NewMarineTraffic(&cfg.MarineTraffic, discard())}, discard(), nil)

	v := dir.LookupMMSI(context.Background(), "244660000")

	require.NotNil(t, v)
	assert.Equal(t, "NORTHERN STAR", v.Name)
	assert.Equal(t, "244660000", v.MMSI)
	assert.Equal(t, "9123456", v.IMO)
	assert.Equal(t, "Pleasure Craft", v.Type)
	assert.Equal(t, "24.5m", v.Length)
	assert.Equal(t, "120 GT", v.Tonnage)
	assert.Empty(t, v.Owner)
	assert.Equal(t, "NL", v.Flag)
	assert.Equal(t, vessels.SourceLive, v.Source)

	again := dir.LookupMMSI(context.Background(), "244660000")
	require.NotNil(t, again)
	assert.Equal(t, "NORTHERN STAR", again.Name)
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "second lookup should be served from cache")
}

func TestMarineTraffic_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{"errors":[]}`, vessels.ErrUnexpectedStatus},
		{"forbidden", http.StatusForbidden, `{}`, vessels.ErrUnexpectedStatus},
		{"malformed", http.StatusOK, `{invalid json`, vessels.ErrMalformed},
		{"not an array", http.StatusOK, `{"SHIPNAME":"X"}`, vessels.ErrMalformed},
		{"record not an object", http.StatusOK, `["X"]`, vessels.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHTTPMock(t)
			httpmock.RegisterResponder(
				"GET",
				mtBase+"/vesselmasterdata/v:5/mt-key/imo:9123456/protocol:json",
				httpmock.NewStringResponder(tt.status, tt.body),
			)

			cfg := testConfig(t)
			mt := vessels.NewMarineTraffic(&cfg.MarineTraffic, discard())

			v, err := mt.LookupIMO(context.Background(), "9123456")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, v)
		})
	}
}

func TestMarineTraffic_EmptyResultIsNoMatch(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(
		"GET",
		mtBase+"/shipsearch/v:2/mt-key/shipname:ghost/protocol:jsono",
		httpmock.NewStringResponder(http.StatusOK, `[]`),
	)

	cfg := testConfig(t)
	mt := vessels.NewMarineTraffic(&cfg.MarineTraffic, discard())

	v, err := mt.Search(context.Background(), vessels.Hints{Query: "ghost"})
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = mt.Search(context.Background(), vessels.Hints{Type: "Yacht"})
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestVesselFinder_LookupMMSI(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponderWithQuery(
		"GET",
		vfBase+"/vessels",
		"mmsi=538004553&userkey=vf-key",
		httpmock.NewStringResponder(http.StatusOK, `[{
			"AIS": {"MMSI": 538004553, "IMO": 9334648, "NAME": "OCEAN PEARL", "TYPE": 37, "DESTINATION": "MONACO"},
			"MASTERDATA": {"LENGTH": 60, "DWT": 700, "OWNER": "Pearl Marine", "FLAG": "Marshall Is", "TYPE": "motor yacht"}
		}]`),
	)

	cfg := testConfig(t)
	vf := vessels.NewVesselFinder(&cfg.VesselFinder, discard())

	v, err := vf.LookupMMSI(context.Background(), "538004553")

	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "OCEAN PEARL", v.Name)
	assert.Equal(t, "538004553", v.MMSI)
	assert.Equal(t, "9334648", v.IMO)
	assert.Equal(t, "Motor Yacht", v.Type)
	assert.Equal(t, "60m", v.Length)
	assert.Equal(t, "700 GT", v.Tonnage)
	assert.Equal(t, "MONACO", v.Location)
}

func TestVesselFinder_PartialRecord(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantType string
		wantLen  string
		wantErr  error
	}{
		{
			name:     "ais type without master data",
			body:     `[{"AIS": {"MMSI": "211000111", "NAME": "KLEINE WELLE", "TYPE": "sailing"}}]`,
			wantType: "Sailing",
		},
		{
			name:     "null master data fields",
			body:     `[{"AIS": {"NAME": "DRIFT"}, "MASTERDATA": {"LENGTH": null, "TYPE": "tug"}}]`,
			wantType: "Tug",
		},
		{
			name:    "not an array",
			body:    `{"AIS": {"NAME": "DRIFT"}}`,
			wantErr: vessels.ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHTTPMock(t)
			httpmock.RegisterResponder("GET", vfBase+"/vessels", httpmock.NewStringResponder(http.StatusOK, tt.body))

			cfg := testConfig(t)
			vf := vessels.NewVesselFinder(&cfg.VesselFinder, discard())

			v, err := vf.Search(context.Background(), vessels.Hints{Query: "drift"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, v)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, v)
			assert.Equal(t, tt.wantType, v.Type)
			assert.Equal(t, tt.wantLen, v.Length)
			assert.Empty(t, v.Tonnage)
		})
	}
}

func TestDirectory_FallsThroughFailingRegistry(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(
		"GET",
		mtBase+"/vesselmasterdata/v:5/mt-key/mmsi:538004553/protocol:json",
		httpmock.NewStringResponder(http.StatusTooManyRequests, `{}`),
	)
	httpmock.RegisterResponder(
		"GET",
		vfBase+"/vessels",
		httpmock.NewStringResponder(http.StatusOK, `[{"AIS": {"MMSI": "538004553", "NAME": "OCEAN PEARL"}, "MASTERDATA": {}}]`),
	)

	cfg := testConfig(t)
	dir := vessels.New(cfg, vessels.NewRegistries(cfg, discard()), discard(), nil)

	v := dir.LookupMMSI(context.Background(), "538004553")
	require.NotNil(t, v)
	assert.Equal(t, "OCEAN PEARL", v.Name)
	assert.Equal(t, vessels.SourceLive, v.Source)

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+mtBase+"/vesselmasterdata/v:5/mt-key/mmsi:538004553/protocol:json"])
	assert.Equal(t, 1, info["GET "+vfBase+"/vessels"])
}

func TestDirectory_ErrorsAreNotCached(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(
		"GET",
		mtBase+"/vesselmasterdata/v:5/mt-key/mmsi:123456789/protocol:json",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, `{}`),
	)

	cfg := testConfig(t)
	dir := vessels.New(cfg, []vessels.Registry{vessels.NewMarineTraffic(&cfg.MarineTraffic, discard())}, discard(), nil)

	for range 2 {
		v := dir.LookupMMSI(context.Background(), "123456789")
		require.NotNil(t, v)
		assert.Equal(t, "Sea Explorer", v.Name)
		assert.Equal(t, vessels.SourceDemo, v.Source)
	}
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestNewRegistries(t *testing.T) {
	cfg := testConfig(t)
	regs := vessels.NewRegistries(cfg, discard())
	require.Len(t, regs, 2)
	assert.Equal(t, "marinetraffic", regs[0].Name())
	assert.Equal(t, "vesselfinder", regs[1].Name())

	cfg.MarineTraffic.APIKey = ""
	regs = vessels.NewRegistries(cfg, discard())
	require.Len(t, regs, 1)
	assert.Equal(t, "vesselfinder", regs[0].Name())

	empty := &vessels.Config{}
	require.NoError(t, empty.Finalize(nil))
	assert.Empty(t, vessels.NewRegistries(empty, discard()))
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_MT_KEY", "from-env")
	t.Setenv("TEST_CACHE_TTL", "5m")

	cfg := &vessels.Config{}
	err := cfg.Finalize(&vessels.Env{MarineTrafficKey: "TEST_MT_KEY", CacheTTL: "TEST_CACHE_TTL"})

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.MarineTraffic.APIKey)
	assert.False(t, cfg.VesselFinder.Enabled())
	assert.Equal(t, "https://services.marinetraffic.com/api", cfg.MarineTraffic.BaseURL)
	assert.Equal(t, "https://api.vesselfinder.com", cfg.VesselFinder.BaseURL)
	assert.Equal(t, "5m", cfg.CacheTTL)

	bad := &vessels.Config{CacheTTL: "soon"}
	assert.Error(t, bad.Finalize(nil))
}

func setupMux(dir *vessels.Directory) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, nil, "", dir.Handler().Routes())
	return mux
}

func TestHandler_SearchByMMSI(t *testing.T) {
	mux := setupMux(newDirectory(t))

	req := httptest.NewRequest(http.MethodGet, "/search?mmsi=123456789", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body vessels.SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Sea Explorer", body.Results[0].Name)
	assert.Equal(t, "8765432", body.Results[0].IMO)
	assert.Equal(t, vessels.SourceDemo, body.Results[0].Source)
}

func TestHandler_SearchEmptyResultsIsArray(t *testing.T) {
	mux := setupMux(newDirectory(t))

	req := httptest.NewRequest(http.MethodGet, "/search?imo=0000000", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "results": []}`, rec.Body.String())
}

func TestHandler_Vessel(t *testing.T) {
	tests := []struct {
		name       string
		mmsi       string
		wantStatus int
		wantName   string
	}{
		{"found", "456789123", http.StatusOK, "Pacific Dream"},
		{"not found", "000000000", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := setupMux(newDirectory(t))

			req := httptest.NewRequest(http.MethodGet, "/search/vessel/"+tt.mmsi, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusNotFound {
				assert.JSONEq(t, `{"error": "Vessel not found"}`, rec.Body.String())
				return
			}

			var body vessels.VesselResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.True(t, body.Success)
			require.NotNil(t, body.Vessel)
			assert.Equal(t, tt.wantName, body.Vessel.Name)
		})
	}
}
