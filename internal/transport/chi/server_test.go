package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/meetlab/scholarmatch/internal/domain"
	domprof "github.com/meetlab/scholarmatch/internal/domain/profile"
	healthuc "github.com/meetlab/scholarmatch/internal/usecase/health"
	profilesuc "github.com/meetlab/scholarmatch/internal/usecase/profiles"
	recommenduc "github.com/meetlab/scholarmatch/internal/usecase/recommend"
)

// --- Mocks ---

type fakeProfileRepo struct {
	profiles map[string]domprof.Profile
	err      error
}

func newFakeProfileRepo(ps ...domprof.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: make(map[string]domprof.Profile)}
	for _, p := range ps {
		r.profiles[p.ID()] = p
	}
	return r
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *domprof.Profile) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, exists := r.profiles[p.ID()]
	r.profiles[p.ID()] = *p
	return !exists, nil
}

func (r *fakeProfileRepo) Get(_ context.Context, id string) (domprof.Profile, error) {
	if r.err != nil {
		return domprof.Profile{}, r.err
	}
	p, ok := r.profiles[id]
	if !ok {
		return domprof.Profile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) List(_ context.Context) ([]domprof.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domprof.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.profiles[id]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, id)
	return nil
}

type fakeEmbedder struct {
	vec []float32
	err error
}

func (m *fakeEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

type fakePinger struct{ err error }

func (p *fakePinger) Ping(_ context.Context) error { return p.err }

func newTestRouter(repo *fakeProfileRepo, emb *fakeEmbedder) *chi.Mux {
	srv := NewServer(
		recommenduc.New(repo, emb),
		profilesuc.New(repo),
		healthuc.New(&fakePinger{}, nil),
		100,
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestRecommend_DefaultsAndOrder(t *testing.T) {
	repo := newFakeProfileRepo(
		domprof.New("me", "Me", "", []string{"ml"}, []float32{1, 0}),
		domprof.New("c1", "C1", "", []string{"ml"}, []float32{1, 0}),
		domprof.New("c2", "C2", "", nil, []float32{0.6, 0.8}),
		domprof.New("c3", "C3", "", nil, []float32{0, 1}),
	)
	router := newTestRouter(repo, &fakeEmbedder{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/me/recommendations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp recommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UserID != "me" {
		t.Errorf("expected user_id 'me', got %q", resp.UserID)
	}
	if resp.Count != 3 {
		t.Fatalf("expected 3 recommendations, got %d", resp.Count)
	}
	if resp.Recommendations[0].ProfileID != "c1" {
		t.Errorf("expected c1 first, got %q", resp.Recommendations[0].ProfileID)
	}
	if resp.Recommendations[0].MatchReason == "" {
		t.Error("expected match reason for shared interest")
	}
	for _, item := range resp.Recommendations {
		if item.ProfileID == "me" {
			t.Error("requester must never appear in results")
		}
	}
}

func TestRecommend_DiversifiesByDefault(t *testing.T) {
	// apply_mmr defaults to on: with two near-duplicates at 0.9 and a
	// distinct candidate at 0.85, a request that never mentions apply_mmr
	// must still swap the second duplicate for the distinct candidate.
	repo := newFakeProfileRepo(
		domprof.New("me", "Me", "", nil, []float32{1, 0}),
		domprof.New("dup1", "D1", "", nil, []float32{0.9, 0.43589}),
		domprof.New("dup2", "D2", "", nil, []float32{0.9, 0.43589}),
		domprof.New("distinct", "X", "", nil, []float32{0.85, -0.52678}),
	)
	router := newTestRouter(repo, &fakeEmbedder{})

	topK := 2
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/me/recommendations",
		recommendRequest{TopK: &topK})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp recommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 recommendations, got %d", resp.Count)
	}
	if resp.Recommendations[0].ProfileID != "dup1" {
		t.Errorf("expected dup1 first, got %q", resp.Recommendations[0].ProfileID)
	}
	if resp.Recommendations[1].ProfileID != "distinct" {
		t.Errorf("expected distinct second, got %q", resp.Recommendations[1].ProfileID)
	}
}

func TestRecommend_MMRCanBeDisabled(t *testing.T) {
	repo := newFakeProfileRepo(
		domprof.New("me", "Me", "", nil, []float32{1, 0}),
		domprof.New("dup1", "D1", "", nil, []float32{0.9, 0.43589}),
		domprof.New("dup2", "D2", "", nil, []float32{0.9, 0.43589}),
		domprof.New("distinct", "X", "", nil, []float32{0.85, -0.52678}),
	)
	router := newTestRouter(repo, &fakeEmbedder{})

	topK := 2
	applyMMR := false
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/me/recommendations",
		recommendRequest{TopK: &topK, ApplyMMR: &applyMMR})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp recommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 ||
		resp.Recommendations[0].ProfileID != "dup1" ||
		resp.Recommendations[1].ProfileID != "dup2" {
		t.Errorf("apply_mmr=false must truncate by raw relevance, got %+v", resp.Recommendations)
	}
}

func TestRecommend_TopKAndThreshold(t *testing.T) {
	repo := newFakeProfileRepo(
		domprof.New("me", "Me", "", nil, []float32{1, 0}),
		domprof.New("c1", "C1", "", nil, []float32{1, 0}),
		domprof.New("c2", "C2", "", nil, []float32{0, 1}),
	)
	router := newTestRouter(repo, &fakeEmbedder{})

	topK := 1
	minScore := 0.5
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/me/recommendations",
		recommendRequest{TopK: &topK, MinScore: &minScore})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp recommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Recommendations[0].ProfileID != "c1" {
		t.Errorf("expected only c1, got %+v", resp.Recommendations)
	}
}

func TestRecommend_EmptyUniverseIsOK(t *testing.T) {
	repo := newFakeProfileRepo(
		domprof.New("me", "Me", "", nil, []float32{1, 0}),
	)
	router := newTestRouter(repo, &fakeEmbedder{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/me/recommendations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty result, got %d", rec.Code)
	}

	var resp recommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 0 {
		t.Errorf("expected empty list, got %d items", resp.Count)
	}
}

func TestRecommend_UnknownUser404(t *testing.T) {
	router := newTestRouter(newFakeProfileRepo(), &fakeEmbedder{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/ghost/recommendations", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != codeProfileNotFound {
		t.Errorf("expected code %q, got %q", codeProfileNotFound, resp.Code)
	}
}

func TestRecommend_InvalidParams400(t *testing.T) {
	repo := newFakeProfileRepo(
		domprof.New("me", "Me", "", nil, []float32{1, 0}),
	)
	router := newTestRouter(repo, &fakeEmbedder{})

	badTopK := -1
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/me/recommendations",
		recommendRequest{TopK: &badTopK})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for top_k=-1, got %d", rec.Code)
	}

	badLambda := 2.0
	applyMMR := true
	rec = doJSON(t, router, http.MethodPost, "/api/v1/users/me/recommendations",
		recommendRequest{ApplyMMR: &applyMMR, MMRLambda: &badLambda})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mmr_lambda=2, got %d", rec.Code)
	}
}

func TestRecommend_TopKAboveCap400(t *testing.T) {
	repo := newFakeProfileRepo(
		domprof.New("me", "Me", "", nil, []float32{1, 0}),
	)
	router := newTestRouter(repo, &fakeEmbedder{})

	topK := 101
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/me/recommendations",
		recommendRequest{TopK: &topK})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for top_k above cap, got %d", rec.Code)
	}
}

func TestRecommend_EmbedderFailure502(t *testing.T) {
	repo := newFakeProfileRepo(
		domprof.New("me", "Me", "", nil, []float32{1, 0}),
		domprof.New("c1", "C1", "", nil, []float32{1, 0}),
	)
	router := newTestRouter(repo, &fakeEmbedder{err: domain.ErrEmbeddingProviderError})

	pref := "robotics"
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/me/recommendations",
		recommendRequest{Preference: &pref})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestRecommend_StoreFailure503(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.err = domain.ErrStoreUnavailable
	router := newTestRouter(repo, &fakeEmbedder{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/me/recommendations", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestProfile_UpsertGetDelete(t *testing.T) {
	repo := newFakeProfileRepo()
	router := newTestRouter(repo, &fakeEmbedder{})

	body := profileRequest{
		Name:        "Ada",
		Affiliation: "MIT",
		Interests:   []string{"ml", "robotics"},
		Embedding:   []float32{0.1, 0.2},
	}
	rec := doJSON(t, router, http.MethodPut, "/api/v1/profiles/u1", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on create, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/profiles/u1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/profiles/u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on get, got %d", rec.Code)
	}
	var got profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Ada" || len(got.Embedding) != 2 {
		t.Errorf("unexpected profile: %+v", got)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/profiles/u1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/profiles/u1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestProfile_UpsertWithoutName400(t *testing.T) {
	router := newTestRouter(newFakeProfileRepo(), &fakeEmbedder{})

	rec := doJSON(t, router, http.MethodPut, "/api/v1/profiles/u1", profileRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(newFakeProfileRepo(), &fakeEmbedder{})

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != string(healthuc.Healthy) {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
}
