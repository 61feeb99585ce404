package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/service"
)

type fakeSuggestions struct {
	results  []model.PlaceSuggestion
	err      error
	lastKind string
	lastTerm string
	lastHint model.LocationHint
}

func (f *fakeSuggestions) Suggest(_ context.Context, category string, hint model.LocationHint) ([]model.PlaceSuggestion, error) {
	f.lastKind, f.lastTerm, f.lastHint = "suggest", category, hint
	return f.results, f.err
}

func (f *fakeSuggestions) Search(_ context.Context, query string, hint model.LocationHint) ([]model.PlaceSuggestion, error) {
	f.lastKind, f.lastTerm, f.lastHint = "search", query, hint
	return f.results, f.err
}

type fakeBatches struct {
	saved   map[string]*model.PlaceBatch
	saveErr error
}

func newFakeBatches() *fakeBatches {
	return &fakeBatches{saved: map[string]*model.PlaceBatch{}}
}

func (f *fakeBatches) Save(_ context.Context, batch *model.PlaceBatch) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[batch.ID] = batch
	return nil
}

func (f *fakeBatches) Get(_ context.Context, id string) (*model.PlaceBatch, error) {
	b, ok := f.saved[id]
	if !ok {
		return nil, fmt.Errorf("batch %s: %w", id, model.ErrNotFound)
	}
	return b, nil
}

type fakePlaces struct {
	places []model.Place
}

func (f *fakePlaces) List(context.Context) ([]model.Place, error) {
	return append([]model.Place(nil), f.places...), nil
}

func (f *fakePlaces) GetByID(_ context.Context, id string) (*model.Place, error) {
	for _, p := range f.places {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("place %s: %w", id, model.ErrNotFound)
}

func (f *fakePlaces) Create(_ context.Context, place *model.Place) (*model.Place, error) {
	cp := *place
	cp.ID = "place-" + strconv.Itoa(len(f.places)+1)
	f.places = append(f.places, cp)
	return &cp, nil
}

type fakeReviews struct {
	mu        sync.Mutex
	reviews   map[string]model.Review
	photos    map[string][]model.Photo
	photosErr error
	seq       int
}

func newFakeReviews(reviews ...model.Review) *fakeReviews {
	f := &fakeReviews{reviews: map[string]model.Review{}, photos: map[string][]model.Photo{}}
	for _, r := range reviews {
		f.reviews[r.ID] = r
	}
	return f
}

func (f *fakeReviews) ListByPlace(_ context.Context, placeID string) ([]model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Review{}
	for _, r := range f.reviews {
		if r.PlaceID == placeID {
			r.Photos = f.photos[r.ID]
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeReviews) GetByID(_ context.Context, id string) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review %s: %w", id, model.ErrNotFound)
	}
	r.Photos = f.photos[id]
	return &r, nil
}

func (f *fakeReviews) Create(_ context.Context, review *model.Review) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	cp := *review
	cp.ID = "r" + strconv.Itoa(f.seq)
	f.reviews[cp.ID] = cp
	return &cp, nil
}

func (f *fakeReviews) Update(_ context.Context, id string, req model.UpdateReviewRequest) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.reviews[id]
	r.Accessibility, r.Infrastructure, r.Value, r.Comment = req.Accessibility, req.Infrastructure, req.Value, req.Comment
	f.reviews[id] = r
	return &r, nil
}

func (f *fakeReviews) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviews) AddPhotos(_ context.Context, reviewID string, urls []string) ([]model.Photo, error) {
	if f.photosErr != nil {
		return nil, f.photosErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	added := make([]model.Photo, 0, len(urls))
	for _, u := range urls {
		added = append(added, model.Photo{ReviewID: reviewID, URL: u})
	}
	f.photos[reviewID] = append(f.photos[reviewID], added...)
	return added, nil
}

type fakeSummarizer struct {
	mu      sync.Mutex
	summary string
	err     error
	calls   int
}

func (f *fakeSummarizer) Summarize(_ context.Context, reviews []model.Review) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("%s (%d)", f.summary, len(reviews)), nil
}

func (f *fakeSummarizer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// syncScheduler は要約を即座に計算して結果を返す
type syncScheduler struct {
	summarizer *fakeSummarizer
	enqueued   chan string
}

func (s *syncScheduler) Enqueue(placeID string, reviews []model.Review) (string, <-chan service.SummaryResult) {
	ch := make(chan service.SummaryResult, 1)
	summary, err := s.summarizer.Summarize(context.Background(), reviews)
	ch <- service.SummaryResult{TaskID: "task-" + placeID, PlaceID: placeID, Summary: summary, Err: err}
	close(ch)
	if s.enqueued != nil {
		s.enqueued <- placeID
	}
	return "task-" + placeID, ch
}

type fakeAuth struct {
	session    *model.AuthSession
	profile    *model.Profile
	profileErr error
	updated    *model.Profile
	updateErr  error
	loggedOut  string
}

func (f *fakeAuth) SignUp(context.Context, model.SignupRequest) (*model.AuthSession, error) {
	return f.session, nil
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*model.AuthSession, error) {
	if password != "secret" {
		return nil, model.ErrUnauthorized
	}
	return f.session, nil
}

func (f *fakeAuth) Logout(_ context.Context, accessToken string) error {
	f.loggedOut = accessToken
	return nil
}

func (f *fakeAuth) GetUser(context.Context, string) (*model.Principal, error) {
	return &f.session.User, nil
}

func (f *fakeAuth) GetProfile(context.Context, string) (*model.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeAuth) UpdateProfile(_ context.Context, profile *model.Profile) error {
	f.updated = profile
	return f.updateErr
}

type fakeCoarse struct {
	coord  model.Coordinate
	source string
	err    error
}

func (f fakeCoarse) LocateWithSource(context.Context, string) (model.Coordinate, string, error) {
	return f.coord, f.source, f.err
}
