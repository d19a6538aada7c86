package verify

import (
	"context"
	"errors"
	"sync"

	"github.com/sells-group/dealer-scout/internal/model"
)

// fakeSite serves canned statuses and page text per URL.
type fakeSite struct {
	mu       sync.Mutex
	statuses map[string]model.WebsiteStatus
	texts    map[string]string
	fetchErr map[string]error
	checks   int
	fetches  int
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		statuses: map[string]model.WebsiteStatus{},
		texts:    map[string]string{},
		fetchErr: map[string]error{},
	}
}

func (f *fakeSite) page(url, text string) *fakeSite {
	f.statuses[url] = model.StatusFromCode(200)
	f.texts[url] = text
	return f
}

func (f *fakeSite) Check(_ context.Context, url string) model.WebsiteStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	if s, ok := f.statuses[url]; ok {
		return s
	}
	return model.WebsiteStatus{State: model.WebsiteUnreachable, Reason: "no such host"}
}

func (f *fakeSite) FetchText(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if err, ok := f.fetchErr[url]; ok {
		return "", err
	}
	if t, ok := f.texts[url]; ok {
		return t, nil
	}
	return "", errors.New("no such host")
}
