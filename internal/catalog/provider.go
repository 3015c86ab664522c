// Package catalog supplies read-only product snapshots to the recommendation
// engine. The engine itself never performs I/O: a Provider is resolved by the
// service layer before scoring begins, and scoring runs on the returned
// in-memory slice.
//
// Two providers exist: an HTTP client for the external catalog endpoint
// (which responds with {"products": [...]}) and a database-backed provider
// for the locally administered catalog. Both assign stable product keys at
// the boundary so the engine's rule table never sees display names.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

// Provider returns the current product snapshot. Implementations must return
// a fresh slice the caller may keep; an empty catalog is a valid result, not
// an error.
type Provider interface {
	Snapshot(ctx context.Context) ([]domain.Product, error)
}

// nameKeys maps known external display names to stable rule-table keys.
// Products absent from this map (and without a persisted Key) stay outside
// the rule strategy's closed world: they can still be scored by keywords,
// but no rule ever fires for them.
var nameKeys = map[string]domain.ProductKey{
	"Витамин D3":              "vitamin-d3",
	"Омега-3 Premium":         "omega-3-premium",
	"Магний цитрат":           "magnesium-citrate",
	"B-комплекс энергия":      "b-complex",
	"Витамин C липосомальный": "vitamin-c-liposomal",
	"Цинк хелат":              "zinc-chelate",
	"Коэнзим Q10":             "coenzyme-q10",
	"Железо бисглицинат":      "iron-bisglycinate",
	"Куркумин":                "curcumin",
	"Пробиотики Premium":      "probiotics-premium",
	"Коллаген морской":        "marine-collagen",
	"Ашваганда":               "ashwagandha",
	"L-теанин":                "l-theanine",
	"Мелатонин":               "melatonin",
	"Креатин моногидрат":      "creatine-monohydrate",
	"Родиола розовая":         "rhodiola-rosea",
}

// KeyForName returns the stable key for a known external display name.
func KeyForName(name string) (domain.ProductKey, bool) {
	k, ok := nameKeys[strings.TrimSpace(name)]
	return k, ok
}

// Slug derives a lowercase, hyphen-separated key candidate from free text.
// Used by the admin flow when curating a rule key for a new product; it is
// never applied implicitly, so an unmapped product cannot accidentally join
// the rule table.
func Slug(s string) domain.ProductKey {
	var b strings.Builder
	prevHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return domain.ProductKey(strings.TrimSuffix(b.String(), "-"))
}

// AssignKeys fills in the Key of every product whose display name is known,
// leaving already-set keys untouched. It mutates the slice in place and
// returns it for chaining.
func AssignKeys(products []domain.Product) []domain.Product {
	for i := range products {
		if products[i].Key != "" {
			continue
		}
		if k, ok := KeyForName(products[i].Name); ok {
			products[i].Key = k
		}
	}
	return products
}

// HTTPProvider fetches the snapshot from the external catalog endpoint,
// which responds with {"products": [...]}. The zero value is not usable;
// construct with NewHTTPProvider.
type HTTPProvider struct {
	url    string
	client *http.Client
}

// NewHTTPProvider builds a provider for the given endpoint URL. A non-positive
// timeout defaults to 10s.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Snapshot implements Provider. Transport failures and non-200 responses are
// returned as errors for the caller to surface; the engine never sees them.
func (p *HTTPProvider) Snapshot(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned %s", resp.Status)
	}

	var body struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return AssignKeys(body.Products), nil
}

// ProductLister is the narrow repository contract the RepoProvider needs.
type ProductLister interface {
	ListProducts(ctx context.Context, category string, inStockOnly bool) ([]domain.Product, error)
}

// RepoProvider serves snapshots from the locally administered catalog,
// restricted to in-stock products like the external endpoint.
type RepoProvider struct {
	Repo ProductLister
}

// Snapshot implements Provider.
func (p *RepoProvider) Snapshot(ctx context.Context) ([]domain.Product, error) {
	products, err := p.Repo.ListProducts(ctx, "", true)
	if err != nil {
		return nil, err
	}
	return AssignKeys(products), nil
}

// Static is a fixed in-memory provider, convenient for tests and for running
// without a database.
type Static []domain.Product

// Snapshot implements Provider. The backing slice is copied so callers
// cannot mutate the source.
func (s Static) Snapshot(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s))
	copy(out, s)
	return AssignKeys(out), nil
}
