package fetch

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/five82/storefront/internal/api"
	"github.com/five82/storefront/internal/logging"
	"github.com/five82/storefront/internal/query"
	"github.com/five82/storefront/internal/state"
)

// Stores bundles the state containers the orchestrator writes to.
type Stores struct {
	Lists     *state.Lists
	Cart      *state.CartStore
	Status    *state.StatusTracker
	Analytics *state.AnalyticsStore
}

// NewStores builds every container with its startup defaults.
func NewStores() Stores {
	return Stores{
		Lists:     state.NewLists(),
		Cart:      state.NewCartStore(),
		Status:    state.NewStatusTracker(),
		Analytics: &state.AnalyticsStore{},
	}
}

// Request describes one list fetch.
type Request struct {
	Domain     query.Domain
	Query      query.NormalizedQuery
	Privileged bool
	// Dashboard selects the admin/seller product listing instead of the storefront one.
	Dashboard bool
}

// Outcome reports what happened to a fetch result.
type Outcome int

const (
	Applied Outcome = iota
	Superseded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Superseded:
		return "superseded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ErrUnknownDomain is returned for a request naming no list domain.
var ErrUnknownDomain = errors.New("unknown list domain")

// Orchestrator issues list fetches and writes their results into the stores.
// For each domain only the most recently issued request may touch the store
// or the status tiers; older responses are dropped when they arrive.
type Orchestrator struct {
	client api.Fetcher
	stores Stores
	log    logrus.FieldLogger

	mu     sync.Mutex
	issued map[query.Domain]uint64

	wg sync.WaitGroup
}

// New returns an Orchestrator. A nil logger discards output.
func New(client api.Fetcher, stores Stores, log logrus.FieldLogger) *Orchestrator {
	return &Orchestrator{
		client: client,
		stores: stores,
		log:    logging.OrDiscard(log),
		issued: make(map[query.Domain]uint64),
	}
}

// Stores returns the containers the orchestrator writes to.
func (o *Orchestrator) Stores() Stores {
	return o.stores
}

// ticket is an issued request waiting for its response.
type ticket struct {
	req Request
	seq uint64
}

// Load issues req and blocks until its response is applied or discarded.
func (o *Orchestrator) Load(ctx context.Context, req Request) (Outcome, error) {
	t, err := o.issue(req)
	if err != nil {
		return Failed, err
	}
	return o.complete(ctx, t)
}

// Go issues req now and completes it in the background. Issue order, not
// completion order, decides which response wins.
func (o *Orchestrator) Go(ctx context.Context, req Request) {
	t, err := o.issue(req)
	if err != nil {
		o.log.WithError(err).WithField("domain", req.Domain).Warn("fetch not issued")
		return
	}
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		_, _ = o.complete(ctx, t)
	}()
}

// Wait blocks until every background fetch has completed.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Latest returns the sequence number of the newest request issued for domain.
func (o *Orchestrator) Latest(domain query.Domain) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.issued[domain]
}

func (o *Orchestrator) issue(req Request) (ticket, error) {
	if !known(req.Domain) {
		return ticket{}, errors.Wrapf(ErrUnknownDomain, "%q", req.Domain)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.issued[req.Domain]++
	t := ticket{req: req, seq: o.issued[req.Domain]}
	o.stores.Status.Dispatch(startAction(req.Domain))

	o.log.WithFields(logrus.Fields{
		"domain":     req.Domain,
		"seq":        t.seq,
		"page":       req.Query.PageNumber,
		"privileged": req.Privileged,
	}).Debug("fetch issued")
	return t, nil
}

func (o *Orchestrator) complete(ctx context.Context, t ticket) (Outcome, error) {
	apply, err := o.fetch(ctx, t.req)

	o.mu.Lock()
	defer o.mu.Unlock()

	log := o.log.WithFields(logrus.Fields{"domain": t.req.Domain, "seq": t.seq})
	if latest := o.issued[t.req.Domain]; latest != t.seq {
		log.WithField("latest", latest).Debug("discarding superseded response")
		return Superseded, nil
	}
	if err != nil {
		log.WithError(err).Warn("fetch failed")
		o.stores.Status.Dispatch(failAction(t.req.Domain, api.UserMessage(err)))
		return Failed, errors.Wrapf(err, "fetch %s", t.req.Domain)
	}
	apply()
	o.stores.Status.Dispatch(successAction(t.req.Domain))
	log.Debug("fetch applied")
	return Applied, nil
}

func (o *Orchestrator) fetch(ctx context.Context, req Request) (func(), error) {
	lists := o.stores.Lists
	switch req.Domain {
	case query.DomainProducts:
		if req.Dashboard {
			return loadPage(ctx, lists.Products, func(ctx context.Context) (api.Page[api.Product], error) {
				return o.client.FetchDashboardProducts(ctx, req.Query.PageOnly(), req.Privileged)
			})
		}
		return loadPage(ctx, lists.Products, func(ctx context.Context) (api.Page[api.Product], error) {
			return o.client.FetchProducts(ctx, req.Query)
		})
	case query.DomainCategories:
		return loadPage(ctx, lists.Categories, func(ctx context.Context) (api.Page[api.Category], error) {
			return o.client.FetchCategories(ctx, req.Query)
		})
	case query.DomainOrders:
		return loadPage(ctx, lists.Orders, func(ctx context.Context) (api.Page[api.Order], error) {
			return o.client.FetchOrders(ctx, req.Query, req.Privileged)
		})
	case query.DomainSellers:
		return loadPage(ctx, lists.Sellers, func(ctx context.Context) (api.Page[api.Seller], error) {
			return o.client.FetchSellers(ctx, req.Query)
		})
	}
	return nil, ErrUnknownDomain
}

func loadPage[T any](ctx context.Context, store *state.ListStore[T], call func(context.Context) (api.Page[T], error)) (func(), error) {
	page, err := call(ctx)
	if err != nil {
		return nil, err
	}
	return func() { state.ReplacePage(store, page) }, nil
}

func known(d query.Domain) bool {
	for _, v := range query.Domains {
		if v == d {
			return true
		}
	}
	return false
}

// Categories report into their own tier; every other domain uses the global tier.

func startAction(d query.Domain) state.StatusAction {
	if d == query.DomainCategories {
		return state.StatusAction{Kind: state.CategoryStarted}
	}
	return state.StatusAction{Kind: state.FetchStarted}
}

func successAction(d query.Domain) state.StatusAction {
	if d == query.DomainCategories {
		return state.StatusAction{Kind: state.CategorySucceeded}
	}
	return state.StatusAction{Kind: state.Succeeded}
}

func failAction(d query.Domain, msg string) state.StatusAction {
	if d == query.DomainCategories {
		return state.StatusAction{Kind: state.CategoryFailed, Message: msg}
	}
	return state.StatusAction{Kind: state.Failed, Message: msg}
}
