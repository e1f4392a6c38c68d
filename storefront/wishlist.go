package storefront

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/oren0115/ecommerce-sub000/client"
	"github.com/oren0115/ecommerce-sub000/models"
)

// ErrBusy means a toggle is already in flight for the product; the control
// should render a loading state and ignore further activation.
var ErrBusy = errors.New("wishlist operation already in flight")

const defaultDebounce = 300 * time.Millisecond

// MembershipState tracks one product's wishlist membership locally.
//
//	Unknown -> Checking -> {Member, NotMember}
//	Member -> Removing -> NotMember
//	NotMember -> Adding -> Member
//
// Checking, Adding and Removing are transient; a network failure from a
// transient state falls back to the prior stable state instead of sticking.
type MembershipState int

const (
	StateUnknown MembershipState = iota
	StateChecking
	StateMember
	StateNotMember
	StateAdding
	StateRemoving
)

// Transient reports whether the state disables the control's interactivity.
func (s MembershipState) Transient() bool {
	return s == StateChecking || s == StateAdding || s == StateRemoving
}

func (s MembershipState) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateMember:
		return "member"
	case StateNotMember:
		return "not-member"
	case StateAdding:
		return "adding"
	case StateRemoving:
		return "removing"
	default:
		return "unknown"
	}
}

type checkResult struct {
	member  bool
	entryID int
}

type membership struct {
	state   MembershipState
	entryID int
	gen     int
	timer   *time.Timer
	waiters []chan checkResult
}

// Wishlist keeps per-product membership in sync with the server. Membership
// lookups are debounced per product so rapid re-renders collapse onto a
// single request; membership is advisory, so every failure path degrades to
// "not a member" rather than blocking the UI.
type Wishlist struct {
	mu      sync.Mutex
	api     *client.Client
	counter *Counter
	entries map[int]*membership
	nextGen int
	closed  bool

	debounce time.Duration
	sfg      singleflight.Group

	// onLoginRequired navigates to the login screen when an
	// unauthenticated user tries to toggle.
	onLoginRequired func()
}

// WishlistOption customizes a Wishlist at construction time.
type WishlistOption func(*Wishlist)

// WithDebounce overrides the 300ms quiet period (tests use a short one).
func WithDebounce(d time.Duration) WishlistOption {
	return func(w *Wishlist) { w.debounce = d }
}

func NewWishlist(api *client.Client, counter *Counter, onLoginRequired func(), opts ...WishlistOption) *Wishlist {
	if onLoginRequired == nil {
		onLoginRequired = func() {}
	}
	w := &Wishlist{
		api:             api,
		counter:         counter,
		entries:         make(map[int]*membership),
		debounce:        defaultDebounce,
		onLoginRequired: onLoginRequired,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Check reports whether the product is in the wishlist and, if so, under
// which entry id. Without a session it answers "not a member" immediately
// and issues no request. Otherwise the lookup waits out a quiet period per
// product, so callers arriving within the window share one request. A 401
// or any other failure degrades to the last stable local answer; the global
// auth handling already happened inside the API client.
func (w *Wishlist) Check(ctx context.Context, productID int) (bool, int) {
	if !w.api.Authenticated() {
		return false, 0
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false, 0
	}
	m := w.entry(productID)
	ch := make(chan checkResult, 1)
	m.waiters = append(m.waiters, ch)
	if m.timer == nil {
		gen := m.gen
		m.timer = time.AfterFunc(w.debounce, func() {
			w.runCheck(productID, gen)
		})
	} else {
		m.timer.Reset(w.debounce)
	}
	w.mu.Unlock()

	select {
	case <-ctx.Done():
		return false, 0
	case res := <-ch:
		return res.member, res.entryID
	}
}

// Toggle flips the product's membership. Unauthenticated callers are sent
// to login and nothing changes locally. While a toggle is in flight further
// toggles on the same product return ErrBusy. Returns the resulting
// membership.
func (w *Wishlist) Toggle(ctx context.Context, product *models.Product) (bool, error) {
	if product == nil {
		return false, &client.ValidationError{Message: "product is required"}
	}
	if !w.api.Authenticated() {
		w.onLoginRequired()
		return false, client.ErrUnauthenticated
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false, errors.New("wishlist is closed")
	}
	m := w.entry(product.ID)
	if m.state.Transient() {
		member := m.state == StateMember || m.state == StateRemoving
		w.mu.Unlock()
		return member, ErrBusy
	}

	if m.state == StateMember {
		entryID := m.entryID
		m.state = StateRemoving
		w.mu.Unlock()
		return w.remove(ctx, product.ID, entryID)
	}

	// Unknown counts as not-a-member; the server enforces at most one
	// row per product, so a duplicate add is rejected, not doubled.
	m.state = StateAdding
	w.mu.Unlock()
	return w.add(ctx, product.ID)
}

// State returns the current local membership state for a product.
func (w *Wishlist) State(productID int) MembershipState {
	w.mu.Lock()
	defer w.mu.Unlock()
	if m, ok := w.entries[productID]; ok {
		return m.state
	}
	return StateUnknown
}

// EntryID returns the server-assigned membership id, zero when not a member
// or not yet confirmed.
func (w *Wishlist) EntryID(productID int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if m, ok := w.entries[productID]; ok {
		return m.entryID
	}
	return 0
}

// Busy reports whether the product's control should be disabled.
func (w *Wishlist) Busy(productID int) bool {
	return w.State(productID).Transient()
}

// Reset drops all cached membership and cancels pending lookups. Called
// when the authentication state changes so no stale check resolves against
// a session that no longer exists.
func (w *Wishlist) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flushLocked()
}

// Close cancels pending lookups and rejects further use.
func (w *Wishlist) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.flushLocked()
}

func (w *Wishlist) remove(ctx context.Context, productID, entryID int) (bool, error) {
	err := w.api.RemoveFromWishlist(ctx, entryID)

	w.mu.Lock()
	m := w.entry(productID)
	if err != nil {
		m.state = StateMember
		w.mu.Unlock()
		return true, err
	}
	m.state = StateNotMember
	m.entryID = 0
	w.mu.Unlock()

	w.counter.Add(-1)
	return false, nil
}

func (w *Wishlist) add(ctx context.Context, productID int) (bool, error) {
	entryID, err := w.api.AddToWishlist(ctx, productID)

	w.mu.Lock()
	m := w.entry(productID)
	if err != nil {
		m.state = StateNotMember
		w.mu.Unlock()
		return false, err
	}
	m.state = StateMember
	m.entryID = entryID
	w.mu.Unlock()

	w.counter.Add(1)

	// Not every backend version returns the entry id from the create
	// call; a confirmatory read closes that gap.
	if status, err := w.fetch(ctx, productID); err == nil && status.InWishlist {
		w.mu.Lock()
		if m := w.entries[productID]; m != nil && m.state == StateMember {
			m.entryID = status.EntryID
		}
		w.mu.Unlock()
	}
	return true, nil
}

// runCheck fires when a product's debounce window goes quiet. It resolves
// every caller that joined the window with one network round trip.
func (w *Wishlist) runCheck(productID, gen int) {
	w.mu.Lock()
	m, ok := w.entries[productID]
	if !ok || m.gen != gen || w.closed {
		w.mu.Unlock()
		return
	}
	m.timer = nil
	waiters := m.waiters
	m.waiters = nil
	prev := m.state
	claimed := !prev.Transient()
	if claimed {
		m.state = StateChecking
	}
	w.mu.Unlock()

	status, err := w.fetch(context.Background(), productID)

	w.mu.Lock()
	m, ok = w.entries[productID]
	if !ok || m.gen != gen {
		w.mu.Unlock()
		deliver(waiters, checkResult{})
		return
	}

	var res checkResult
	switch {
	case err != nil:
		// Degrade: restore the prior stable state and answer from it.
		if claimed {
			if prev == StateMember {
				m.state = StateMember
			} else {
				m.state = StateNotMember
			}
		}
		res = checkResult{member: m.state == StateMember, entryID: m.entryID}
		if !client.IsStatus(err, 401) {
			log.Printf("wishlist check for product %d failed: %v", productID, err)
		}
	case claimed:
		if status.InWishlist {
			m.state = StateMember
			m.entryID = status.EntryID
		} else {
			m.state = StateNotMember
			m.entryID = 0
		}
		res = checkResult{member: status.InWishlist, entryID: status.EntryID}
	default:
		// A toggle owned the state while we were fetching; report the
		// server's answer but leave the in-flight transition alone.
		res = checkResult{member: status.InWishlist, entryID: status.EntryID}
	}
	w.mu.Unlock()

	deliver(waiters, res)
}

// fetch collapses concurrent lookups for the same product onto one request.
func (w *Wishlist) fetch(ctx context.Context, productID int) (models.WishlistStatus, error) {
	v, err, _ := w.sfg.Do(strconv.Itoa(productID), func() (any, error) {
		return w.api.CheckWishlist(ctx, productID)
	})
	if err != nil {
		return models.WishlistStatus{}, err
	}
	return v.(models.WishlistStatus), nil
}

// entry returns the membership record for a product, creating it on first
// use. Caller holds the lock.
func (w *Wishlist) entry(productID int) *membership {
	m, ok := w.entries[productID]
	if !ok {
		w.nextGen++
		m = &membership{state: StateUnknown, gen: w.nextGen}
		w.entries[productID] = m
	}
	return m
}

// flushLocked stops every pending timer, answers waiters with "not a
// member" and drops all cached state. Caller holds the lock.
func (w *Wishlist) flushLocked() {
	for id, m := range w.entries {
		if m.timer != nil {
			m.timer.Stop()
		}
		deliver(m.waiters, checkResult{})
		delete(w.entries, id)
	}
}

func deliver(waiters []chan checkResult, res checkResult) {
	for _, ch := range waiters {
		ch <- res
	}
}
