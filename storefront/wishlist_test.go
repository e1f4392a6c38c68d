package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oren0115/ecommerce-sub000/client"
	"github.com/oren0115/ecommerce-sub000/models"
)

// fakeWishlistBackend is an in-memory stand-in for the wishlist endpoints.
type fakeWishlistBackend struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]int // productID -> entryID

	addCalls    atomic.Int32
	removeCalls atomic.Int32
	checkCalls  atomic.Int32

	omitIDOnAdd bool
	failChecks  bool
	failRemoves bool
	releaseAdd  chan struct{} // when non-nil, add blocks until closed

	calls   []string
	callsMu sync.Mutex
}

func newFakeWishlistBackend() *fakeWishlistBackend {
	return &fakeWishlistBackend{nextID: 100, entries: make(map[int]int)}
}

func (f *fakeWishlistBackend) record(call string) {
	f.callsMu.Lock()
	f.calls = append(f.calls, call)
	f.callsMu.Unlock()
}

func (f *fakeWishlistBackend) callLog() []string {
	f.callsMu.Lock()
	defer f.callsMu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeWishlistBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.record("POST /api/auth/login")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"token":"test-token","user":{"id":7,"username":"jane","role":"user"}}}`))
	})

	mux.HandleFunc("POST /api/wishlist", func(w http.ResponseWriter, r *http.Request) {
		f.record("POST /api/wishlist")
		f.addCalls.Add(1)
		if f.releaseAdd != nil {
			<-f.releaseAdd
		}
		var body struct {
			ProductId int `json:"productId"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		id, exists := f.entries[body.ProductId]
		if !exists {
			f.nextID++
			id = f.nextID
			f.entries[body.ProductId] = id
		}
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if f.omitIDOnAdd {
			w.Write([]byte(`{"message":"added to wishlist"}`))
			return
		}
		fmt.Fprintf(w, `{"id":%d}`, id)
	})

	mux.HandleFunc("DELETE /api/wishlist/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.record("DELETE /api/wishlist/" + r.PathValue("id"))
		f.removeCalls.Add(1)
		if f.failRemoves {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		entryID, _ := strconv.Atoi(r.PathValue("id"))

		f.mu.Lock()
		for productID, id := range f.entries {
			if id == entryID {
				delete(f.entries, productID)
				break
			}
		}
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /api/wishlist/check/{productId}", func(w http.ResponseWriter, r *http.Request) {
		f.record("GET /api/wishlist/check/" + r.PathValue("productId"))
		f.checkCalls.Add(1)
		if f.failChecks {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		productID, _ := strconv.Atoi(r.PathValue("productId"))

		f.mu.Lock()
		id, member := f.entries[productID]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"inWishlist":%t,"entryId":%d}`, member, id)
	})

	return mux
}

func loggedIn(t *testing.T, backend *fakeWishlistBackend) (*client.Client, *Wishlist, *Counter) {
	t.Helper()
	api, store := newTestAPI(t, backend.handler())
	require.NoError(t, store.Set("test-token", &models.User{ID: 7, Username: "jane"}))
	counter := NewCounter()
	w := NewWishlist(api, counter, func() {}, WithDebounce(50*time.Millisecond))
	t.Cleanup(w.Close)
	return api, w, counter
}

func TestCheckUnauthenticatedShortCircuits(t *testing.T) {
	backend := newFakeWishlistBackend()
	api, _ := newTestAPI(t, backend.handler())
	w := NewWishlist(api, NewCounter(), func() {}, WithDebounce(time.Millisecond))
	defer w.Close()

	member, entryID := w.Check(context.Background(), 1)
	assert.False(t, member)
	assert.Zero(t, entryID)
	assert.Zero(t, backend.checkCalls.Load(), "no session means no network call")
}

func TestCheckDebounceCollapsesRapidCalls(t *testing.T) {
	backend := newFakeWishlistBackend()
	backend.entries[1] = 101
	_, w, _ := loggedIn(t, backend)

	var wg sync.WaitGroup
	results := make([]bool, 3)
	for i := range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = w.Check(context.Background(), 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), backend.checkCalls.Load(), "three triggers inside the window issue one request")
	for _, member := range results {
		assert.True(t, member, "every caller gets the shared answer")
	}
	assert.Equal(t, StateMember, w.State(1))
	assert.Equal(t, 101, w.EntryID(1))
}

func TestCheckDistinctProductsDoNotCollapse(t *testing.T) {
	backend := newFakeWishlistBackend()
	_, w, _ := loggedIn(t, backend)

	var wg sync.WaitGroup
	for _, productID := range []int{1, 2} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Check(context.Background(), productID)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(2), backend.checkCalls.Load(), "debounce windows are per product")
}

func TestCheckFailureDegradesToNotMember(t *testing.T) {
	backend := newFakeWishlistBackend()
	backend.failChecks = true
	_, w, _ := loggedIn(t, backend)

	member, _ := w.Check(context.Background(), 1)
	assert.False(t, member)
	assert.Equal(t, StateNotMember, w.State(1), "a failed check settles on a stable state, not a stuck one")
}

func TestToggleUnauthenticatedNavigatesToLogin(t *testing.T) {
	backend := newFakeWishlistBackend()
	api, _ := newTestAPI(t, backend.handler())
	var loginRequests atomic.Int32
	w := NewWishlist(api, NewCounter(), func() { loginRequests.Add(1) })
	defer w.Close()

	member, err := w.Toggle(context.Background(), sneakers(5))
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
	assert.False(t, member)
	assert.Equal(t, int32(1), loginRequests.Load())
	assert.Zero(t, backend.addCalls.Load())
	assert.Equal(t, StateUnknown, w.State(1), "local membership state is untouched")
}

func TestToggleTwiceReturnsToOriginalState(t *testing.T) {
	backend := newFakeWishlistBackend()
	_, w, counter := loggedIn(t, backend)
	product := sneakers(5)

	member, err := w.Toggle(context.Background(), product)
	require.NoError(t, err)
	assert.True(t, member)
	assert.Equal(t, StateMember, w.State(product.ID))
	assert.Equal(t, 1, counter.Value())

	member, err = w.Toggle(context.Background(), product)
	require.NoError(t, err)
	assert.False(t, member)
	assert.Equal(t, StateNotMember, w.State(product.ID))
	assert.Zero(t, counter.Value())

	assert.Equal(t, int32(1), backend.addCalls.Load())
	assert.Equal(t, int32(1), backend.removeCalls.Load())
	backend.mu.Lock()
	assert.Empty(t, backend.entries)
	backend.mu.Unlock()
}

func TestToggleAddConfirmsServerAssignedID(t *testing.T) {
	backend := newFakeWishlistBackend()
	backend.omitIDOnAdd = true
	_, w, _ := loggedIn(t, backend)
	product := sneakers(5)

	member, err := w.Toggle(context.Background(), product)
	require.NoError(t, err)
	assert.True(t, member)

	// The create response carried no id; the confirmatory read fills it in.
	backend.mu.Lock()
	want := backend.entries[product.ID]
	backend.mu.Unlock()
	require.NotZero(t, want)
	assert.Equal(t, want, w.EntryID(product.ID))
	assert.GreaterOrEqual(t, backend.checkCalls.Load(), int32(1))
}

func TestToggleWhileInFlightReportsBusy(t *testing.T) {
	backend := newFakeWishlistBackend()
	backend.releaseAdd = make(chan struct{})
	_, w, _ := loggedIn(t, backend)
	product := sneakers(5)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := w.Toggle(context.Background(), product)
		assert.NoError(t, err)
	}()

	require.Eventually(t, func() bool { return w.Busy(product.ID) },
		time.Second, time.Millisecond)

	_, err := w.Toggle(context.Background(), product)
	assert.ErrorIs(t, err, ErrBusy)

	close(backend.releaseAdd)
	<-done
	assert.Equal(t, int32(1), backend.addCalls.Load())
}

func TestToggleRemoveFailureRestoresMember(t *testing.T) {
	backend := newFakeWishlistBackend()
	backend.entries[1] = 101
	_, w, counter := loggedIn(t, backend)
	product := sneakers(5)

	member, entryID := w.Check(context.Background(), product.ID)
	require.True(t, member)
	require.Equal(t, 101, entryID)
	counter.Set(1)

	backend.failRemoves = true
	member, err := w.Toggle(context.Background(), product)
	require.Error(t, err)
	assert.True(t, member, "a failed remove leaves the product a member")
	assert.Equal(t, StateMember, w.State(product.ID))
	assert.Equal(t, 101, w.EntryID(product.ID))
	assert.Equal(t, 1, counter.Value(), "no count delta on failure")
}

func TestResetCancelsPendingChecks(t *testing.T) {
	backend := newFakeWishlistBackend()
	api, store := newTestAPI(t, backend.handler())
	require.NoError(t, store.Set("test-token", &models.User{ID: 7}))
	w := NewWishlist(api, NewCounter(), func() {}, WithDebounce(500*time.Millisecond))
	defer w.Close()

	results := make(chan bool, 1)
	go func() {
		member, _ := w.Check(context.Background(), 1)
		results <- member
	}()

	// Let the check enter its debounce window, then invalidate the session
	// state underneath it.
	time.Sleep(20 * time.Millisecond)
	w.Reset()

	select {
	case member := <-results:
		assert.False(t, member)
	case <-time.After(time.Second):
		t.Fatal("pending check was not cancelled by Reset")
	}
	assert.Zero(t, backend.checkCalls.Load(), "a cancelled debounce never reaches the network")
}

func TestWishlistEndToEndFlow(t *testing.T) {
	backend := newFakeWishlistBackend()
	api, store := newTestAPI(t, backend.handler())

	var navigatedToLogin atomic.Int32
	counter := NewCounter()
	var counterValues []int
	counter.Subscribe(func(v int) { counterValues = append(counterValues, v) })

	w := NewWishlist(api, counter, func() { navigatedToLogin.Add(1) }, WithDebounce(10*time.Millisecond))
	defer w.Close()

	product := sneakers(5)
	ctx := context.Background()

	// Not logged in: the toggle navigates to login and touches nothing.
	_, err := w.Toggle(ctx, product)
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
	assert.Equal(t, int32(1), navigatedToLogin.Load())
	assert.Empty(t, backend.callLog())

	// Log in: both session slots populate.
	_, err = api.Login(ctx, "jane", "password123")
	require.NoError(t, err)
	assert.Equal(t, "test-token", store.Token())
	_, ok := store.User()
	require.True(t, ok)

	// Toggle again: one add, then a confirmatory check, count goes to 1.
	member, err := w.Toggle(ctx, product)
	require.NoError(t, err)
	assert.True(t, member)
	assert.Equal(t, []int{1}, counterValues)

	calls := backend.callLog()
	require.Len(t, calls, 3)
	assert.Equal(t, "POST /api/auth/login", calls[0])
	assert.Equal(t, "POST /api/wishlist", calls[1])
	assert.True(t, strings.HasPrefix(calls[2], "GET /api/wishlist/check/"))
}
