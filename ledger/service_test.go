package ledger_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punwinger/bank-transaction/ledger"
	"github.com/punwinger/bank-transaction/ledger/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService() *ledger.Service {
	return ledger.NewService(store.NewMemory(0), nil)
}

func deposit(owner, amount string) ledger.Request {
	return ledger.Request{
		Owner:  owner,
		Amount: decimal.RequireFromString(amount),
		Type:   ledger.TypeDeposit,
	}
}

func withdrawal(owner, amount string) ledger.Request {
	return ledger.Request{
		Owner:  owner,
		Amount: decimal.RequireFromString(amount),
		Type:   ledger.TypeWithdrawal,
	}
}

func transfer(owner, counterparty, amount string) ledger.Request {
	return ledger.Request{
		Owner:        owner,
		Counterparty: counterparty,
		Amount:       decimal.RequireFromString(amount),
		Type:         ledger.TypeTransfer,
	}
}

// =============================================================================
// CREATE
// =============================================================================

func TestService_Create_AssignsIdentifiersAcrossOwners(t *testing.T) {
	// Identifiers come from one shared counter: strictly increasing across
	// the whole ledger, regardless of owner.
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, deposit("alice", "100.00"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, deposit("bob", "100.00"))
	require.NoError(t, err)
	c, err := svc.Create(ctx, withdrawal("alice", "30.00"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, uint64(2), b.ID)
	assert.Equal(t, uint64(3), c.ID)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	long := "abcdefghijklmnopqrstu" // 21 chars

	cases := []struct {
		name string
		req  ledger.Request
	}{
		{"empty owner", deposit("", "10.00")},
		{"owner too long", deposit(long, "10.00")},
		{"unknown type", ledger.Request{Owner: "alice", Amount: decimal.New(1, 0), Type: "REFUND"}},
		{"missing type", ledger.Request{Owner: "alice", Amount: decimal.New(1, 0)}},
		{"transfer without counterparty", ledger.Request{Owner: "alice", Amount: decimal.New(1, 0), Type: ledger.TypeTransfer}},
		{"transfer to self", transfer("alice", "alice", "10.00")},
		{"counterparty too long", transfer("alice", long, "10.00")},
		{"zero amount", deposit("alice", "0")},
		{"negative amount", deposit("alice", "-5.00")},
		{"three fraction digits", deposit("alice", "10.123")},
		{"amount over ceiling", deposit("alice", "1000000000.00")},
		{"description too long", func() ledger.Request {
			r := deposit("alice", "10.00")
			r.Description = long
			return r
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, ledger.ErrValidation)
		})
	}
}

func TestService_Create_AmountBoundaries(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// The ceiling itself is accepted.
	_, err := svc.Create(ctx, deposit("alice", "999999999.99"))
	assert.NoError(t, err)

	// Two fractional digits, including trailing zeros written out.
	_, err = svc.Create(ctx, deposit("alice", "0.01"))
	assert.NoError(t, err)
}

func TestService_Create_CounterpartyAllowedForDeposit(t *testing.T) {
	// The original accepted a counterparty on non-transfer types; only its
	// length is checked there.
	svc := newTestService()
	req := deposit("alice", "10.00")
	req.Counterparty = "bob"

	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestService_Create_CapacityExhausted(t *testing.T) {
	svc := ledger.NewService(store.NewMemory(1), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, deposit("alice", "10.00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, deposit("bob", "10.00"))
	assert.ErrorIs(t, err, ledger.ErrLedgerFull)
}

// =============================================================================
// DUPLICATE WINDOW
// =============================================================================

func TestService_DuplicateWindow_MostRecentOnly(t *testing.T) {
	// The duplicate window is exactly one record deep:
	//   1. create X          -> ok
	//   2. create X again    -> duplicate
	//   3. create Y          -> ok (different amount)
	//   4. create X again    -> ok (Y intervened)
	svc := newTestService()
	ctx := context.Background()

	x := deposit("alice", "100.00")

	_, err := svc.Create(ctx, x)
	require.NoError(t, err)

	_, err = svc.Create(ctx, x)
	assert.ErrorIs(t, err, ledger.ErrDuplicateTransaction)

	_, err = svc.Create(ctx, deposit("alice", "42.00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, x)
	assert.NoError(t, err, "repeating is fine once another record intervened")
}

func TestService_DuplicateWindow_ComparesAllFourFields(t *testing.T) {
	// Amount, type, counterparty and description must all match for a
	// rejection; changing any one of them clears it.
	svc := newTestService()
	ctx := context.Background()

	base := transfer("alice", "bob", "10.00")
	base.Description = "rent"

	_, err := svc.Create(ctx, base)
	require.NoError(t, err)

	_, err = svc.Create(ctx, base)
	assert.ErrorIs(t, err, ledger.ErrDuplicateTransaction)

	other := base
	other.Description = "rent 2"
	_, err = svc.Create(ctx, other)
	assert.NoError(t, err)
}

func TestService_DuplicateWindow_PerOwner(t *testing.T) {
	// The window is scoped to the owner: bob repeating alice's transaction
	// is not a duplicate.
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, deposit("alice", "100.00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, deposit("bob", "100.00"))
	assert.NoError(t, err)
}

func TestService_DuplicateWindow_ClearedByDelete(t *testing.T) {
	// Deleting the most recent record exposes the one before it as the new
	// comparison target.
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, deposit("alice", "100.00"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, deposit("alice", "50.00"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", second.ID))

	_, err = svc.Create(ctx, deposit("alice", "100.00"))
	assert.ErrorIs(t, err, ledger.ErrDuplicateTransaction,
		"after deleting id %d, id %d is the most recent again", second.ID, first.ID)
}

func TestService_Create_ConcurrentDuplicates(t *testing.T) {
	// GIVEN: Many identical creates racing for one owner
	// THEN: Exactly one wins; the duplicate check runs under the owner's
	//       write lock, so the race of the inherited design cannot recur.

	const racers = 8
	svc := newTestService()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, deposit("alice", "100.00"))
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ledger.ErrDuplicateTransaction):
			dup++
		}
	}
	assert.Equal(t, 1, ok, "exactly one identical create may succeed")
	assert.Equal(t, racers-1, dup)
}

// =============================================================================
// UPDATE
// =============================================================================

func TestService_Update_PreservesIDAndCreatedAt(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, deposit("alice", "100.00"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "alice", created.ID, withdrawal("alice", "70.00"))
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.GreaterOrEqual(t, updated.UpdatedAt, created.UpdatedAt)
	assert.Equal(t, ledger.TypeWithdrawal, updated.Type)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("70.00")))

	got, err := svc.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(updated.Amount))
}

func TestService_Update_RejectsOwnerChange(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, deposit("alice", "100.00"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "alice", created.ID, deposit("mallory", "100.00"))
	assert.ErrorIs(t, err, ledger.ErrValidation)

	// The stored record is untouched.
	got, err := svc.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Owner)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Update(context.Background(), "alice", 999, deposit("alice", "10.00"))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_Update_ValidatesFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, deposit("alice", "100.00"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "alice", created.ID, deposit("alice", "10.123"))
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestService_Update_DoesNotGrowSequence(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, deposit("alice", "100.00"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "alice", created.ID, withdrawal("alice", "30.00"))
	require.NoError(t, err)

	page, err := svc.List(ctx, "alice", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

// =============================================================================
// DELETE / GET
// =============================================================================

func TestService_DeleteThenGet_NotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, deposit("alice", "100.00"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", created.ID))

	_, err = svc.Get(ctx, "alice", created.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	// Deleting again is also not found; ids are never reused.
	err = svc.Delete(ctx, "alice", created.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_Get_EmptyOwner(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), "", 1)
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestService_Get_OtherOwnersID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, deposit("alice", "100.00"))
	require.NoError(t, err)

	_, err = svc.Get(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

// =============================================================================
// LIST
// =============================================================================

func TestService_List_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.List(ctx, "", 0, 10)
	assert.ErrorIs(t, err, ledger.ErrValidation)

	_, err = svc.List(ctx, "alice", -1, 10)
	assert.ErrorIs(t, err, ledger.ErrValidation)

	_, err = svc.List(ctx, "alice", 0, 0)
	assert.ErrorIs(t, err, ledger.ErrValidation)

	_, err = svc.List(ctx, "alice", 0, 101)
	assert.ErrorIs(t, err, ledger.ErrValidation)

	_, err = svc.List(ctx, "alice", 0, 100)
	assert.NoError(t, err, "100 is the inclusive ceiling")
}

func TestService_List_UnknownOwnerEmptyPage(t *testing.T) {
	svc := newTestService()

	page, err := svc.List(context.Background(), "nobody", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Zero(t, page.Total)
}

func TestService_List_TotalTracksCreatesMinusDeletes(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	var ids []uint64
	for i := 1; i <= 5; i++ {
		tx, err := svc.Create(ctx, deposit("alice", fmt.Sprintf("%d.00", i)))
		require.NoError(t, err)
		ids = append(ids, tx.ID)
	}
	require.NoError(t, svc.Delete(ctx, "alice", ids[1]))
	require.NoError(t, svc.Delete(ctx, "alice", ids[3]))

	page, err := svc.List(ctx, "alice", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
}

// =============================================================================
// SPEC SCENARIO
// =============================================================================

func TestService_AliceScenario(t *testing.T) {
	// The end-to-end walk: create, duplicate rejection, second create,
	// paging through both records one at a time, then off the end.
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, deposit("alice", "100.00"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.ID)

	_, err = svc.Create(ctx, deposit("alice", "100.00"))
	assert.ErrorIs(t, err, ledger.ErrDuplicateTransaction)

	second, err := svc.Create(ctx, withdrawal("alice", "50.00"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.ID)

	page0, err := svc.List(ctx, "alice", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page0.Total)
	require.Len(t, page0.Content, 1)
	assert.Equal(t, uint64(1), page0.Content[0].ID)

	page1, err := svc.List(ctx, "alice", 1, 1)
	require.NoError(t, err)
	require.Len(t, page1.Content, 1)
	assert.Equal(t, uint64(2), page1.Content[0].ID)

	_, err = svc.List(ctx, "alice", 2, 1)
	require.Error(t, err)
	var pageErr *ledger.PageOutOfRangeError
	require.ErrorAs(t, err, &pageErr)
	assert.Equal(t, 2, pageErr.Total)
}

// =============================================================================
// CONCURRENCY
// =============================================================================

func TestService_ConcurrentCreates_ManyOwners(t *testing.T) {
	// GIVEN: Many owners creating concurrently
	// THEN: Every create succeeds (amounts differ per owner step, so no
	//       duplicates), ids are unique, and every owner sees exactly its
	//       own records in ascending order.

	const owners = 8
	const perOwner = 50

	svc := newTestService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for o := 0; o < owners; o++ {
		wg.Add(1)
		go func(o int) {
			defer wg.Done()
			owner := fmt.Sprintf("user-%d", o)
			for i := 0; i < perOwner; i++ {
				_, err := svc.Create(ctx, deposit(owner, fmt.Sprintf("%d.00", i+1)))
				assert.NoError(t, err)
			}
		}(o)
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for o := 0; o < owners; o++ {
		owner := fmt.Sprintf("user-%d", o)
		page, err := svc.List(ctx, owner, 0, 100)
		require.NoError(t, err)
		assert.Equal(t, perOwner, page.Total)

		prev := uint64(0)
		for _, tx := range page.Content {
			assert.Equal(t, owner, tx.Owner)
			assert.Greater(t, tx.ID, prev, "owner sequence must ascend by id")
			assert.False(t, seen[tx.ID], "id %d appeared twice", tx.ID)
			seen[tx.ID] = true
			prev = tx.ID
		}
	}
	assert.Len(t, seen, owners*perOwner)
}

func TestService_ConcurrentReadsAndWrites(t *testing.T) {
	// Lists, gets, updates and deletes racing over one owner must not
	// corrupt the store or deadlock. Run with -race.
	svc := newTestService()
	ctx := context.Background()

	seed, err := svc.Create(ctx, deposit("alice", "1.00"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				svc.Create(ctx, deposit("alice", fmt.Sprintf("%d.%02d", w+2, i)))
				svc.List(ctx, "alice", 0, 100)
				svc.Get(ctx, "alice", seed.ID)
			}
		}(w)
	}
	wg.Wait()

	page, err := svc.List(ctx, "alice", 0, 100)
	require.NoError(t, err)
	assert.Positive(t, page.Total)
}
