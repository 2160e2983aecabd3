package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"expense_tracker/internal/db/dbtest"
	"expense_tracker/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite runs every store against a fresh in-memory database
type StoreTestSuite struct {
	suite.Suite
	ctx      context.Context
	users    *UserStore
	expenses *ExpenseStore
	budgets  *BudgetStore
	alice    domain.User
	bob      domain.User
}

func (suite *StoreTestSuite) SetupTest() {
	gdb := dbtest.New(suite.T())
	suite.ctx = context.Background()
	suite.users = NewUserStore(gdb)
	suite.expenses = NewExpenseStore(gdb)
	suite.budgets = NewBudgetStore(gdb)

	suite.alice = domain.User{Name: "Alice", Email: "alice@example.com", Password: "x", Currency: "USD"}
	suite.bob = domain.User{Name: "Bob", Email: "bob@example.com", Password: "x", Currency: "EUR"}
	require.NoError(suite.T(), suite.users.Create(suite.ctx, &suite.alice))
	require.NoError(suite.T(), suite.users.Create(suite.ctx, &suite.bob))
}

func (suite *StoreTestSuite) expense(owner uint, category, amount string, date time.Time) *domain.Expense {
	e := &domain.Expense{
		UserID:        owner,
		Description:   category + " purchase",
		Amount:        decimal.RequireFromString(amount),
		Category:      category,
		PaymentMethod: "Cash",
		Date:          date,
	}
	require.NoError(suite.T(), suite.expenses.Create(suite.ctx, e))
	return e
}

func (suite *StoreTestSuite) TestDuplicateEmailConflicts() {
	dup := domain.User{Name: "Other", Email: "alice@example.com", Password: "y"}
	err := suite.users.Create(suite.ctx, &dup)
	assert.ErrorIs(suite.T(), err, domain.ErrConflict)
}

func (suite *StoreTestSuite) TestGetUser() {
	u, err := suite.users.GetByEmail(suite.ctx, "bob@example.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.bob.ID, u.ID)

	_, err = suite.users.Get(suite.ctx, 9999)
	assert.ErrorIs(suite.T(), err, domain.ErrNotFound)
}

func (suite *StoreTestSuite) TestListExpensesOwnerScopedDateDesc() {
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	suite.expense(suite.alice.ID, "Food", "30", day)
	suite.expense(suite.alice.ID, "Transport", "15", day.AddDate(0, 0, 2))
	suite.expense(suite.alice.ID, "Food", "20", day.AddDate(0, 0, -3))
	suite.expense(suite.bob.ID, "Food", "99", day)

	list, err := suite.expenses.ListByOwner(suite.ctx, suite.alice.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 3)
	assert.Equal(suite.T(), "Transport", list[0].Category)
	assert.True(suite.T(), list[0].Date.After(list[1].Date))
	assert.True(suite.T(), list[1].Date.After(list[2].Date))
	for _, e := range list {
		assert.Equal(suite.T(), suite.alice.ID, e.UserID)
	}
}

func (suite *StoreTestSuite) TestListExpensesEmptyIsNotNil() {
	list, err := suite.expenses.ListByOwner(suite.ctx, 4242)
	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), list)
	assert.Empty(suite.T(), list)
}

func (suite *StoreTestSuite) TestExpenseGetSaveDelete() {
	e := suite.expense(suite.alice.ID, "Food", "19.99", time.Now().UTC())

	got, err := suite.expenses.Get(suite.ctx, e.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.RequireFromString("19.99").Equal(got.Amount))

	got.Notes = "groceries"
	require.NoError(suite.T(), suite.expenses.Save(suite.ctx, got))
	again, err := suite.expenses.Get(suite.ctx, e.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "groceries", again.Notes)

	require.NoError(suite.T(), suite.expenses.Delete(suite.ctx, e.ID))
	_, err = suite.expenses.Get(suite.ctx, e.ID)
	assert.ErrorIs(suite.T(), err, domain.ErrNotFound)
	assert.ErrorIs(suite.T(), suite.expenses.Delete(suite.ctx, e.ID), domain.ErrNotFound)
}

func (suite *StoreTestSuite) TestUpsertCreatesThenUpdatesInPlace() {
	first := &domain.Budget{UserID: suite.alice.ID, Category: "Food", Month: "2024-05", Amount: decimal.NewFromInt(200)}
	created, err := suite.budgets.Upsert(suite.ctx, first)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), created)
	require.NotZero(suite.T(), first.ID)

	second := &domain.Budget{UserID: suite.alice.ID, Category: "Food", Month: "2024-05", Amount: decimal.NewFromInt(250)}
	created, err = suite.budgets.Upsert(suite.ctx, second)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), created)
	assert.Equal(suite.T(), first.ID, second.ID, "identity is preserved")
	assert.WithinDuration(suite.T(), first.CreatedAt, second.CreatedAt, time.Second)
	assert.True(suite.T(), decimal.NewFromInt(250).Equal(second.Amount))

	list, err := suite.budgets.ListByOwner(suite.ctx, suite.alice.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 1)
	assert.True(suite.T(), decimal.NewFromInt(250).Equal(list[0].Amount))

	june := &domain.Budget{UserID: suite.alice.ID, Category: "Food", Month: "2024-06", Amount: decimal.NewFromInt(100)}
	created, err = suite.budgets.Upsert(suite.ctx, june)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), created)

	list, err = suite.budgets.ListByOwner(suite.ctx, suite.alice.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), "2024-06", list[0].Month)
}

func (suite *StoreTestSuite) TestUpsertKeyIncludesOwner() {
	a := &domain.Budget{UserID: suite.alice.ID, Category: "Food", Month: "2024-05", Amount: decimal.NewFromInt(200)}
	b := &domain.Budget{UserID: suite.bob.ID, Category: "Food", Month: "2024-05", Amount: decimal.NewFromInt(50)}
	_, err := suite.budgets.Upsert(suite.ctx, a)
	require.NoError(suite.T(), err)
	created, err := suite.budgets.Upsert(suite.ctx, b)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), created)
	assert.NotEqual(suite.T(), a.ID, b.ID)
}

func (suite *StoreTestSuite) TestBudgetDelete() {
	b := &domain.Budget{UserID: suite.alice.ID, Category: "Food", Month: "2024-05", Amount: decimal.NewFromInt(200)}
	_, err := suite.budgets.Upsert(suite.ctx, b)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.budgets.Delete(suite.ctx, b.ID))
	_, err = suite.budgets.Get(suite.ctx, b.ID)
	assert.ErrorIs(suite.T(), err, domain.ErrNotFound)
	assert.ErrorIs(suite.T(), suite.budgets.Delete(suite.ctx, b.ID), domain.ErrNotFound)
}

func TestConcurrentUpsertsKeepOneRow(t *testing.T) {
	gdb := dbtest.NewFile(t, 8)
	ctx := context.Background()
	users := NewUserStore(gdb)
	budgets := NewBudgetStore(gdb)
	owner := domain.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, users.Create(ctx, &owner))

	const writers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
		created int
	)
	for i := 1; i <= writers; i++ {
		wg.Add(1)
		go func(amount int64) {
			defer wg.Done()
			b := &domain.Budget{UserID: owner.ID, Category: "Food", Month: "2024-05", Amount: decimal.NewFromInt(amount)}
			ok, err := budgets.Upsert(ctx, b)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			if ok {
				created++
			}
		}(int64(i * 10))
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Equal(t, 1, created, "exactly one writer inserts")

	var count int64
	require.NoError(t, gdb.Model(&domain.Budget{}).Where("user_id = ? AND category = ? AND month = ?", owner.ID, "Food", "2024-05").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	list, err := budgets.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	amount := list[0].Amount.IntPart()
	assert.True(t, amount >= 10 && amount <= writers*10 && amount%10 == 0, "stored amount %d comes from one of the writers", amount)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
