package ledger

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"account-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	suite.Suite
	ledger  *Ledger
	ownerID uuid.UUID
	rub1    *models.Account
	rub2    *models.Account
	usd     *models.Account
}

func TestTransactionTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}

func (s *TransactionTestSuite) SetupTest() {
	s.ledger = New(slog.Default())
	s.ownerID = uuid.New()

	var err error
	s.rub1, err = s.ledger.CreateAccount(s.ownerID, models.AccountTypeChecking, "RUB", nil)
	s.Require().NoError(err)
	s.rub2, err = s.ledger.CreateAccount(s.ownerID, models.AccountTypeChecking, "RUB", nil)
	s.Require().NoError(err)
	s.usd, err = s.ledger.CreateAccount(s.ownerID, models.AccountTypeChecking, "USD", nil)
	s.Require().NoError(err)
}

func (s *TransactionTestSuite) credit(accountID uuid.UUID, amount int64) *models.Transaction {
	transaction, err := s.ledger.RegisterTransaction(TransactionInput{
		AccountID:   accountID,
		Amount:      decimal.NewFromInt(amount),
		Currency:    "RUB",
		Type:        models.TransactionTypeCredit,
		Description: "top up",
	})
	s.Require().NoError(err)
	return transaction
}

func (s *TransactionTestSuite) balance(accountID uuid.UUID) decimal.Decimal {
	account, err := s.ledger.GetAccount(accountID)
	s.Require().NoError(err)
	return account.Balance
}

// assertBalanceInvariant checks that balance == sum(credits) - sum(debits)
// over the account's recorded transactions
func (s *TransactionTestSuite) assertBalanceInvariant(accountID uuid.UUID) {
	transactions, err := s.ledger.AccountTransactions(accountID)
	s.Require().NoError(err)

	sum := decimal.Zero
	for _, transaction := range transactions {
		sum = sum.Add(transaction.SignedAmount())
	}
	s.True(s.balance(accountID).Equal(sum),
		"balance %s does not match transaction sum %s", s.balance(accountID), sum)
}

func (s *TransactionTestSuite) TestRegisterTransaction_Credit() {
	transaction, err := s.ledger.RegisterTransaction(TransactionInput{
		AccountID:   s.rub1.ID,
		Amount:      decimal.NewFromInt(1000),
		Currency:    "RUB",
		Type:        models.TransactionTypeCredit,
		Description: "cash deposit",
	})

	s.NoError(err)
	s.NotEqual(uuid.Nil, transaction.ID)
	s.Equal(s.rub1.ID, transaction.AccountID)
	s.Nil(transaction.CounterpartyAccountID)
	s.WithinDuration(time.Now().UTC(), transaction.TransactionDate, 5*time.Second)
	s.True(s.balance(s.rub1.ID).Equal(decimal.NewFromInt(1000)))
	s.assertBalanceInvariant(s.rub1.ID)
}

func (s *TransactionTestSuite) TestRegisterTransaction_Debit() {
	s.credit(s.rub1.ID, 1000)

	_, err := s.ledger.RegisterTransaction(TransactionInput{
		AccountID:   s.rub1.ID,
		Amount:      decimal.NewFromInt(300),
		Currency:    "RUB",
		Type:        models.TransactionTypeDebit,
		Description: "withdrawal",
	})

	s.NoError(err)
	s.True(s.balance(s.rub1.ID).Equal(decimal.NewFromInt(700)))
	s.assertBalanceInvariant(s.rub1.ID)
}

func (s *TransactionTestSuite) TestRegisterTransaction_InsufficientFunds() {
	s.credit(s.rub1.ID, 100)

	_, err := s.ledger.RegisterTransaction(TransactionInput{
		AccountID:   s.rub1.ID,
		Amount:      decimal.NewFromInt(101),
		Currency:    "RUB",
		Type:        models.TransactionTypeDebit,
		Description: "overdraft attempt",
	})

	s.ErrorIs(err, ErrInsufficientFunds)

	var insufficient *InsufficientFundsError
	s.Require().ErrorAs(err, &insufficient)
	s.True(insufficient.Balance.Equal(decimal.NewFromInt(100)))
	s.True(insufficient.Requested.Equal(decimal.NewFromInt(101)))

	// Rejected before any mutation: balance and history unchanged
	s.True(s.balance(s.rub1.ID).Equal(decimal.NewFromInt(100)))
	transactions, _ := s.ledger.AccountTransactions(s.rub1.ID)
	s.Len(transactions, 1)
}

func (s *TransactionTestSuite) TestRegisterTransaction_AccountNotFound() {
	_, err := s.ledger.RegisterTransaction(TransactionInput{
		AccountID:   uuid.New(),
		Amount:      decimal.NewFromInt(10),
		Currency:    "RUB",
		Type:        models.TransactionTypeCredit,
		Description: "ghost",
	})

	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *TransactionTestSuite) TestRegisterTransaction_UnknownCounterparty() {
	ghost := uuid.New()

	_, err := s.ledger.RegisterTransaction(TransactionInput{
		AccountID:             s.rub1.ID,
		CounterpartyAccountID: &ghost,
		Amount:                decimal.NewFromInt(10),
		Currency:              "RUB",
		Type:                  models.TransactionTypeCredit,
		Description:           "bad counterparty",
	})

	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *TransactionTestSuite) TestRegisterTransaction_Validation() {
	testCases := []struct {
		name  string
		input TransactionInput
	}{
		{"zero amount", TransactionInput{
			AccountID: s.rub1.ID, Amount: decimal.Zero, Currency: "RUB",
			Type: models.TransactionTypeCredit,
		}},
		{"negative amount", TransactionInput{
			AccountID: s.rub1.ID, Amount: decimal.NewFromInt(-5), Currency: "RUB",
			Type: models.TransactionTypeCredit,
		}},
		{"bad type", TransactionInput{
			AccountID: s.rub1.ID, Amount: decimal.NewFromInt(5), Currency: "RUB",
			Type: "refund",
		}},
		{"bad currency", TransactionInput{
			AccountID: s.rub1.ID, Amount: decimal.NewFromInt(5), Currency: "rub",
			Type: models.TransactionTypeCredit,
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.ledger.RegisterTransaction(tc.input)
			s.ErrorIs(err, ErrValidation)
		})
	}
}

func (s *TransactionTestSuite) TestTransfer_Success() {
	s.credit(s.rub1.ID, 1000)

	debit, credit, err := s.ledger.Transfer(s.rub1.ID, s.rub2.ID, decimal.NewFromInt(400), "rent")

	s.NoError(err)
	s.True(s.balance(s.rub1.ID).Equal(decimal.NewFromInt(600)))
	s.True(s.balance(s.rub2.ID).Equal(decimal.NewFromInt(400)))

	// One debit on the source referencing the destination
	s.Equal(s.rub1.ID, debit.AccountID)
	s.Equal(models.TransactionTypeDebit, debit.Type)
	s.Require().NotNil(debit.CounterpartyAccountID)
	s.Equal(s.rub2.ID, *debit.CounterpartyAccountID)
	s.Contains(debit.Description, s.rub2.ID.String())
	s.Contains(debit.Description, "rent")

	// One credit on the destination referencing the source
	s.Equal(s.rub2.ID, credit.AccountID)
	s.Equal(models.TransactionTypeCredit, credit.Type)
	s.Require().NotNil(credit.CounterpartyAccountID)
	s.Equal(s.rub1.ID, *credit.CounterpartyAccountID)

	s.True(debit.Amount.Equal(credit.Amount))
	s.Equal("RUB", debit.Currency)
	s.Equal("RUB", credit.Currency)

	s.assertBalanceInvariant(s.rub1.ID)
	s.assertBalanceInvariant(s.rub2.ID)
}

func (s *TransactionTestSuite) TestTransfer_InsufficientFunds() {
	s.credit(s.rub1.ID, 100)
	s.credit(s.rub2.ID, 50)

	_, _, err := s.ledger.Transfer(s.rub1.ID, s.rub2.ID, decimal.NewFromInt(101), "too much")

	s.ErrorIs(err, ErrInsufficientFunds)

	// Neither leg applied
	s.True(s.balance(s.rub1.ID).Equal(decimal.NewFromInt(100)))
	s.True(s.balance(s.rub2.ID).Equal(decimal.NewFromInt(50)))

	fromTransactions, _ := s.ledger.AccountTransactions(s.rub1.ID)
	toTransactions, _ := s.ledger.AccountTransactions(s.rub2.ID)
	s.Len(fromTransactions, 1)
	s.Len(toTransactions, 1)
}

func (s *TransactionTestSuite) TestTransfer_CurrencyMismatch() {
	s.credit(s.rub1.ID, 1000)

	_, _, err := s.ledger.Transfer(s.rub1.ID, s.usd.ID, decimal.NewFromInt(100), "fx attempt")

	s.ErrorIs(err, ErrCurrencyMismatch)

	var mismatch *CurrencyMismatchError
	s.Require().ErrorAs(err, &mismatch)
	s.Equal("RUB", mismatch.FromCurrency)
	s.Equal("USD", mismatch.ToCurrency)

	s.True(s.balance(s.rub1.ID).Equal(decimal.NewFromInt(1000)))
	s.True(s.balance(s.usd.ID).IsZero())
}

func (s *TransactionTestSuite) TestTransfer_SourceNotFoundCheckedFirst() {
	missing := uuid.New()

	_, _, err := s.ledger.Transfer(missing, uuid.New(), decimal.NewFromInt(10), "ghosts")

	var notFound *NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal(missing, notFound.AccountID)
	s.Equal("source", notFound.Role)
}

func (s *TransactionTestSuite) TestTransfer_DestinationNotFound() {
	s.credit(s.rub1.ID, 100)
	missing := uuid.New()

	_, _, err := s.ledger.Transfer(s.rub1.ID, missing, decimal.NewFromInt(10), "ghost")

	var notFound *NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal(missing, notFound.AccountID)
	s.Equal("destination", notFound.Role)
}

func (s *TransactionTestSuite) TestTransfer_NonPositiveAmount() {
	_, _, err := s.ledger.Transfer(s.rub1.ID, s.rub2.ID, decimal.Zero, "nothing")
	s.ErrorIs(err, ErrValidation)

	_, _, err = s.ledger.Transfer(s.rub1.ID, s.rub2.ID, decimal.NewFromInt(-5), "negative")
	s.ErrorIs(err, ErrValidation)
}

func (s *TransactionTestSuite) TestGetStatement_FiltersAndSorts() {
	s.credit(s.rub1.ID, 1000)
	_, _, err := s.ledger.Transfer(s.rub1.ID, s.rub2.ID, decimal.NewFromInt(400), "rent")
	s.Require().NoError(err)

	from := time.Now().UTC().Add(-time.Hour)
	to := time.Now().UTC().Add(time.Hour)

	statement, err := s.ledger.GetStatement(s.rub1.ID, from, to)

	s.NoError(err)
	s.Require().Len(statement, 2)
	s.Equal(models.TransactionTypeCredit, statement[0].Type)
	s.Equal(models.TransactionTypeDebit, statement[1].Type)
	s.False(statement[0].TransactionDate.After(statement[1].TransactionDate))

	// Only the requested account's transactions appear
	for _, transaction := range statement {
		s.Equal(s.rub1.ID, transaction.AccountID)
	}
}

func (s *TransactionTestSuite) TestGetStatement_ExcludesOutsideRange() {
	s.credit(s.rub1.ID, 100)

	past := time.Now().UTC().AddDate(0, 0, -2)
	alsoPast := time.Now().UTC().AddDate(0, 0, -1)

	statement, err := s.ledger.GetStatement(s.rub1.ID, past, alsoPast)

	s.NoError(err)
	s.Empty(statement)
}

func (s *TransactionTestSuite) TestGetStatement_InvalidDateRange() {
	from := time.Now().UTC()
	to := from.Add(-time.Minute)

	_, err := s.ledger.GetStatement(s.rub1.ID, from, to)

	s.ErrorIs(err, ErrValidation)
	s.ErrorIs(err, ErrInvalidDateRange)
}

func (s *TransactionTestSuite) TestGetStatement_InvalidRangeBeatsUnknownAccount() {
	from := time.Now().UTC()
	to := from.Add(-time.Minute)

	_, err := s.ledger.GetStatement(uuid.New(), from, to)

	// Date range is validated before the account lookup
	s.ErrorIs(err, ErrValidation)
}

func (s *TransactionTestSuite) TestGetStatement_AccountNotFound() {
	from := time.Now().UTC().Add(-time.Hour)
	to := time.Now().UTC()

	_, err := s.ledger.GetStatement(uuid.New(), from, to)

	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *TransactionTestSuite) TestConcurrentTransfers_NoLostUpdates() {
	s.credit(s.rub1.ID, 10_000)
	s.credit(s.rub2.ID, 10_000)

	const workers = 8
	const transfersPerWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		forward := i%2 == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < transfersPerWorker; j++ {
				if forward {
					s.ledger.Transfer(s.rub1.ID, s.rub2.ID, decimal.NewFromInt(1), "ping")
				} else {
					s.ledger.Transfer(s.rub2.ID, s.rub1.ID, decimal.NewFromInt(1), "pong")
				}
			}
		}()
	}
	wg.Wait()

	// Total funds are conserved and each account's balance matches its
	// recorded history exactly
	total := s.balance(s.rub1.ID).Add(s.balance(s.rub2.ID))
	s.True(total.Equal(decimal.NewFromInt(20_000)), "total %s", total)
	s.assertBalanceInvariant(s.rub1.ID)
	s.assertBalanceInvariant(s.rub2.ID)

	// Every transfer produced both legs or none
	fromTransactions, _ := s.ledger.AccountTransactions(s.rub1.ID)
	toTransactions, _ := s.ledger.AccountTransactions(s.rub2.ID)
	s.Equal(len(fromTransactions), len(toTransactions))
}

func (s *TransactionTestSuite) TestScenario_DepositThenRent() {
	// Create A and B, credit A with 1000, transfer 400 for rent
	s.credit(s.rub1.ID, 1000)

	_, _, err := s.ledger.Transfer(s.rub1.ID, s.rub2.ID, decimal.NewFromInt(400), "rent")
	s.Require().NoError(err)

	s.True(s.balance(s.rub1.ID).Equal(decimal.NewFromInt(600)))
	s.True(s.balance(s.rub2.ID).Equal(decimal.NewFromInt(400)))

	aTransactions, _ := s.ledger.AccountTransactions(s.rub1.ID)
	bTransactions, _ := s.ledger.AccountTransactions(s.rub2.ID)

	s.Require().Len(aTransactions, 2)
	s.Require().Len(bTransactions, 1)

	debit := aTransactions[1]
	credit := bTransactions[0]
	s.Equal(models.TransactionTypeDebit, debit.Type)
	s.Equal(models.TransactionTypeCredit, credit.Type)
	s.Equal(s.rub2.ID, *debit.CounterpartyAccountID)
	s.Equal(s.rub1.ID, *credit.CounterpartyAccountID)
}
