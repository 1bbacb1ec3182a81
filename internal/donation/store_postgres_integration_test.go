//go:build integration

package donation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/sentinel"
	"lifeline/pkg/requestcontext"
	"lifeline/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg      *containers.PostgresContainer
	service *Service
	store   *PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "donations", "donor_ledgers"))
	s.store = NewPostgres(s.pg.DB)
	s.service = NewService(s.store)
}

func (s *PostgresStoreSuite) ctxAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func (s *PostgresStoreSuite) TestLedgerNotFoundForUnknownDonor() {
	_, err := s.store.GetLedger(context.Background(), id.NewDonorID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestRecordDonationCreatesLedger() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	ledger, err := s.service.Record(ctx, donorID, time.Time{}, "City Hospital")

	s.Require().NoError(err)
	s.Equal(1, ledger.TotalDonations)
	s.Equal(BadgeNewDonor, ledger.Badge)

	stored, err := s.store.GetLedger(ctx, donorID)
	s.Require().NoError(err)
	s.Equal(1, stored.TotalDonations)
	s.Require().NotNil(stored.LastDonationDate)
	s.Equal(date(2024, time.June, 15), DateOnly(*stored.LastDonationDate))
}

func (s *PostgresStoreSuite) TestConcurrentRecordsSerializeOnRowLock() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Record(ctx, donorID, time.Time{}, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}

	ledger, err := s.store.GetLedger(ctx, donorID)
	s.Require().NoError(err)
	s.Equal(workers, ledger.TotalDonations)
	s.Equal(BadgeHero, ledger.Badge)

	donations, err := s.store.ListDonations(ctx, donorID)
	s.Require().NoError(err)
	s.Len(donations, workers)
}

func (s *PostgresStoreSuite) TestReconcileAgainstEventHistory() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	for i := 1; i <= 3; i++ {
		_, err := s.service.Record(ctx, donorID, date(2024, time.January, i), "")
		s.Require().NoError(err)
	}

	// Corrupt the cached row directly.
	_, err := s.pg.DB.ExecContext(ctx, `UPDATE donor_ledgers SET total_donations = 99 WHERE donor_id = $1`, donorID.String())
	s.Require().NoError(err)

	ledger, repaired, err := s.service.Reconcile(ctx, donorID)

	s.Require().NoError(err)
	s.True(repaired)
	s.Equal(3, ledger.TotalDonations)
	s.Equal(BadgeRegularDonor, ledger.Badge)
}
