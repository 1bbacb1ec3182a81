package donation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
	"lifeline/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	store   *InMemoryStore
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.service = NewService(s.store)
}

func (s *ServiceSuite) ctxAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func (s *ServiceSuite) TestRecordFirstDonation() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC))

	ledger, err := s.service.Record(ctx, donorID, time.Time{}, "City Hospital")

	s.Require().NoError(err)
	s.Equal(1, ledger.TotalDonations)
	s.Equal(BadgeNewDonor, ledger.Badge)
	s.Require().NotNil(ledger.LastDonationDate)
	s.Equal(date(2024, time.June, 15), *ledger.LastDonationDate)
}

func (s *ServiceSuite) TestRecordRejectsFutureDate() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC))

	_, err := s.service.Record(ctx, donorID, date(2024, time.June, 16), "")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	donations, listErr := s.service.History(ctx, donorID)
	s.Require().NoError(listErr)
	s.Empty(donations)
}

func (s *ServiceSuite) TestRecordRejectsNilDonorID() {
	_, err := s.service.Record(context.Background(), id.DonorID{}, time.Time{}, "")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestBackfillDoesNotMoveLastDateBackwards() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	_, err := s.service.Record(ctx, donorID, date(2024, time.June, 1), "")
	s.Require().NoError(err)

	ledger, err := s.service.Record(ctx, donorID, date(2024, time.March, 10), "")
	s.Require().NoError(err)

	s.Equal(2, ledger.TotalDonations)
	s.Require().NotNil(ledger.LastDonationDate)
	s.Equal(date(2024, time.June, 1), *ledger.LastDonationDate)
}

func (s *ServiceSuite) TestBadgeProgression() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	expected := map[int]Badge{
		1:  BadgeNewDonor,
		2:  BadgeRegularDonor,
		5:  BadgeLifeSaver,
		10: BadgeHero,
	}

	for i := 1; i <= 10; i++ {
		ledger, err := s.service.Record(ctx, donorID, date(2024, time.January, i), "")
		s.Require().NoError(err)
		if want, ok := expected[i]; ok {
			s.Equal(want, ledger.Badge, "after donation %d", i)
		}
	}
}

func (s *ServiceSuite) TestConcurrentRecordsCountEveryDonation() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	const workers = 20
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
}

func (s *ServiceSuite) TestStatusForUnknownDonor() {
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	status, err := s.service.Status(ctx, id.NewDonorID())

	s.Require().NoError(err)
	s.Zero(status.TotalDonations)
	s.Equal(BadgeNewDonor, status.Badge)
	s.True(status.Eligible)
	s.Nil(status.NextEligibleDate)
	s.Zero(status.DaysLeft)
}

func (s *ServiceSuite) TestStatusDuringCooldown() {
	donorID := id.NewDonorID()
	recordCtx := s.ctxAt(time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC))

	_, err := s.service.Record(recordCtx, donorID, time.Time{}, "")
	s.Require().NoError(err)

	status, err := s.service.Status(s.ctxAt(time.Date(2024, time.March, 30, 9, 0, 0, 0, time.UTC)), donorID)
	s.Require().NoError(err)
	s.False(status.Eligible)
	s.Require().NotNil(status.NextEligibleDate)
	s.Equal(date(2024, time.March, 31), *status.NextEligibleDate)
	s.Equal(1, status.DaysLeft)

	status, err = s.service.Status(s.ctxAt(time.Date(2024, time.March, 31, 9, 0, 0, 0, time.UTC)), donorID)
	s.Require().NoError(err)
	s.True(status.Eligible)
	s.Zero(status.DaysLeft)
}

func (s *ServiceSuite) TestHistoryMostRecentFirst() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	for _, d := range []time.Time{
		date(2024, time.February, 1),
		date(2024, time.June, 1),
		date(2024, time.April, 1),
	} {
		_, err := s.service.Record(ctx, donorID, d, "")
		s.Require().NoError(err)
	}

	donations, err := s.service.History(ctx, donorID)
	s.Require().NoError(err)
	s.Require().Len(donations, 3)
	s.Equal(date(2024, time.June, 1), donations[0].Date)
	s.Equal(date(2024, time.April, 1), donations[1].Date)
	s.Equal(date(2024, time.February, 1), donations[2].Date)
}

func (s *ServiceSuite) TestReconcileRepairsDriftedLedger() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	for i := 1; i <= 5; i++ {
		_, err := s.service.Record(ctx, donorID, date(2024, time.January, i), "")
		s.Require().NoError(err)
	}

	// Corrupt the cached row; the event history stays authoritative.
	badDate := date(2023, time.December, 1)
	s.Require().NoError(s.store.SaveLedger(ctx, &Ledger{
		DonorID:          donorID,
		TotalDonations:   2,
		LastDonationDate: &badDate,
		Badge:            BadgeRegularDonor,
	}))

	ledger, repaired, err := s.service.Reconcile(ctx, donorID)

	s.Require().NoError(err)
	s.True(repaired)
	s.Equal(5, ledger.TotalDonations)
	s.Equal(BadgeLifeSaver, ledger.Badge)
	s.Require().NotNil(ledger.LastDonationDate)
	s.Equal(date(2024, time.January, 5), *ledger.LastDonationDate)

	cached, err := s.store.GetLedger(ctx, donorID)
	s.Require().NoError(err)
	s.Equal(5, cached.TotalDonations)
}

func (s *ServiceSuite) TestReconcileLeavesConsistentLedgerAlone() {
	donorID := id.NewDonorID()
	ctx := s.ctxAt(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	_, err := s.service.Record(ctx, donorID, date(2024, time.June, 1), "")
	s.Require().NoError(err)

	ledger, repaired, err := s.service.Reconcile(ctx, donorID)

	s.Require().NoError(err)
	s.False(repaired)
	s.Equal(1, ledger.TotalDonations)
}
