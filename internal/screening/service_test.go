package screening

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "lifeline/pkg/domain"
	"lifeline/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	store   *InMemoryStore
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.service = NewService(s.store)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestScreen() {
	s.Run("persists screenings for known donors", func() {
		donorID := id.NewDonorID()
		checkedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(s.ctx, checkedAt)

		sc, err := s.service.Screen(ctx, &donorID, Questionnaire{Age: 30, WeightKg: 60, Hemoglobin: 13})
		s.Require().NoError(err)
		s.True(sc.Verdict.Eligible)
		s.Equal(checkedAt, sc.CheckedAt)

		history, err := s.store.ListByDonor(s.ctx, donorID)
		s.Require().NoError(err)
		s.Require().Len(history, 1)
		s.Equal(sc.ID, history[0].ID)
	})

	s.Run("does not persist anonymous screenings", func() {
		sc, err := s.service.Screen(s.ctx, nil, Questionnaire{Age: 30, WeightKg: 60, Hemoglobin: 13})
		s.Require().NoError(err)
		s.True(sc.Verdict.Eligible)
		s.Nil(sc.DonorID)
	})

	s.Run("rejection is a result, not an error", func() {
		donorID := id.NewDonorID()
		q := Questionnaire{Age: 30, WeightKg: 60, Hemoglobin: 13}
		q.Flags.Smoking = true

		sc, err := s.service.Screen(s.ctx, &donorID, q)
		s.Require().NoError(err)
		s.False(sc.Verdict.Eligible)
		s.Equal(ReasonHealthFactor, sc.Verdict.Reason)

		// Rejected screenings are still recorded for audit.
		history, err := s.store.ListByDonor(s.ctx, donorID)
		s.Require().NoError(err)
		s.Len(history, 1)
	})
}

func (s *ServiceSuite) TestHistory() {
	s.Run("returns screenings newest first", func() {
		donorID := id.NewDonorID()
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := range 3 {
			ctx := requestcontext.WithTime(s.ctx, base.AddDate(0, 0, i))
			_, err := s.service.Screen(ctx, &donorID, Questionnaire{Age: 30, WeightKg: 60, Hemoglobin: 13})
			s.Require().NoError(err)
		}

		history, err := s.service.History(s.ctx, donorID)
		s.Require().NoError(err)
		s.Require().Len(history, 3)
		s.True(history[0].CheckedAt.After(history[1].CheckedAt))
		s.True(history[1].CheckedAt.After(history[2].CheckedAt))
	})

	s.Run("empty history for unknown donor", func() {
		history, err := s.service.History(s.ctx, id.NewDonorID())
		s.Require().NoError(err)
		s.Empty(history)
	})

	s.Run("rejects nil donor id", func() {
		_, err := s.service.History(s.ctx, id.DonorID{})
		s.Require().Error(err)
	})
}
