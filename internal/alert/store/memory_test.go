package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"rutasegura/internal/alert/models"
)

type AlertStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *AlertStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestAlertStoreSuite(t *testing.T) {
	suite.Run(t, new(AlertStoreSuite))
}

func (s *AlertStoreSuite) newAlert(kind, description string) *models.Alert {
	return &models.Alert{
		Kind:        kind,
		Description: description,
		CreatedAt:   models.NewTimestamp(time.Now()),
	}
}

func (s *AlertStoreSuite) TestAppendAndQuery() {
	s.Run("unfiltered query returns everything", func() {
		s.Require().NoError(s.store.Append(s.ctx, s.newAlert(models.KindTraffic, "corte")))
		s.Require().NoError(s.store.Append(s.ctx, s.newAlert(models.KindVehicle, "pinchazo")))

		alerts, err := s.store.Query(s.ctx, Filter{})
		s.Require().NoError(err)
		s.Len(alerts, 2)
	})

	s.Run("kind predicate filters", func() {
		alerts, err := s.store.Query(s.ctx, Filter{Kind: models.KindTraffic})
		s.Require().NoError(err)
		s.Require().Len(alerts, 1)
		s.Equal("corte", alerts[0].Description)
	})

	s.Run("driver predicate filters", func() {
		postulation := s.newAlert(models.KindPostulation, "nueva postulacion")
		postulation.DriverRUT = "33333333-3"
		s.Require().NoError(s.store.Append(s.ctx, postulation))

		alerts, err := s.store.Query(s.ctx, Filter{Kind: models.KindPostulation, DriverRUT: "33333333-3"})
		s.Require().NoError(err)
		s.Require().Len(alerts, 1)

		alerts, err = s.store.Query(s.ctx, Filter{Kind: models.KindPostulation, DriverRUT: "99999999-9"})
		s.Require().NoError(err)
		s.Empty(alerts)
	})
}

func (s *AlertStoreSuite) TestQueryReturnsCopies() {
	s.Require().NoError(s.store.Append(s.ctx, s.newAlert(models.KindTraffic, "original")))

	alerts, err := s.store.Query(s.ctx, Filter{})
	s.Require().NoError(err)
	alerts[0].Description = "mutated"

	again, err := s.store.Query(s.ctx, Filter{})
	s.Require().NoError(err)
	s.Equal("original", again[0].Description)
}
