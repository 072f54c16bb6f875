package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"rutasegura/internal/dependent/models"
	"rutasegura/pkg/platform/sentinel"
)

type DependentStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *DependentStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestDependentStoreSuite(t *testing.T) {
	suite.Run(t, new(DependentStoreSuite))
}

func (s *DependentStoreSuite) TestFindByRUT() {
	s.Require().NoError(s.store.Put(s.ctx, &models.Dependent{
		RUT:         "22222222-2",
		FirstNames:  "Pedro",
		GuardianRUT: "11111111-1",
	}))

	d, err := s.store.FindByRUT(s.ctx, "22222222-2")
	s.Require().NoError(err)
	s.Equal("Pedro", d.FirstNames)

	_, err = s.store.FindByRUT(s.ctx, "99999999-9")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *DependentStoreSuite) TestListByGuardian() {
	s.Require().NoError(s.store.Put(s.ctx, &models.Dependent{RUT: "22222222-2", GuardianRUT: "11111111-1"}))
	s.Require().NoError(s.store.Put(s.ctx, &models.Dependent{RUT: "33333333-3", GuardianRUT: "11111111-1"}))
	s.Require().NoError(s.store.Put(s.ctx, &models.Dependent{RUT: "44444444-4", GuardianRUT: "55555555-5"}))

	list, err := s.store.ListByGuardian(s.ctx, "11111111-1")
	s.Require().NoError(err)
	s.Len(list, 2)

	list, err = s.store.ListByGuardian(s.ctx, "99999999-9")
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *DependentStoreSuite) TestReturnsCopies() {
	record := &models.MedicalRecord{FileName: "ficha.pdf", CipherText: "abc"}
	s.Require().NoError(s.store.Put(s.ctx, &models.Dependent{RUT: "22222222-2", MedicalRecord: record}))

	d, err := s.store.FindByRUT(s.ctx, "22222222-2")
	s.Require().NoError(err)
	d.FirstNames = "mutated"

	again, err := s.store.FindByRUT(s.ctx, "22222222-2")
	s.Require().NoError(err)
	s.Empty(again.FirstNames)
}
