package game

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.registry = NewRegistry()
}

func (s *RegistrySuite) session(roomID model.RoomID) *Session {
	return &Session{game: &model.Game{RoomID: roomID}}
}

func (s *RegistrySuite) TestAddAndGet() {
	sess := s.session("ROOM01")
	s.Require().NoError(s.registry.Add(sess))

	got, err := s.registry.Get("ROOM01")
	s.Require().NoError(err)
	s.Same(sess, got)
	s.Equal(1, s.registry.Count())
}

func (s *RegistrySuite) TestAddDuplicateRoomFails() {
	s.Require().NoError(s.registry.Add(s.session("ROOM01")))
	s.ErrorIs(s.registry.Add(s.session("ROOM01")), model.ErrSessionExists)
}

func (s *RegistrySuite) TestGetUnknownRoomFails() {
	_, err := s.registry.Get("NOPE")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *RegistrySuite) TestRemoveDropsLookups() {
	s.Require().NoError(s.registry.Add(s.session("ROOM01")))
	s.registry.Remove("ROOM01")

	_, err := s.registry.Get("ROOM01")
	s.ErrorIs(err, model.ErrSessionNotFound)
	s.Equal(0, s.registry.Count())

	// Removing again is harmless.
	s.registry.Remove("ROOM01")
}
