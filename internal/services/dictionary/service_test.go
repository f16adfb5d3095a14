package dictionary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
	"github.com/yasskadd/Scrabble-sub001/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(memory.New())
	s.ctx = context.Background()
}

func words(texts ...string) []*model.Word {
	ws := make([]*model.Word, len(texts))
	for i, t := range texts {
		ws[i] = &model.Word{Text: t}
	}
	return ws
}

func (s *ServiceSuite) TestValidateBeforeLoadFails() {
	_, err := s.service.Validate(words("CAT"))
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *ServiceSuite) TestValidateReturnsInvalidSubset() {
	s.service.LoadWords([]string{"cat", "chat", "tea"})

	invalid, err := s.service.Validate(words("CHAT", "QZX", "TEA", "ZZZ"))

	s.Require().NoError(err)
	s.Len(invalid, 2)
	s.Equal("QZX", invalid[0].Text)
	s.Equal("ZZZ", invalid[1].Text)
}

func (s *ServiceSuite) TestValidateIsCaseInsensitive() {
	s.service.LoadWords([]string{"Chat", "TEA"})

	invalid, err := s.service.Validate(words("chat", "ChAt", "tea"))

	s.Require().NoError(err)
	s.Empty(invalid)
}

func (s *ServiceSuite) TestLoadWordsReplacesDictionary() {
	s.service.LoadWords([]string{"cat"})
	s.service.LoadWords([]string{"dog"})

	invalid, err := s.service.Validate(words("CAT"))

	s.Require().NoError(err)
	s.Len(invalid, 1)
	s.Equal(1, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadFromStorageRoundTrip() {
	store := memory.New()
	s.Require().NoError(store.SaveDictionaryWords(s.ctx, []string{"cat", "chat"}))

	service := New(store)
	s.Require().NoError(service.LoadFromStorage(s.ctx))

	s.True(service.IsLoaded())
	s.Equal(2, service.WordCount())
}

func (s *ServiceSuite) TestLoadFromStorageEmptyFails() {
	err := s.service.LoadFromStorage(s.ctx)
	s.Error(err)
	s.False(s.service.IsLoaded())
}
