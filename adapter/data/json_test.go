package data

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/suite"
)

type JSONTestSuite struct {
	suite.Suite
}

// Object keys keep their document order.
func (s *JSONTestSuite) TestOrderPreserved() {
	doc, err := FromJSON([]byte(`{"baz": "qux", "abc": 1, "zzz": null}`))
	s.NoError(err)
	s.Equal([]string{"baz", "abc", "zzz"}, slices.Collect(doc.Keys()))
}

func (s *JSONTestSuite) TestValueTypes() {
	doc, err := FromJSON([]byte(`{
		"str": "s",
		"num": 1.5,
		"int": 3,
		"yes": true,
		"no": false,
		"null": null,
		"arr": [1, "two", {"three": 3}],
		"obj": {"nested": {"deep": true}}
	}`))
	s.NoError(err)

	s.Equal("s", doc.Get("str"))
	s.Equal(1.5, doc.Get("num"))
	s.Equal(3.0, doc.Get("int"))
	s.Equal(true, doc.Get("yes"))
	s.Equal(false, doc.Get("no"))
	s.Nil(doc.Get("null"))
	s.Equal(A{1.0, "two", D{{"three", 3.0}}}, doc.Get("arr"))
	s.Equal(D{{"nested", D{{"deep", true}}}}, doc.Get("obj"))
}

func (s *JSONTestSuite) TestInvalidInputs() {
	_, err := FromJSON([]byte(`{"a":`))
	s.Error(err)
	_, err = FromJSON([]byte(`[1, 2]`))
	s.Error(err)
	_, err = FromJSON([]byte(`"scalar"`))
	s.Error(err)
}

func TestJSONTestSuite(t *testing.T) {
	suite.Run(t, new(JSONTestSuite))
}
