package data

import (
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type DocumentTestSuite struct {
	suite.Suite
}

func (s *DocumentTestSuite) TestSimpleMap() {
	obj := map[string]any{
		"yeah": "sure",
		"of":   "course",
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(M{"yeah": "sure", "of": "course"}, doc)
}

// Structs become ordered documents in field declaration order.
func (s *DocumentTestSuite) TestSimpleStruct() {
	obj := struct{ No, Yes string }{
		No:  "way",
		Yes: "indeed",
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(D{{"No", "way"}, {"Yes", "indeed"}}, doc)
}

func (s *DocumentTestSuite) TestUnexportedField() {
	obj := struct {
		No  string
		yes string
	}{
		No:  "way",
		yes: "indeed",
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(D{{"No", "way"}}, doc)
}

func (s *DocumentTestSuite) TestTags() {
	obj := struct {
		Name    string `mgq:"name"`
		Skipped string `mgq:"-"`
		Empty   *int   `mgq:"empty,omitempty"`
		Zero    int    `mgq:"zero,omitzero"`
		Kept    int    `mgq:"kept"`
	}{
		Name: "thing",
		Kept: 3,
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(D{{"name", "thing"}, {"kept", 3}}, doc)
}

func (s *DocumentTestSuite) TestNestedConversion() {
	type inner struct {
		B int `mgq:"b"`
	}
	obj := map[string]any{
		"list":   []inner{{B: 1}, {B: 2}},
		"nested": inner{B: 3},
	}

	doc, err := NewDocument(obj)
	s.NoError(err)
	s.Equal(M{
		"list":   A{D{{"b", 1}}, D{{"b", 2}}},
		"nested": D{{"b", 3}},
	}, doc)
}

func (s *DocumentTestSuite) TestInvalidInputs() {
	_, err := NewDocument("scalar")
	s.Error(err)
	_, err = NewDocument(12)
	s.Error(err)
	_, err = NewDocument(map[int]string{1: "a"})
	s.Error(err)
}

func (s *DocumentTestSuite) TestNilInput() {
	doc, err := NewDocument(nil)
	s.NoError(err)
	s.Equal(M{}, doc)
}

func (s *DocumentTestSuite) TestOrderedDocument() {
	id := uuid.NewString()
	doc := D{{"b", 2}, {"a", 1}, {"id", id}}

	s.Equal(3, doc.Len())
	s.True(doc.Has("a"))
	s.False(doc.Has("c"))
	s.Equal(id, doc.Get("id"))
	s.Nil(doc.Get("c"))
	s.Equal([]string{"b", "a", "id"}, slices.Collect(doc.Keys()))
	s.Equal(A{2, 1, id}, slices.Collect(doc.Values()))
}

func (s *DocumentTestSuite) TestMap() {
	doc := D{{"a", D{{"b", 1}}}, {"list", A{D{{"c", 2}}}}}

	s.Equal(map[string]any{
		"a":    map[string]any{"b": 1},
		"list": A{map[string]any{"c": 2}},
	}, doc.Map())
}

func (s *DocumentTestSuite) TestDecode() {
	type target struct {
		Name string `mgq:"name"`
		Qty  int    `mgq:"qty"`
	}

	var t1 target
	s.NoError(Decode(M{"name": "screws", "qty": 40}, &t1))
	s.Equal(target{Name: "screws", Qty: 40}, t1)

	var t2 target
	s.NoError(Decode(D{{"name", "nails"}, {"qty", 12}}, &t2))
	s.Equal(target{Name: "nails", Qty: 12}, t2)
}

func TestDocumentTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentTestSuite))
}
