package mgq_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/weiliddat/mgq"
	"github.com/weiliddat/mgq/adapter/data"
	"github.com/weiliddat/mgq/adapter/script"
)

type M = mgq.M

type A = mgq.A

type D = mgq.D

type PredicateTestSuite struct {
	suite.Suite
}

func (s *PredicateTestSuite) filter(query any, docs []any) []any {
	pred := mgq.New(query)
	out := make([]any, 0, len(docs))
	for _, doc := range docs {
		if pred.Test(doc) {
			out = append(out, doc)
		}
	}
	return out
}

// Nested paths with array fan-out.
func (s *PredicateTestSuite) TestNestedFanOut() {
	docs := []any{
		M{"foo": A{M{"bar": A{1, 2}}}},
		M{"foo": M{"bar": 1}},
		M{"foo": M{"bar": 2}},
		M{"foo": nil},
	}

	s.Equal(
		[]any{docs[0], docs[2]},
		s.filter(M{"foo.bar": M{"$gt": 1}}, docs),
	)
}

// Implicit full-object equality with a dollar-prefixed key in the data.
func (s *PredicateTestSuite) TestImplicitObjectEquality() {
	docs := []any{
		M{"foo": "bar"},
		M{},
		M{"foo": A{M{"bar": 1}, M{"bar": 2}}},
		M{"foo": M{"bar": 1, " $size": 2}},
	}

	s.Equal(
		[]any{docs[3]},
		s.filter(M{"foo": M{"bar": 1, " $size": 2}}, docs),
	)
}

// Absence under $ne.
func (s *PredicateTestSuite) TestAbsenceUnderNe() {
	docs := []any{
		M{"foo": M{"bar": nil}},
		M{"foo": M{"bar": "baz"}},
		M{"foo": nil},
		M{"foo": "bar"},
		M{},
	}

	s.Equal(
		[]any{docs[1]},
		s.filter(M{"foo.bar": M{"$ne": nil}}, docs),
	)
}

// Document-vs-document $gte using insertion order.
func (s *PredicateTestSuite) TestDocumentOrdering() {
	docs := []any{
		M{"foo": M{"bar": D{{"baa", "zap"}}}},
		M{"foo": M{"bar": D{{"baz", "bux"}}}},
		M{"foo": M{"bar": D{{"baz", "qux"}}}},
		M{"foo": M{"bar": D{{"baz", "zap"}}}},
		M{"foo": M{"bar": D{{"bla", "jaz"}}}},
	}

	s.Equal(
		[]any{docs[2], docs[3], docs[4]},
		s.filter(M{"foo.bar": M{"$gte": D{{"baz", "qux"}}}}, docs),
	)
}

// $all in the elemMatch-form: each sub-query finds its own member.
func (s *PredicateTestSuite) TestAllElemMatch() {
	query := M{"qty": M{"$all": A{
		M{"$elemMatch": M{"size": "M", "num": M{"$gt": 50}}},
		M{"$elemMatch": M{"num": 100, "color": "green"}},
	}}}
	docs := []any{
		M{"qty": A{
			M{"size": "S", "num": 10, "color": "blue"},
			M{"size": "M", "num": 100, "color": "blue"},
			M{"size": "L", "num": 100, "color": "green"},
		}},
		M{"qty": A{
			M{"size": "S", "num": 10, "color": "blue"},
			M{"size": "M", "num": 100, "color": "blue"},
		}},
	}

	s.Equal([]any{docs[0]}, s.filter(query, docs))
}

// Regex with flags.
func (s *PredicateTestSuite) TestRegexFlags() {
	query := M{"foo": M{"$regex": "^baz", "$options": "m"}}

	s.True(mgq.New(query).Test(M{"foo": "bar\nbaz"}))
	s.False(mgq.New(query).Test(M{"foo": "bar baz"}))
}

// An empty query matches every document.
func (s *PredicateTestSuite) TestEmptyQuery() {
	pred := mgq.New(M{})

	s.True(pred.Test(M{}))
	s.True(pred.Test(M{"anything": A{1, M{"deep": true}}}))
	s.True(pred.Test(nil))
}

// Negation dualities at the facade level.
func (s *PredicateTestSuite) TestNegationDuality() {
	docs := []any{M{"a": 1}, M{"a": 2}, M{}, M{"a": A{1, 3}}}

	for _, doc := range docs {
		s.Equal(
			!mgq.New(M{"a": M{"$eq": 1}}).Test(doc),
			mgq.New(M{"a": M{"$ne": 1}}).Test(doc),
		)
		s.Equal(
			!mgq.New(M{"a": M{"$in": A{1, 2}}}).Test(doc),
			mgq.New(M{"a": M{"$nin": A{1, 2}}}).Test(doc),
		)
		s.Equal(
			!mgq.New(M{"$or": A{M{"a": 1}}}).Test(doc),
			mgq.New(M{"$nor": A{M{"a": 1}}}).Test(doc),
		)
		s.Equal(
			!mgq.New(M{"a": M{"$gt": 1}}).Test(doc),
			mgq.New(M{"a": M{"$not": M{"$gt": 1}}}).Test(doc),
		)
	}
}

func (s *PredicateTestSuite) TestValidateChaining() {
	pred, err := mgq.New(M{"a": M{"$gt": 1}}).Validate()
	s.NoError(err)
	s.True(pred.Test(M{"a": 2}))

	_, err = mgq.New(M{"a": M{"$mod": A{4}}}).Validate()
	s.ErrorAs(err, &mgq.ErrCompArgType{})

	_, err = mgq.New("not a query").Validate()
	s.ErrorIs(err, mgq.ErrQueryType)
}

// A structurally broken query still tests false instead of raising.
func (s *PredicateTestSuite) TestTotalityOnBrokenQueries() {
	s.False(mgq.New("not a query").Test(M{"a": 1}))
	s.False(mgq.New(M{"a": M{"$mod": A{4}}}).Test(M{"a": 4}))
	s.False(mgq.New(M{"$and": "nope"}).Test(M{"a": 1}))
}

// Textual $where bodies work when the goja compiler is injected.
func (s *PredicateTestSuite) TestWhereWithScriptCompiler() {
	pred, err := mgq.New(
		M{"$where": "this.qty > 10", "kind": "screws"},
		mgq.WithWhereCompiler(script.Compile),
	).Validate()
	s.NoError(err)

	s.True(pred.Test(M{"kind": "screws", "qty": 42}))
	s.False(pred.Test(M{"kind": "screws", "qty": 2}))
	s.False(pred.Test(M{"kind": "nails", "qty": 42}))

	// without a compiler the same query fails validation
	_, err = mgq.New(M{"$where": "this.qty > 10"}).Validate()
	s.ErrorAs(err, &mgq.ErrCompArgType{})
}

// Documents parsed from JSON keep their key order.
func (s *PredicateTestSuite) TestJSONDocuments() {
	doc, err := data.FromJSON([]byte(`{"foo": {"bar": {"baz": "zap"}}}`))
	s.NoError(err)

	pred := mgq.New(M{"foo.bar": M{"$gte": D{{"baz", "qux"}}}})
	s.True(pred.Test(doc))
}

// A predicate is safe for concurrent Test calls.
func (s *PredicateTestSuite) TestConcurrentUse() {
	pred := mgq.New(M{"foo.bar": M{"$gt": 1}, "tag": M{"$regex": "^v"}})
	doc := M{"foo": A{M{"bar": A{1, 2}}}, "tag": "v1"}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.True(pred.Test(doc))
			}
		}()
	}
	wg.Wait()
}

func (s *PredicateTestSuite) TestMatch() {
	matches, err := mgq.Match(M{"a": 1}, M{"a": 1})
	s.NoError(err)
	s.True(matches)

	matches, err = mgq.Match(M{"a": 1}, M{"a": 2})
	s.NoError(err)
	s.False(matches)
}

func TestPredicateTestSuite(t *testing.T) {
	suite.Run(t, new(PredicateTestSuite))
}
