package mgq_test

import (
	"fmt"

	"github.com/weiliddat/mgq"
	"github.com/weiliddat/mgq/adapter/script"
)

func ExampleNew() {
	// A predicate binds a query once and can then be tested against any
	// number of documents.
	pred, err := mgq.New(mgq.M{
		"status": "active",
		"qty":    mgq.M{"$gte": 10, "$lt": 100},
		"tags":   mgq.M{"$all": mgq.A{"sale"}},
	}).Validate()
	if err != nil {
		fmt.Println(err)
		return
	}

	docs := []mgq.M{
		{"status": "active", "qty": 42, "tags": mgq.A{"sale", "new"}},
		{"status": "active", "qty": 3, "tags": mgq.A{"sale"}},
		{"status": "archived", "qty": 42, "tags": mgq.A{"sale"}},
	}
	for _, doc := range docs {
		fmt.Println(pred.Test(doc))
	}
	// Output:
	// true
	// false
	// false
}

func ExampleNew_where() {
	// Textual $where bodies are only honored when a compiler is injected.
	// The script adapter provides a goja-backed one.
	pred := mgq.New(
		mgq.M{"$where": "this.qty % 7 === 0"},
		mgq.WithWhereCompiler(script.Compile),
	)

	fmt.Println(pred.Test(mgq.M{"qty": 49}))
	fmt.Println(pred.Test(mgq.M{"qty": 50}))
	// Output:
	// true
	// false
}

func ExamplePredicate_Validate() {
	_, err := mgq.New(mgq.M{"qty": mgq.M{"$mod": mgq.A{4}}}).Validate()
	fmt.Println(err)
	// Output:
	// $mod value should be of type 2-number list, got []interface {}
}
