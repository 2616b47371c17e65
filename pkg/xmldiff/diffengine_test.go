package xmldiff

import "testing"

func countOps(edits []NodeEdit) (added, removed, modified int) {
	for _, e := range edits {
		switch e.Op {
		case Added:
			added++
		case Removed:
			removed++
		case Modified:
			modified++
		}
	}
	return
}

func TestDiffIdentityProducesNoEdits(t *testing.T) {
	doc := []byte(`<star_wars><movie><episode>IV</episode><title>A New Hope</title></movie></star_wars>`)
	edits, err := Diff(doc, doc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 0 {
		t.Fatalf("diff(X, X) should produce no edits, got %d: %+v", len(edits), edits)
	}
}

func TestDiffReorderInsensitive(t *testing.T) {
	a := []byte(`<root><x n="1"/><y n="2"/><z n="3"/></root>`)
	b := []byte(`<root><z n="3"/><x n="1"/><y n="2"/></root>`)

	edits, err := Diff(a, b, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 0 {
		t.Fatalf("reordered identical siblings should produce no edits, got %+v", edits)
	}

	reverse, err := Diff(b, a, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(reverse) != 0 {
		t.Fatalf("reversed-direction reorder diff should also produce no edits, got %+v", reverse)
	}
}

func TestDiffAttributeOnlyChangeIsModified(t *testing.T) {
	edits, err := Diff([]byte(`<a x="1"/>`), []byte(`<a x="2"/>`), Options{})
	if err != nil {
		t.Fatal(err)
	}
	added, removed, modified := countOps(edits)
	if modified != 1 || added != 0 || removed != 0 {
		t.Fatalf("expected exactly one Modified, got added=%d removed=%d modified=%d (%+v)", added, removed, modified, edits)
	}
}

func TestDiffAttributeReorderIsNoEdit(t *testing.T) {
	edits, err := Diff([]byte(`<a x="1" y="2"/>`), []byte(`<a y="2" x="1"/>`), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 0 {
		t.Fatalf("pure attribute reorder should produce no edits, got %+v", edits)
	}
}

func TestDiffTagRenameIsRemovedPlusAdded(t *testing.T) {
	edits, err := Diff(
		[]byte(`<root><old>value</old></root>`),
		[]byte(`<root><new>value</new></root>`),
		Options{},
	)
	if err != nil {
		t.Fatal(err)
	}
	added, removed, modified := countOps(edits)
	if added != 1 || removed != 1 || modified != 0 {
		t.Fatalf("tag rename should be one Removed + one Added, got added=%d removed=%d modified=%d", added, removed, modified)
	}
}

func TestDiffDeepNestSingleChange(t *testing.T) {
	a := []byte(`<root><l1><l2><l3 v="same"/></l2></l1></root>`)
	b := []byte(`<root><l1><l2><l3 v="different"/></l2></l1></root>`)
	edits, err := Diff(a, b, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 1 || edits[0].Op != Modified {
		t.Fatalf("expected exactly one Modified deep in the tree, got %+v", edits)
	}
	if edits[0].Expected.LocalName() != "l3" {
		t.Fatalf("expected the innermost element to be reported, got %q", edits[0].Expected.LocalName())
	}
}

func TestDiffEmptyDocumentWithExcludeEmpty(t *testing.T) {
	edits, err := Diff([]byte(`<root/>`), []byte(`<root><child/></root>`), Options{ExcludeEmptyNodes: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 0 {
		t.Fatalf("empty child under exclude_empty_nodes should produce no edits, got %+v", edits)
	}
}

func TestDiffMalformedXMLFails(t *testing.T) {
	_, err := Diff([]byte(`<root><unclosed></root>`), []byte(`<root/>`), Options{})
	if err == nil {
		t.Fatal("expected an error for malformed XML")
	}
}

// TestDiffMovieExample exercises a representative movie-catalog scenario.
func TestDiffMovieExample(t *testing.T) {
	expected := []byte(`<star_wars>
  <movie><episode>IV</episode><title>A New Hope</title><release_date>05/25/1977</release_date></movie>
  <movie><episode>V</episode><title>The Empire Strikes Back</title><release_date>05/21/1980</release_date></movie>
  <movie><episode>VI</episode><title>Return of the Jedi</title><release_date>05/25/1983</release_date></movie>
</star_wars>`)

	actual := []byte(`<star_wars>
  <movie><title>A New Hope</title><release_date>05/25/1977</release_date></movie>
  <movie><episode>VI</episode><title>Return of the Jedi</title><release_date>05/25/1983</release_date><rating>4.7/5.0</rating></movie>
  <movie><episode>V</episode><title>Empire Strikes Back</title><release_date>05/21/1980</release_date></movie>
</star_wars>`)

	edits, err := Diff(expected, actual, Options{})
	if err != nil {
		t.Fatal(err)
	}

	var sawRemovedEpisode, sawModifiedTitle, sawAddedRating bool
	for _, e := range edits {
		switch e.Op {
		case Removed:
			if e.Expected.LocalName() == "episode" {
				if text, ok := e.Expected.Text(); ok && text == "IV" {
					sawRemovedEpisode = true
				}
			}
		case Modified:
			if e.Expected.LocalName() == "title" {
				sawModifiedTitle = true
			}
		case Added:
			if e.Actual.LocalName() == "rating" {
				sawAddedRating = true
			}
		}
	}

	if !sawRemovedEpisode {
		t.Error("expected a Removed edit for <episode>IV</episode>")
	}
	if !sawModifiedTitle {
		t.Error("expected a Modified edit for the title")
	}
	if !sawAddedRating {
		t.Error("expected an Added edit for <rating>")
	}
}

func TestDiffMatchExclusivity(t *testing.T) {
	a := []byte(`<root><item n="1"/><item n="2"/></root>`)
	b := []byte(`<root><item n="1"/><item n="2"/><item n="3"/></root>`)
	edits, err := Diff(a, b, Options{})
	if err != nil {
		t.Fatal(err)
	}
	seenExpected := make(map[*Element]bool)
	seenActual := make(map[*Element]bool)
	for _, e := range edits {
		if e.Expected != nil {
			if seenExpected[e.Expected] {
				t.Fatalf("expected element appears in more than one edit")
			}
			seenExpected[e.Expected] = true
		}
		if e.Actual != nil {
			if seenActual[e.Actual] {
				t.Fatalf("actual element appears in more than one edit")
			}
			seenActual[e.Actual] = true
		}
	}
}
