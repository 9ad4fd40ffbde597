package catalog

import (
	"context"
	"testing"

	"github.com/nesmachny/translio"
	"github.com/nesmachny/translio/store"
)

func TestScannedStringRecordKey(t *testing.T) {
	s := ScannedString{ID: "abc", Text: "Add to cart", Domain: "storefront"}

	key := s.RecordKey("es_ES")
	want := translio.Key{ObjectID: "abc", ObjectType: translio.TypeString, FieldName: TextField, LanguageCode: "es_ES"}
	if key != want {
		t.Errorf("RecordKey() = %+v, want %+v", key, want)
	}

	f := s.SourceField()
	if f.ObjectID != "abc" || f.ObjectType != translio.TypeString || f.Value != "Add to cart" {
		t.Errorf("SourceField() = %+v", f)
	}
}

func TestMemoryCatalogRecordString(t *testing.T) {
	c := NewMemoryCatalog(store.NewMemoryStore())
	ctx := context.Background()

	if err := c.RecordString(ctx, ScannedString{Text: "Add to cart", Domain: "storefront"}); err != nil {
		t.Fatalf("RecordString() error = %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}

	entries, err := c.List(ctx, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].ID != translio.StringID("Add to cart", "storefront") {
		t.Errorf("ID = %q, want the derived id", entries[0].ID)
	}
}

func TestMemoryCatalogIdempotentRecording(t *testing.T) {
	c := NewMemoryCatalog(store.NewMemoryStore())
	ctx := context.Background()

	s := ScannedString{Text: "Add to cart", Domain: "storefront", Context: "Button"}
	if err := c.RecordString(ctx, s); err != nil {
		t.Fatal(err)
	}
	// A rescan records the same string again, possibly without context.
	if err := c.RecordString(ctx, ScannedString{Text: "Add to cart", Domain: "storefront"}); err != nil {
		t.Fatal(err)
	}

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (first seen wins)", c.Len())
	}
	entries, _ := c.List(ctx, Filter{})
	if entries[0].Context != "Button" {
		t.Errorf("Context = %q, want the first recording preserved", entries[0].Context)
	}
}

func TestMemoryCatalogDomainsAreDistinct(t *testing.T) {
	c := NewMemoryCatalog(store.NewMemoryStore())
	ctx := context.Background()

	c.RecordString(ctx, ScannedString{Text: "Submit", Domain: "theme-a"})
	c.RecordString(ctx, ScannedString{Text: "Submit", Domain: "theme-b"})

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (same text, different domains)", c.Len())
	}
}

func TestMemoryCatalogListFilters(t *testing.T) {
	st := store.NewMemoryStore()
	c := NewMemoryCatalog(st)
	ctx := context.Background()

	add := ScannedString{Text: "Add to cart", Domain: "storefront"}
	checkout := ScannedString{Text: "Proceed to checkout", Domain: "storefront"}
	login := ScannedString{Text: "Log in", Domain: "admin"}
	for _, s := range []ScannedString{add, checkout, login} {
		if err := c.RecordString(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	// Translate one of them.
	id := translio.StringID(add.Text, add.Domain)
	key := translio.Key{ObjectID: id, ObjectType: translio.TypeString, FieldName: TextField, LanguageCode: "es_ES"}
	if err := st.Save(ctx, key, add.Text, "Añadir al carrito", true); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"no filter", Filter{}, 3},
		{"by domain", Filter{Domain: "storefront"}, 2},
		{"search", Filter{Search: "cart"}, 1},
		{"search is case-insensitive", Filter{Search: "CART"}, 1},
		{"translated", Filter{Translated: Translated, LanguageCode: "es_ES"}, 1},
		{"untranslated", Filter{Translated: Untranslated, LanguageCode: "es_ES"}, 2},
		{"translated other language", Filter{Translated: Translated, LanguageCode: "de_DE"}, 0},
		{"domain and untranslated", Filter{Domain: "storefront", Translated: Untranslated, LanguageCode: "es_ES"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := c.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(entries) != tt.want {
				t.Errorf("List() = %d entries, want %d", len(entries), tt.want)
			}

			n, err := c.Count(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.want {
				t.Errorf("Count() = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestMemoryCatalogListJoinsTranslation(t *testing.T) {
	st := store.NewMemoryStore()
	c := NewMemoryCatalog(st)
	ctx := context.Background()

	s := ScannedString{Text: "Add to cart", Domain: "storefront"}
	c.RecordString(ctx, s)

	id := translio.StringID(s.Text, s.Domain)
	key := translio.Key{ObjectID: id, ObjectType: translio.TypeString, FieldName: TextField, LanguageCode: "es_ES"}
	st.Save(ctx, key, s.Text, "Añadir al carrito", true)

	entries, err := c.List(ctx, Filter{LanguageCode: "es_ES"})
	if err != nil {
		t.Fatal(err)
	}
	if !entries[0].Translated || entries[0].Translation != "Añadir al carrito" {
		t.Errorf("entry = %+v, want translation joined", entries[0])
	}
}

func TestMemoryCatalogPagination(t *testing.T) {
	c := NewMemoryCatalog(store.NewMemoryStore())
	ctx := context.Background()

	texts := []string{"Alpha", "Bravo", "Charlie", "Delta"}
	for _, txt := range texts {
		c.RecordString(ctx, ScannedString{Text: txt, Domain: "d"})
	}

	page1, err := c.List(ctx, Filter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	page2, err := c.List(ctx, Filter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatal(err)
	}

	if len(page1) != 2 || len(page2) != 2 {
		t.Fatalf("pages = %d, %d entries, want 2 each", len(page1), len(page2))
	}
	if page1[0].Text != "Alpha" || page2[0].Text != "Charlie" {
		t.Errorf("ordering = %q / %q, want alphabetical pages", page1[0].Text, page2[0].Text)
	}

	empty, err := c.List(ctx, Filter{Offset: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("out-of-range offset = %v, want empty", empty)
	}
}

func TestMemoryCatalogClearAllCascades(t *testing.T) {
	st := store.NewMemoryStore()
	c := NewMemoryCatalog(st)
	ctx := context.Background()

	s := ScannedString{Text: "Add to cart", Domain: "storefront"}
	c.RecordString(ctx, s)

	id := translio.StringID(s.Text, s.Domain)
	stringKey := translio.Key{ObjectID: id, ObjectType: translio.TypeString, FieldName: TextField, LanguageCode: "es_ES"}
	st.Save(ctx, stringKey, s.Text, "Añadir al carrito", true)

	// An unrelated post record must survive the clear.
	postKey := translio.Key{ObjectID: "1", ObjectType: translio.TypePost, FieldName: "title", LanguageCode: "es_ES"}
	st.Save(ctx, postKey, "Hello", "Hola", true)

	if err := c.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if rec, _ := st.Get(ctx, stringKey); rec != nil {
		t.Error("string translation record should be cascaded away")
	}
	if rec, _ := st.Get(ctx, postKey); rec == nil {
		t.Error("post record should survive ClearAll")
	}
}
