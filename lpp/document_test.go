package lpp

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDocumentSetGet(t *testing.T) {
	doc := NewDocument()

	if doc.Len() != 0 {
		t.Errorf("new document Len() = %d, want 0", doc.Len())
	}
	if _, ok := doc.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}

	doc.Set("a", int64(1))
	doc.Set("b", 2.5)
	doc.Set("c", "three")

	if doc.Len() != 3 {
		t.Errorf("Len() = %d, want 3", doc.Len())
	}
	if v, _ := doc.Get("b"); v != 2.5 {
		t.Errorf("Get(b) = %v, want 2.5", v)
	}
	if !doc.Contains("c") {
		t.Error("Contains(c) = false")
	}
}

func TestDocumentKeyOrder(t *testing.T) {
	doc := NewDocument()
	doc.Set("z", 1)
	doc.Set("a", 2)
	doc.Set("m", 3)

	want := []string{"z", "a", "m"}
	if got := doc.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	// Overwriting keeps the original position.
	doc.Set("z", 99)
	if got := doc.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after overwrite = %v, want %v", got, want)
	}
	if v, _ := doc.Get("z"); v != 99 {
		t.Errorf("Get(z) = %v, want 99", v)
	}
	if doc.Len() != 3 {
		t.Errorf("Len() after overwrite = %d, want 3", doc.Len())
	}
}

func TestDocumentMarshalJSONPreservesOrder(t *testing.T) {
	doc := NewDocument()
	doc.Set("Temperature_1", 27.2)
	doc.Set("Humidity_2", 65.0)
	doc.Set("Digital Input_3", int64(1))

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"Temperature_1":27.2,"Humidity_2":65,"Digital Input_3":1}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestDocumentMarshalNested(t *testing.T) {
	gps := NewDocument()
	gps.Set("latitude", 39.9688)
	gps.Set("longitude", -40.6298)
	gps.Set("altitude", 25.0)

	doc := NewDocument()
	doc.Set("GPS_1", gps)

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"GPS_1":{"latitude":39.9688,"longitude":-40.6298,"altitude":25}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
