package rewrite

import (
	"context"
	"testing"
)

func TestPlaceholderClient(t *testing.T) {
	client := PlaceholderClient{}

	_, err := client.Generate(context.Background(), Input{DocumentID: "doc-1", Text: "some text"})
	if !IsKind(err, KindTransportFault) {
		t.Fatalf("got %v, want transport_fault", err)
	}
	if client.IsAvailable(context.Background()) {
		t.Fatal("placeholder must report unavailable")
	}
}
