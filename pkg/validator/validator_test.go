package validator

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidateMatchAction(t *testing.T) {
	tests := []struct {
		name       string
		targetID   uuid.UUID
		itemID     int64
		wantFields []string
	}{
		{"valid", uuid.New(), 27205, nil},
		{"missing target", uuid.Nil, 27205, []string{"target_id"}},
		{"zero item", uuid.New(), 0, []string{"item_id"}},
		{"negative item", uuid.New(), -1, []string{"item_id"}},
		{"everything wrong", uuid.Nil, 0, []string{"target_id", "item_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateMatchAction(tt.targetID, tt.itemID)

			if len(tt.wantFields) == 0 {
				if errs.HasErrors() {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(tt.wantFields))
			}
			for _, field := range tt.wantFields {
				if _, ok := errs[field]; !ok {
					t.Errorf("missing error for %q", field)
				}
			}
		})
	}
}
