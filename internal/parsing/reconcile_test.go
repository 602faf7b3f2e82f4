package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	parsed := ptr("AM-967")
	existing := ptr("TH5170")

	tests := []struct {
		parsed   *string
		existing *string
		want     *string
		name     string
	}{
		{name: "parsed wins", parsed: parsed, existing: existing, want: parsed},
		{name: "existing is the fallback", parsed: nil, existing: existing, want: existing},
		{name: "parsed without existing", parsed: parsed, existing: nil, want: parsed},
		{name: "both absent", parsed: nil, existing: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.parsed, tt.existing))
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	existing := ptr(12.5)

	once := Reconcile(nil, existing)
	twice := Reconcile(once, existing)

	assert.Equal(t, existing, once)
	assert.Equal(t, once, twice)
}
