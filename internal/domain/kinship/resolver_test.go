package kinship

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEmptyInputs(t *testing.T) {
	for _, label := range append(Labels(), "", "cousin", "FATHER") {
		assert.Equal(t, Relative, Resolve("", label), "subject empty, target %q", label)
		assert.Equal(t, Relative, Resolve(label, ""), "subject %q, target empty", label)
	}
	assert.Equal(t, Relative, ResolvePtr(nil, nil))

	son := "son"
	assert.Equal(t, Relative, ResolvePtr(nil, &son))
	assert.Equal(t, Relative, ResolvePtr(&son, nil))
}

func TestResolveTable(t *testing.T) {
	tests := []struct {
		subject, target, want string
	}{
		{"father", "son", "son"},
		{"father", "husband", Self},
		{"mother", "wife", Self},
		{"wife", "father", "father-in-law"},
		{"husband", "mother", "mother-in-law"},
		{"son", "wife", "wife"},
		{"son", "father", "father"},
		{"daughter", "husband", "husband"},
		{"wife", "husband", "husband"},
		{"husband", "sister", "sister-in-law"},
	}
	for _, tt := range tests {
		t.Run(tt.subject+"->"+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.subject, tt.target))
		})
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	assert.Equal(t, Resolve("father", "son"), Resolve("FATHER", "SON"))
	assert.Equal(t, "father-in-law", Resolve("Wife", "Father"))
}

func TestResolveDoesNotTrimLabels(t *testing.T) {
	assert.Equal(t, Relative, Resolve(" father", "son"))
	assert.Equal(t, Relative, Resolve("father", "son "))
	assert.False(t, Known(" wife"))
}

func TestResolveUnknownLabels(t *testing.T) {
	assert.Equal(t, Relative, Resolve("grandfather", "son"))
	assert.Equal(t, Relative, Resolve("father", "cousin"))
	assert.Equal(t, Relative, Resolve("uncle", "aunt"))
}

func TestTableIsCompleteInBothDirections(t *testing.T) {
	labels := Labels()
	assert.Len(t, labels, 8)
	for _, a := range labels {
		for _, b := range labels {
			assert.NotEqual(t, Relative, Resolve(a, b), "pair (%s, %s) is unmapped", a, b)
			assert.NotEqual(t, Relative, Resolve(b, a), "pair (%s, %s) is unmapped", b, a)
		}
	}
}

func TestSiblingRowsCompleted(t *testing.T) {
	assert.Equal(t, "sister-in-law", Resolve("brother", "wife"))
	assert.Equal(t, "nephew", Resolve("sister", "son"))
	assert.Equal(t, "niece", Resolve("brother", "daughter"))
	assert.Equal(t, Self, Resolve("wife", "wife"))
	assert.Equal(t, Self, Resolve("husband", "husband"))
}

func TestResolveIsIdempotentAndConcurrent(t *testing.T) {
	first := Resolve("wife", "brother")
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, first, Resolve("wife", "brother"))
		}()
	}
	wg.Wait()
	assert.Equal(t, first, Resolve("wife", "brother"))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("Sister"))
	assert.False(t, Known("cousin"))
	for _, l := range Labels() {
		assert.Equal(t, strings.ToLower(l), l)
	}
}
