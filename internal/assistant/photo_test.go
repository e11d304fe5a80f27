package assistant

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestPhotoNormalizesName(t *testing.T) {
	urls := SuggestPhoto("Red T-Shirt!!")

	require.Len(t, urls, 4)
	for i, u := range urls {
		assert.Contains(t, u, "/red,shirt?", "tokens of length <= 2 are dropped")
		assert.Contains(t, u, fmt.Sprintf("lock=%d", i+1))
	}
}

func TestSuggestPhotoIsDeterministic(t *testing.T) {
	assert.Equal(t, SuggestPhoto("Sac à main"), SuggestPhoto("Sac à main"))
}

func TestSuggestPhotoEmptyName(t *testing.T) {
	urls := SuggestPhoto("")

	require.Len(t, urls, 4)
	assert.Equal(t, "https://loremflickr.com/800/600/?lock=1", urls[0])
}

func TestNormalizePhotoQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Red T-Shirt!!", "red,shirt"},
		{"iPhone 15 Pro", "iphone,pro"},
		{"TV", ""},
		{"  chaussures   de   sport  ", "chaussures,sport"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizePhotoQuery(tc.in), "input %q", tc.in)
	}
}
