package scripture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenlabs/lumen/internal/scripture"
)

func TestFindReference(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"chapter and verse", "Take comfort in John 3:16 today.", "John 3:16"},
		{"verse range", "Read Romans 8:28-31 slowly.", "Romans 8:28-31"},
		{"chapter only", "Psalm 23 speaks of the Shepherd.", "Psalm 23"},
		{"numbered book", "As 1 Corinthians 13:4 reminds us.", "1 Corinthians 13:4"},
		{"roman numeral book", "See II Timothy 1:7 for courage.", "II Timothy 1:7"},
		{"abbreviated book", "Gen. 1:1 opens the story.", "Gen. 1:1"},
		{"first match wins", "Both John 3:16 and Romans 5:8 apply.", "John 3:16"},
		{"no reference", "Let us pray together.", ""},
		{"plain number is not a reference", "I have 3 things to share.", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, scripture.FindReference(tc.text))
		})
	}
}
