package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "Taylor_Swift_profile.pdf", Filename("Taylor Swift"))
	assert.Equal(t, "A__B_profile.pdf", Filename("A \tB"))
	assert.Equal(t, "Adele_profile.pdf", Filename("Adele"))
}
