package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "street-cats", Slugify("Street Cats"))
	assert.Equal(t, "street-cats", Slugify("  Street   Cats  "))
	assert.Equal(t, "cats-dogs", Slugify("Cats & Dogs!"))
	assert.Equal(t, "already-a-slug", Slugify("already-a-slug"))
	assert.Equal(t, "", Slugify("!!!"))
}
