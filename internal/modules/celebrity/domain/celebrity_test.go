package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestCelebrity_Normalize(t *testing.T) {
	c := &Celebrity{Name: "Adele"}
	c.Normalize()

	assert.NotNil(t, c.Category)
	assert.Empty(t, c.Category)
	assert.NotNil(t, c.Topics)
	assert.Empty(t, c.Topics)
}

func TestCelebrity_Validate(t *testing.T) {
	valid := Celebrity{Name: "Adele", Category: []string{"Singer"}, Country: "UK"}
	assert.NoError(t, valid.Validate())

	cases := map[string]Celebrity{
		"blank name":     {Name: " ", Category: []string{"Singer"}, Country: "UK"},
		"no category":    {Name: "Adele", Country: "UK"},
		"blank category": {Name: "Adele", Category: []string{"", "  "}, Country: "UK"},
		"no country":     {Name: "Adele", Category: []string{"Singer"}},
		"negative count": {Name: "Adele", Category: []string{"Singer"}, Country: "UK", FanbaseCount: -1},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, c.Validate(), ErrInvalidCelebrity)
		})
	}
}

func TestPatch_IsEmptyAndValidate(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, Patch{Country: ptr("UK")}.IsEmpty())

	assert.NoError(t, Patch{}.Validate())
	assert.NoError(t, Patch{Category: &[]string{"Actor"}, FanbaseCount: ptr(0)}.Validate())
	assert.ErrorIs(t, Patch{Name: ptr("")}.Validate(), ErrInvalidCelebrity)
	assert.ErrorIs(t, Patch{Category: &[]string{}}.Validate(), ErrInvalidCelebrity)
	assert.ErrorIs(t, Patch{Category: &[]string{""}}.Validate(), ErrInvalidCelebrity)
	assert.ErrorIs(t, Patch{Country: ptr("  ")}.Validate(), ErrInvalidCelebrity)
	assert.ErrorIs(t, Patch{FanbaseCount: ptr(-3)}.Validate(), ErrInvalidCelebrity)
}

func TestClean_TrimsAndDropsBlankEntries(t *testing.T) {
	c := &Celebrity{Category: []string{" Singer ", "", "Actor"}, Topics: []string{"  "}}
	c.Clean()
	assert.Equal(t, []string{"Singer", "Actor"}, []string(c.Category))
	assert.Empty(t, c.Topics)

	p := Patch{Category: &[]string{"", " Speaker"}}.Clean()
	assert.Equal(t, []string{"Speaker"}, *p.Category)
	assert.Nil(t, p.Topics)
}
