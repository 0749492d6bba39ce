package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	r, ok := Parse(" HEAD ")
	assert.True(t, ok)
	assert.Equal(t, Head, r)

	_, ok = Parse("owner")
	assert.False(t, ok)
}

func TestOrdering(t *testing.T) {
	assert.True(t, Head.Rank() > Admin.Rank())
	assert.True(t, Admin.Rank() > Member.Rank())
	assert.True(t, Head.AtLeast(Admin))
	assert.True(t, Admin.AtLeast(Admin))
	assert.False(t, Member.AtLeast(Admin))
	assert.False(t, Role("ghost").AtLeast(Member))
}

func TestPermissionMatrix(t *testing.T) {
	tests := []struct {
		role         Role
		transfer     bool
		moderate     bool
		deleteMine   bool
		deleteTheirs bool
	}{
		{Head, true, true, true, true},
		{Admin, false, true, true, true},
		{Member, false, false, true, false},
		{Role(""), false, false, true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.transfer, CanTransferHead(tt.role))
			assert.Equal(t, tt.moderate, CanModerate(tt.role))
			assert.Equal(t, tt.deleteMine, CanDeleteContent(7, 7, tt.role))
			assert.Equal(t, tt.deleteTheirs, CanDeleteContent(7, 8, tt.role))
		})
	}
}

func TestCanChangeRoleOf(t *testing.T) {
	assert.True(t, CanChangeRoleOf(Head, Admin))
	assert.True(t, CanChangeRoleOf(Admin, Member))
	assert.False(t, CanChangeRoleOf(Admin, Head))
	assert.False(t, CanChangeRoleOf(Head, Head))
	assert.False(t, CanChangeRoleOf(Member, Member))
}
