package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type form struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(form{Username: "alice", Email: "alice@example.com"}))
}

func TestStruct_ReportsEveryField(t *testing.T) {
	err := Struct(form{Email: "nope"})
	assert.ErrorContains(t, err, "field 'Username' failed 'required'")
	assert.ErrorContains(t, err, "field 'Email' failed 'email'")
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("a@x.com"))
	assert.False(t, Email(""))
	assert.False(t, Email("a.x.com"))
}
