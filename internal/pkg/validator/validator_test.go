package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"))
	assert.True(t, IsValidUUID("123e4567-e89b-12d3-a456-426614174000"))
	assert.False(t, IsValidUUID("g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"))
	assert.False(t, IsValidUUID(""))
}

func TestParseMonth(t *testing.T) {
	want := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-10", "2024-10-17", "2024-10-17T10:30:00Z", " 2024-10 "} {
		got, ok := ParseMonth(in)
		if assert.True(t, ok, in) {
			assert.True(t, want.Equal(got), "ParseMonth(%q) = %v", in, got)
		}
	}

	for _, in := range []string{"", "October", "2024-13", "24-10"} {
		_, ok := ParseMonth(in)
		assert.False(t, ok, in)
	}
}

type sampleRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"omitempty,oneof=Employee Manager Admin"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Internal string  `json:"-" validate:"omitempty"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := Struct(sampleRequest{FullName: "Aarav", Email: "aarav@example.com", Amount: 10})
		assert.NoError(t, err)
	})

	t.Run("keyed by json name", func(t *testing.T) {
		err := Struct(sampleRequest{Email: "nope", Role: "Boss"})
		require.Error(t, err)

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		m := errs.ToMap()
		assert.Equal(t, "Full Name is required", m["full_name"])
		assert.Equal(t, "Email must be a valid email", m["email"])
		assert.Equal(t, "Role must be one of: Employee, Manager, Admin", m["role"])
		assert.Equal(t, "Amount must be greater than 0", m["amount"])
	})
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.OrNil())

	errs = append(errs, ValidationError{Field: "a", Message: "bad"}, ValidationError{Field: "b", Message: "worse"})
	assert.EqualError(t, errs.OrNil(), "a: bad; b: worse")
	assert.Equal(t, map[string]string{"a": "bad", "b": "worse"}, errs.ToMap())
}
