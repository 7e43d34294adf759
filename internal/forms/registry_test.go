package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Templates(t *testing.T) {
	r := NewRegistry()

	list := r.Templates()
	require.Len(t, list, 5)

	ids := make([]string, len(list))
	for i, tpl := range list {
		ids[i] = tpl.ID
	}
	assert.Equal(t, []string{"studentBio", "jobApplication", "eventRegistration", "contactForm", "collegeAdmission"}, ids)

	// Password is the first declared field of every template.
	for _, tpl := range list {
		require.NotEmpty(t, tpl.Fields, tpl.ID)
		assert.Equal(t, "password", tpl.Fields[0].Name, tpl.ID)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()

	tpl, ok := r.Lookup("contactForm")
	require.True(t, ok)
	assert.Equal(t, "Contact Form", tpl.Label)

	_, ok = r.Lookup("megaForm")
	assert.False(t, ok)
}

func TestRegistry_Defaults(t *testing.T) {
	r := NewRegistry()

	defaults, ok := r.Defaults("jobApplication")
	require.True(t, ok)

	assert.Equal(t, "", defaults["fullName"])
	assert.Equal(t, false, defaults["resumeAttached"])

	sbDefaults, ok := r.Defaults("studentBio")
	require.True(t, ok)
	assert.Nil(t, sbDefaults["dob"])
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Contact Form", Label("contactForm"))
	assert.Equal(t, "Unknown", Label("megaForm"))
}

func TestWorkspace_DeleteDoesNotTouchRegistry(t *testing.T) {
	r := NewRegistry()
	w := NewWorkspace(r)

	require.True(t, w.Delete("contactForm"))
	assert.Len(t, w.List(), 4)
	assert.False(t, w.Delete("contactForm"))

	// Canonical registry untouched.
	assert.Len(t, r.Templates(), 5)
	_, ok := r.Lookup("contactForm")
	assert.True(t, ok)
}

func TestWorkspace_Reset(t *testing.T) {
	w := NewWorkspace(NewRegistry())

	w.Delete("contactForm")
	w.Delete("studentBio")
	require.Len(t, w.List(), 3)

	w.Reset()
	assert.Len(t, w.List(), 5)
}
