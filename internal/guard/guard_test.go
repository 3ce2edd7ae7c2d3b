package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hostel-client/internal/guard"
	"hostel-client/internal/session"
)

func studentSession() *session.Session {
	return &session.Session{
		Role:    session.RoleStudent,
		Token:   "student-token",
		Student: &session.StudentRecord{Name: "Arun Kumar", RollNo: "CS101"},
	}
}

func wardenSession() *session.Session {
	return &session.Session{
		Role:   session.RoleWarden,
		Token:  "warden-token",
		Warden: &session.WardenRecord{Name: "Chief Warden", UserID: "warden"},
	}
}

func TestGuard_Authorize(t *testing.T) {
	g, err := guard.New()
	assert.NoError(t, err)

	t.Run("success student view", func(t *testing.T) {
		decision := g.Authorize(studentSession(), "/student/dashboard")

		assert.True(t, decision.Allowed)
		assert.Empty(t, decision.RedirectTo)
	})

	t.Run("success warden view", func(t *testing.T) {
		decision := g.Authorize(wardenSession(), "/warden/complaints")

		assert.True(t, decision.Allowed)
	})

	t.Run("negative no session redirects to sign-in", func(t *testing.T) {
		decision := g.Authorize(nil, "/student/dashboard")

		assert.False(t, decision.Allowed)
		assert.Equal(t, guard.SignInPath, decision.RedirectTo)
	})

	t.Run("negative role mismatch redirects", func(t *testing.T) {
		decision := g.Authorize(studentSession(), "/warden/dashboard")

		assert.False(t, decision.Allowed)
		assert.Equal(t, guard.SignInPath, decision.RedirectTo)
	})

	t.Run("negative view outside any prefix redirects", func(t *testing.T) {
		decision := g.Authorize(studentSession(), "/admin/settings")

		assert.False(t, decision.Allowed)
	})

	t.Run("negative session without token redirects", func(t *testing.T) {
		sess := studentSession()
		sess.Token = ""

		decision := g.Authorize(sess, "/student/dashboard")

		assert.False(t, decision.Allowed)
		assert.Equal(t, guard.SignInPath, decision.RedirectTo)
	})

	t.Run("negative role without identity record redirects", func(t *testing.T) {
		sess := studentSession()
		sess.Student = nil

		decision := g.Authorize(sess, "/student/dashboard")

		assert.False(t, decision.Allowed)
	})
}

func TestGuard_AuthorizeRole(t *testing.T) {
	g, err := guard.New()
	assert.NoError(t, err)

	t.Run("success matching role", func(t *testing.T) {
		decision := g.AuthorizeRole(wardenSession(), session.RoleWarden)

		assert.True(t, decision.Allowed)
	})

	t.Run("negative wrong role", func(t *testing.T) {
		decision := g.AuthorizeRole(studentSession(), session.RoleWarden)

		assert.False(t, decision.Allowed)
		assert.Equal(t, guard.SignInPath, decision.RedirectTo)
	})

	t.Run("negative nil session", func(t *testing.T) {
		decision := g.AuthorizeRole(nil, session.RoleStudent)

		assert.False(t, decision.Allowed)
	})
}
