package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPath(t *testing.T) {
	cases := map[string]string{
		"":                           "/",
		"/":                          "/",
		"/dashboard/tasks/":          "/dashboard/tasks",
		"/dashboard/tasks?page=2":    "/dashboard/tasks",
		"find-work":                  "/find-work",
		"/browse#task-4":             "/browse",
		"/dashboard/proposals?x=1#y": "/dashboard/proposals",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanPath(in), "input %q", in)
	}
}

func TestIsProtected(t *testing.T) {
	assert.True(t, IsProtected("/post-task"))
	assert.True(t, IsProtected("/dashboard/tasks?tab=open"))
	assert.False(t, IsProtected("/"))
	assert.False(t, IsProtected("/login"))
	assert.False(t, IsProtected("/no-such-page"))
}

func TestDefaultLanding(t *testing.T) {
	assert.Equal(t, PathFindWork, DefaultLanding(RoleProfessional))
	assert.Equal(t, PathPostTask, DefaultLanding(RoleClient))
	assert.Equal(t, PathPostTask, DefaultLanding(RoleAdmin))
}
