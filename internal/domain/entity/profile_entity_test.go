package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrependExperienceIsNewestFirst(t *testing.T) {
	p := &Profile{}
	p.PrependExperience(Experience{ID: "a"})
	p.PrependExperience(Experience{ID: "b"})
	p.PrependExperience(Experience{ID: "c"})

	ids := make([]string, 0, len(p.Experience))
	for _, e := range p.Experience {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestRemoveExperience(t *testing.T) {
	p := &Profile{Experience: []Experience{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	assert.False(t, p.RemoveExperience("zzz"))
	assert.Len(t, p.Experience, 3)

	assert.True(t, p.RemoveExperience("b"))
	assert.Equal(t, []Experience{{ID: "a"}, {ID: "c"}}, p.Experience)

	assert.False(t, p.RemoveExperience("b"))
	assert.Len(t, p.Experience, 2)
}

func TestRemoveEducationUnknownOnEmpty(t *testing.T) {
	p := &Profile{}
	assert.False(t, p.RemoveEducation("x"))
	assert.Empty(t, p.Education)

	p.PrependEducation(Education{ID: "x"})
	assert.True(t, p.RemoveEducation("x"))
	assert.Empty(t, p.Education)
}

func TestCloneDoesNotAlias(t *testing.T) {
	to := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &Profile{
		Skills:     []string{"go"},
		Experience: []Experience{{ID: "a", To: &to}},
		Education:  []Education{{ID: "e"}},
	}
	c := p.Clone()
	c.Skills[0] = "rust"
	c.Experience[0].Title = "changed"
	*c.Experience[0].To = time.Time{}
	c.Education = append(c.Education, Education{ID: "f"})

	assert.Equal(t, "go", p.Skills[0])
	assert.Empty(t, p.Experience[0].Title)
	assert.Equal(t, to, *p.Experience[0].To)
	assert.Len(t, p.Education, 1)
}

func TestUserSummary(t *testing.T) {
	var nilUser *User
	assert.Nil(t, nilUser.Summary())

	u := &User{ID: "1", Name: "Ana", Email: "a@x.com", Password: "hash", AvatarURL: "//avatar"}
	assert.Equal(t, &UserSummary{ID: "1", Name: "Ana", AvatarURL: "//avatar", Email: "a@x.com"}, u.Summary())
}
