package entity

import (
	"time"
)

// Recognized social networks.
const (
	SocialYoutube   = "youtube"
	SocialTwitter   = "twitter"
	SocialFacebook  = "facebook"
	SocialLinkedin  = "linkedin"
	SocialInstagram = "instagram"
)

// Social only carries the links that were supplied.
type Social struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

type Experience struct {
	ID          string     `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Company     string     `json:"company" bson:"company"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
	From        time.Time  `json:"from" bson:"from"`
	To          *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool       `json:"current" bson:"current"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
}

type Education struct {
	ID           string     `json:"id" bson:"id"`
	School       string     `json:"school" bson:"school"`
	Degree       string     `json:"degree" bson:"degree"`
	FieldOfStudy string     `json:"fieldofstudy" bson:"fieldofstudy"`
	From         time.Time  `json:"from" bson:"from"`
	To           *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool       `json:"current" bson:"current"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
}

// Profile is the per-user aggregate. It exclusively owns Experience, Education
// and Social; both lists are kept newest first.
type Profile struct {
	ID             string       `json:"id" bson:"_id"`
	UserID         string       `json:"user" bson:"user"`
	Company        string       `json:"company,omitempty" bson:"company,omitempty"`
	Website        string       `json:"website,omitempty" bson:"website,omitempty"`
	Location       string       `json:"location,omitempty" bson:"location,omitempty"`
	Bio            string       `json:"bio,omitempty" bson:"bio,omitempty"`
	Status         string       `json:"status" bson:"status"`
	GithubUsername string       `json:"githubusername,omitempty" bson:"githubusername,omitempty"`
	Skills         []string     `json:"skills" bson:"skills"`
	Social         Social       `json:"social" bson:"social"`
	Experience     []Experience `json:"experience" bson:"experience"`
	Education      []Education  `json:"education" bson:"education"`
	CreatedAt      time.Time    `json:"date" bson:"date"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`
}

// Clone returns a deep copy so callers never share the owned slices.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Skills = append([]string(nil), p.Skills...)
	c.Experience = make([]Experience, len(p.Experience))
	for i, e := range p.Experience {
		c.Experience[i] = e
		if e.To != nil {
			to := *e.To
			c.Experience[i].To = &to
		}
	}
	c.Education = make([]Education, len(p.Education))
	for i, e := range p.Education {
		c.Education[i] = e
		if e.To != nil {
			to := *e.To
			c.Education[i].To = &to
		}
	}
	return &c
}

// PrependExperience inserts e at index 0.
func (p *Profile) PrependExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

// RemoveExperience drops the entry with id and reports whether one was found.
// An unknown id leaves the list untouched.
func (p *Profile) RemoveExperience(id string) bool {
	kept := p.Experience[:0:0]
	for _, e := range p.Experience {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(p.Experience) {
		return false
	}
	p.Experience = kept
	return true
}

func (p *Profile) PrependEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

func (p *Profile) RemoveEducation(id string) bool {
	kept := p.Education[:0:0]
	for _, e := range p.Education {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(p.Education) {
		return false
	}
	p.Education = kept
	return true
}
