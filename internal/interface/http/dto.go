package handlers

import (
	"time"

	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
	"github.com/oksasatya/go-devconnector/pkg/validation"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

var registerMessages = validation.Messages{
	"name":         "Name is required",
	"email":        "Please enter valid email",
	"password.min": "Please enter password with 6 or more characters",
	"password.max": "Please enter password with 72 or fewer characters",
	"password":     "Password is required",
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var loginMessages = validation.Messages{
	"email":    "Please enter valid email",
	"password": "Password is required",
}

type tokenResponse struct {
	Token string `json:"token"`
}

// profileRequest keeps the social links flat, as clients post them.
type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" binding:"required"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" binding:"required"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

var profileMessages = validation.Messages{
	"status": "Status is required",
	"skills": "Skills is required",
}

func (r profileRequest) toInput() application.ProfileInput {
	return application.ProfileInput{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Bio:            r.Bio,
		Status:         r.Status,
		GithubUsername: r.GithubUsername,
		Skills:         r.Skills,
		Social: entity.Social{
			Youtube:   r.Youtube,
			Twitter:   r.Twitter,
			Facebook:  r.Facebook,
			Linkedin:  r.Linkedin,
			Instagram: r.Instagram,
		},
	}
}

type experienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required,date"`
	To          string `json:"to" binding:"omitempty,date"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

var experienceMessages = validation.Messages{
	"title":         "Title is required",
	"company":       "Company is required",
	"from.required": "From date is required",
	"from.date":     "From date is not a valid date",
	"to.date":       "To date is not a valid date",
}

func (r experienceRequest) toInput() application.ExperienceInput {
	from, _ := helpers.ParseDate(r.From)
	return application.ExperienceInput{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        from,
		To:          optionalDate(r.To),
		Current:     r.Current,
		Description: r.Description,
	}
}

type educationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required,date"`
	To           string `json:"to" binding:"omitempty,date"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

var educationMessages = validation.Messages{
	"school":        "School is required",
	"degree":        "Degree is required",
	"fieldofstudy":  "Field of study is required",
	"from.required": "From date is required",
	"from.date":     "From date is not a valid date",
	"to.date":       "To date is not a valid date",
}

func (r educationRequest) toInput() application.EducationInput {
	from, _ := helpers.ParseDate(r.From)
	return application.EducationInput{
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		From:         from,
		To:           optionalDate(r.To),
		Current:      r.Current,
		Description:  r.Description,
	}
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, ok := helpers.ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}
