package model

import "fmt"

type Coordinates struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

type Location struct {
	FullAddress string      `json:"fullAddress"`
	PostalCode  string      `json:"postalCode"`
	Coordinates Coordinates `json:"coordinates"`
}

type Organization struct {
	Name         string `json:"name"`
	CatchPhrase  string `json:"catchPhrase"`
	BusinessArea string `json:"businessArea"`
}

// User is shaped for this service, not for the upstream API. Location and
// Organization are optional.
type User struct {
	UserID       int64         `json:"userId"`
	FullName     string        `json:"fullName"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	Location     *Location     `json:"location,omitempty"`
	PhoneNumber  string        `json:"phoneNumber"`
	WebsiteURL   string        `json:"websiteUrl"`
	Organization *Organization `json:"organization,omitempty"`
}

func (u User) IsValid() bool {
	return u.UserID != 0 &&
		u.FullName != "" &&
		u.Username != "" &&
		u.Email != "" &&
		u.PhoneNumber != "" &&
		u.WebsiteURL != ""
}

func (u User) DisplayName() string {
	return fmt.Sprintf("%s (@%s)", u.FullName, u.Username)
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:       u.UserID,
		Name:     u.FullName,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.PhoneNumber,
		Website:  u.WebsiteURL,
	}
}

func NewUserResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
