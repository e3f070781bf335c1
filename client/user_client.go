package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	"github.com/dev-mohitbeniwal/postcache/model"
)

type IUserClient interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// userDTO mirrors the upstream /users payload.
type userDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  *struct {
		Street  string `json:"street"`
		Suite   string `json:"suite"`
		City    string `json:"city"`
		Zipcode string `json:"zipcode"`
		Geo     struct {
			Lat string `json:"lat"`
			Lng string `json:"lng"`
		} `json:"geo"`
	} `json:"address"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Company *struct {
		Name        string `json:"name"`
		CatchPhrase string `json:"catchPhrase"`
		BS          string `json:"bs"`
	} `json:"company"`
}

func (d userDTO) toModel() model.User {
	user := model.User{
		UserID:      d.ID,
		FullName:    d.Name,
		Username:    d.Username,
		Email:       d.Email,
		PhoneNumber: d.Phone,
		WebsiteURL:  d.Website,
	}

	if d.Address != nil {
		parts := make([]string, 0, 3)
		for _, p := range []string{d.Address.Street, d.Address.Suite, d.Address.City} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		user.Location = &model.Location{
			FullAddress: strings.Join(parts, ", "),
			PostalCode:  d.Address.Zipcode,
			Coordinates: model.Coordinates{Lat: d.Address.Geo.Lat, Lng: d.Address.Geo.Lng},
		}
	}
	if d.Company != nil {
		user.Organization = &model.Organization{
			Name:         d.Company.Name,
			CatchPhrase:  d.Company.CatchPhrase,
			BusinessArea: d.Company.BS,
		}
	}
	return user
}

type UserClient struct {
	*Client
}

func NewUserClient(c *Client) *UserClient {
	return &UserClient{Client: c}
}

func (c *UserClient) GetUser(ctx context.Context, id int64) (model.User, error) {
	var dto userDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d", id), &dto); err != nil {
		if errors.Is(err, postcache_errors.ErrNotFound) {
			return model.User{}, fmt.Errorf("%w: id %d", postcache_errors.ErrUserNotFound, id)
		}
		return model.User{}, err
	}
	return dto.toModel(), nil
}

func (c *UserClient) ListUsers(ctx context.Context) ([]model.User, error) {
	var dtos []userDTO
	if err := c.getJSON(ctx, "/users", &dtos); err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(dtos))
	for _, d := range dtos {
		users = append(users, d.toModel())
	}
	return users, nil
}
