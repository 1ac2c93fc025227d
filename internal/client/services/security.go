package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/fieldadmin/internal/client/client"
	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
)

// SecurityService administers user accounts and roles.
type SecurityService interface {
	Users(ctx context.Context) ([]models.User, error)
	ActiveUsers(ctx context.Context) ([]models.User, error)
	UsersWithRole(ctx context.Context, role string) ([]models.User, error)
	User(ctx context.Context, id int64) (models.User, error)
	SaveUser(ctx context.Context, u models.User) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	UserRoles(ctx context.Context, userID int64) ([]string, error)
	AssignRole(ctx context.Context, userID, roleID int64) error
	RemoveRole(ctx context.Context, userID, roleID int64) error

	Roles(ctx context.Context) ([]models.Role, error)
	Role(ctx context.Context, id int64) (models.Role, error)
	SaveRole(ctx context.Context, r models.Role) (models.Role, error)
	DeleteRole(ctx context.Context, id int64) error
}

type securityService struct {
	api   Backend
	perms Permissions
	users resource[models.User]
	roles resource[models.Role]
}

func NewSecurityService(api Backend, roles RoleChecker) SecurityService {
	return &securityService{
		api:   api,
		perms: NewPermissions(roles),
		users: resource[models.User]{b: api, path: "/usuarios"},
		roles: resource[models.Role]{b: api, path: "/roles"},
	}
}

func (s *securityService) Users(ctx context.Context) ([]models.User, error) {
	return s.users.list(ctx, nil)
}

func (s *securityService) ActiveUsers(ctx context.Context) ([]models.User, error) {
	return resource[models.User]{b: s.api, path: "/usuarios/active"}.list(ctx, nil)
}

func (s *securityService) UsersWithRole(ctx context.Context, role string) ([]models.User, error) {
	return s.users.list(ctx, url.Values{"role": {role}})
}

func (s *securityService) User(ctx context.Context, id int64) (models.User, error) {
	return s.users.get(ctx, id)
}

// SaveUser creates u when it has no id (a password is then required) or
// patches it. The username cannot be changed after creation.
func (s *securityService) SaveUser(ctx context.Context, u models.User) (models.User, error) {
	if err := s.perms.Require(ManageUsers); err != nil {
		return models.User{}, err
	}
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)

	id := u.ID
	u.ID = 0
	if id == 0 {
		if len([]rune(u.Username)) < minUsernameLength {
			return models.User{}, fmt.Errorf("%w: username must have at least %d characters", client.ErrValidation, minUsernameLength)
		}
		if len([]rune(u.Password)) < minPasswordLength {
			return models.User{}, fmt.Errorf("%w: password must have at least %d characters", client.ErrValidation, minPasswordLength)
		}
		return s.users.save(ctx, 0, u)
	}

	u.Username, u.Password = "", ""
	return s.users.save(ctx, id, u)
}

func (s *securityService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.perms.Require(ManageUsers); err != nil {
		return err
	}
	return s.users.delete(ctx, id)
}

// UserRoles returns the names of the user's roles.
func (s *securityService) UserRoles(ctx context.Context, userID int64) ([]string, error) {
	var names []string
	if err := s.api.Get(ctx, s.users.item(userID)+"/roles", nil, &names); err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *securityService) AssignRole(ctx context.Context, userID, roleID int64) error {
	if err := s.perms.Require(ManageUsers); err != nil {
		return err
	}
	return s.api.Post(ctx, "/usuarios/assign-role", models.RoleAssignment{UserID: userID, RoleID: roleID}, nil)
}

func (s *securityService) RemoveRole(ctx context.Context, userID, roleID int64) error {
	if err := s.perms.Require(ManageUsers); err != nil {
		return err
	}
	return s.api.Delete(ctx, fmt.Sprintf("%s/roles/%d", s.users.item(userID), roleID))
}

func (s *securityService) Roles(ctx context.Context) ([]models.Role, error) {
	return s.roles.list(ctx, nil)
}

func (s *securityService) Role(ctx context.Context, id int64) (models.Role, error) {
	return s.roles.get(ctx, id)
}

func (s *securityService) SaveRole(ctx context.Context, r models.Role) (models.Role, error) {
	if err := s.perms.Require(ManageRoles); err != nil {
		return models.Role{}, err
	}
	body := models.Role{Name: strings.TrimSpace(r.Name), Description: strings.TrimSpace(r.Description)}
	if body.Name == "" {
		return models.Role{}, fmt.Errorf("%w: name is required", client.ErrValidation)
	}
	return s.roles.save(ctx, r.ID, body)
}

func (s *securityService) DeleteRole(ctx context.Context, id int64) error {
	if err := s.perms.Require(ManageRoles); err != nil {
		return err
	}
	return s.roles.delete(ctx, id)
}
