package kernel

import (
	"fmt"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// Role is the capability granted to a caller by the authentication collaborator.
type Role string

const (
	RoleBiller    Role = "biller"
	RoleTreasury  Role = "treasury"
	RoleLogistics Role = "logistics"
	RoleCourier   Role = "courier"
	RoleAdmin     Role = "admin"
)

func (r Role) Validate() error {
	switch r {
	case RoleBiller, RoleTreasury, RoleLogistics, RoleCourier, RoleAdmin:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
}

// Actor is the (userId, role) pair attached to every call.
type Actor struct {
	userID UUID
	role   Role
}

func NewActor(userID UUID, role Role) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{userID: userID, role: role}, nil
}

func (a Actor) UserID() UUID {
	return a.userID
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Validate() error {
	if err := a.userID.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}

// Require fails with an UnauthorizedError unless the actor holds one of roles.
// Admin is accepted everywhere.
func (a Actor) Require(action string, roles ...Role) error {
	if a.role == RoleAdmin || slices.Contains(roles, a.role) {
		return nil
	}
	return errs.NewUnauthorizedError(string(a.role), action, fmt.Sprintf("requires one of %v", roles))
}

func (a Actor) String() string {
	return fmt.Sprintf("%s(%s)", a.role, a.userID)
}
