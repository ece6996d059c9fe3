// Package access decides which call-activity records a user may see or touch.
//
// All role rules live in the capability table below; call sites ask the table
// instead of comparing role literals.
package access

import (
	"context"
	"fmt"

	"sales-activity-backend/internal/apperror"
	"sales-activity-backend/internal/model"
)

type Scope int

const (
	ScopeNone    Scope = iota // no call-activity data
	ScopeOwn                  // own records only
	ScopeTeam                 // own + direct subordinates
	ScopeCompany              // every record in the company
)

func (s Scope) String() string {
	switch s {
	case ScopeOwn:
		return "OWN"
	case ScopeTeam:
		return "TEAM"
	case ScopeCompany:
		return "COMPANY"
	default:
		return "NONE"
	}
}

type Capability struct {
	Role           model.Role `json:"role"`
	CallActivities bool       `json:"call_activities"`
	UserData       bool       `json:"user_data"`
	Scope          Scope      `json:"-"`
	ScopeName      string     `json:"scope"`
}

var capabilities = map[model.Role]Capability{
	model.RoleSR:  {Role: model.RoleSR, CallActivities: true, UserData: true, Scope: ScopeOwn},
	model.RoleSUP: {Role: model.RoleSUP, CallActivities: true, UserData: true, Scope: ScopeTeam},
	model.RoleSM:  {Role: model.RoleSM, CallActivities: true, UserData: true, Scope: ScopeCompany},
	model.RoleSD:  {Role: model.RoleSD, CallActivities: true, UserData: true, Scope: ScopeCompany},
	model.RoleCEO: {Role: model.RoleCEO, CallActivities: false, UserData: true, Scope: ScopeNone},
}

var roleOrder = []model.Role{model.RoleSR, model.RoleSUP, model.RoleSM, model.RoleSD, model.RoleCEO}

// Capabilities returns the fixed role table in hierarchy order.
func Capabilities() []Capability {
	out := make([]Capability, 0, len(roleOrder))
	for _, r := range roleOrder {
		c := capabilities[r]
		c.ScopeName = c.Scope.String()
		out = append(out, c)
	}
	return out
}

func capabilityOf(role model.Role) Capability {
	return capabilities[role] // unknown roles get the zero value: no access
}

func CanAccessCallActivities(role model.Role) bool {
	return capabilityOf(role).CallActivities
}

// EnsureCallActivityAccess turns a denied role into a Forbidden error rather
// than an empty result.
func EnsureCallActivityAccess(role model.Role) error {
	if !CanAccessCallActivities(role) {
		return apperror.Forbidden("role %s is not permitted to access pre-call plans or call reports", role)
	}
	return nil
}

// CanAccessUserData covers general user-record access. CEO passes here while
// being denied call-activity data, so callers handling plans or reports must
// use EnsureCallActivityAccess as well.
func CanAccessUserData(role model.Role) bool {
	return capabilityOf(role).UserData
}

type Directory interface {
	FindIDsByManager(ctx context.Context, managerID uint) ([]uint, error)
	CompanyIDOf(ctx context.Context, userID uint) (uint, error)
}

// ResolveSubordinateIDs returns direct reports only; grand-subordinates are
// intentionally not included.
func ResolveSubordinateIDs(ctx context.Context, dir Directory, managerID uint) ([]uint, error) {
	ids, err := dir.FindIDsByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("resolve subordinates of %d: %w", managerID, err)
	}
	return ids, nil
}

// ListFilter restricts record listings by owner. Unrestricted means no owner
// id predicate; a non-zero CompanyID still limits owners to that company.
type ListFilter struct {
	Unrestricted bool
	OwnerIDs     []uint
	CompanyID    uint
}

// Allows reports whether a record owned by ownerID passes the filter.
func (f ListFilter) Allows(ownerID uint) bool {
	if f.Unrestricted {
		return true
	}
	for _, id := range f.OwnerIDs {
		if id == ownerID {
			return true
		}
	}
	return false
}

func BuildListFilter(user *model.User, subordinateIDs []uint) (ListFilter, error) {
	switch capabilityOf(user.Role).Scope {
	case ScopeOwn:
		return ListFilter{OwnerIDs: []uint{user.ID}}, nil
	case ScopeTeam:
		ids := make([]uint, 0, len(subordinateIDs)+1)
		ids = append(ids, user.ID)
		for _, id := range subordinateIDs {
			if id != user.ID {
				ids = append(ids, id)
			}
		}
		return ListFilter{OwnerIDs: ids}, nil
	case ScopeCompany:
		return ListFilter{Unrestricted: true, CompanyID: user.CompanyID}, nil
	default:
		return ListFilter{}, EnsureCallActivityAccess(user.Role)
	}
}

func CanAccessUserRecord(user *model.User, targetOwnerID uint, subordinateIDs []uint) bool {
	switch capabilityOf(user.Role).Scope {
	case ScopeOwn:
		return targetOwnerID == user.ID
	case ScopeTeam:
		if targetOwnerID == user.ID {
			return true
		}
		return containsID(subordinateIDs, targetOwnerID)
	case ScopeCompany:
		return true
	default:
		// CEO: user-management only, never for call-activity records
		return CanAccessUserData(user.Role)
	}
}

// CanApprove reports whether user may decide on a record owned by ownerID:
// a SUP directly above the owner, or any company-wide role.
func CanApprove(user *model.User, ownerID uint, subordinateIDs []uint) bool {
	if !CanAccessCallActivities(user.Role) {
		return false
	}
	switch capabilityOf(user.Role).Scope {
	case ScopeTeam:
		return containsID(subordinateIDs, ownerID)
	case ScopeCompany:
		return true
	default:
		return false
	}
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Policy binds the table to a Directory so callers need not resolve
// subordinates themselves. It holds no per-request state.
type Policy struct {
	dir Directory
}

func NewPolicy(dir Directory) *Policy {
	return &Policy{dir: dir}
}

// subordinatesFor only hits the directory for team-scoped roles.
func (p *Policy) subordinatesFor(ctx context.Context, user *model.User) ([]uint, error) {
	if capabilityOf(user.Role).Scope != ScopeTeam {
		return nil, nil
	}
	return ResolveSubordinateIDs(ctx, p.dir, user.ID)
}

// ListFilterFor rejects CEO first, then builds the owner filter.
func (p *Policy) ListFilterFor(ctx context.Context, user *model.User) (ListFilter, error) {
	if err := EnsureCallActivityAccess(user.Role); err != nil {
		return ListFilter{}, err
	}
	subs, err := p.subordinatesFor(ctx, user)
	if err != nil {
		return ListFilter{}, err
	}
	return BuildListFilter(user, subs)
}

// sameCompany only hits the directory for roles whose reach is not bounded
// by the reporting line.
func (p *Policy) sameCompany(ctx context.Context, user *model.User, ownerID uint) (bool, error) {
	switch capabilityOf(user.Role).Scope {
	case ScopeOwn, ScopeTeam:
		return true, nil
	}
	if ownerID == user.ID {
		return true, nil
	}
	companyID, err := p.dir.CompanyIDOf(ctx, ownerID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolve company of %d: %w", ownerID, err)
	}
	return companyID == user.CompanyID, nil
}

// EnsureCanView checks call-activity access for a single record.
func (p *Policy) EnsureCanView(ctx context.Context, user *model.User, ownerID uint) error {
	if err := EnsureCallActivityAccess(user.Role); err != nil {
		return err
	}
	subs, err := p.subordinatesFor(ctx, user)
	if err != nil {
		return err
	}
	same, err := p.sameCompany(ctx, user, ownerID)
	if err != nil {
		return err
	}
	if !same || !CanAccessUserRecord(user, ownerID, subs) {
		return apperror.Forbidden("you do not have access to records of user %d", ownerID)
	}
	return nil
}

func (p *Policy) EnsureCanApprove(ctx context.Context, user *model.User, ownerID uint) error {
	if err := EnsureCallActivityAccess(user.Role); err != nil {
		return err
	}
	subs, err := p.subordinatesFor(ctx, user)
	if err != nil {
		return err
	}
	same, err := p.sameCompany(ctx, user, ownerID)
	if err != nil {
		return err
	}
	if !same || !CanApprove(user, ownerID, subs) {
		return apperror.Forbidden("you are not an authorized approver for user %d", ownerID)
	}
	return nil
}

// EnsureCanViewUser is the user-management check; it does not apply the
// call-activity restriction.
func (p *Policy) EnsureCanViewUser(ctx context.Context, user *model.User, targetID uint) error {
	if !CanAccessUserData(user.Role) {
		return apperror.Forbidden("role %s cannot access user data", user.Role)
	}
	subs, err := p.subordinatesFor(ctx, user)
	if err != nil {
		return err
	}
	same, err := p.sameCompany(ctx, user, targetID)
	if err != nil {
		return err
	}
	if !same || !CanAccessUserRecord(user, targetID, subs) {
		return apperror.Forbidden("you do not have access to user %d", targetID)
	}
	return nil
}
