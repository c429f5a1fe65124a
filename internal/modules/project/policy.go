package project

import "easyweb/internal/domain"

// CanWrite reports whether the user may modify the project or publish to
// it: admin role, owner, delegated manager, or an explicit write grant.
func CanWrite(p *domain.Project, userID int64, role domain.UserRole, perm *domain.ProjectPermission) bool {
	if role == domain.RoleAdmin {
		return true
	}
	if p.OwnerID == userID {
		return true
	}
	if p.ManagerID != nil && *p.ManagerID == userID {
		return true
	}
	return perm != nil && perm.Permission == domain.PermissionWrite
}

// CanRead additionally accepts any permission grant, read included.
func CanRead(p *domain.Project, userID int64, role domain.UserRole, perm *domain.ProjectPermission) bool {
	if CanWrite(p, userID, role, perm) {
		return true
	}
	return perm != nil
}

// CanManageAccess limits permission grants to admin, owner and manager;
// a write grant does not let the holder hand out further grants.
func CanManageAccess(p *domain.Project, userID int64, role domain.UserRole) bool {
	if role == domain.RoleAdmin {
		return true
	}
	if p.OwnerID == userID {
		return true
	}
	return p.ManagerID != nil && *p.ManagerID == userID
}
