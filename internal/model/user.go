package model

// Role determines what a user can see and which mutations they may perform.
type Role string

const (
	RoleManagement Role = "MANAGEMENT"
	RoleTeamLead   Role = "TEAM_LEAD"
	RoleDeveloper  Role = "DEVELOPER"
)

// Roles lists all roles in display order.
func Roles() []Role {
	return []Role{RoleManagement, RoleTeamLead, RoleDeveloper}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleManagement, RoleTeamLead, RoleDeveloper:
		return true
	}
	return false
}

// Label returns a human-readable form of the role ("Team Lead").
func (r Role) Label() string {
	switch r {
	case RoleManagement:
		return "Management"
	case RoleTeamLead:
		return "Team Lead"
	case RoleDeveloper:
		return "Developer"
	default:
		return string(r)
	}
}

// Capability names a privileged mutation on the store.
type Capability string

const (
	CapCreateProject Capability = "create_project"
	CapDeleteProject Capability = "delete_project"
	CapCreateUser    Capability = "create_user"
	CapDeleteUser    Capability = "delete_user"
)

// capabilities maps each role to the mutations it is allowed to perform.
// Task operations are open to every authenticated role and are not listed.
var capabilities = map[Role]map[Capability]bool{
	RoleManagement: {
		CapCreateProject: true,
		CapDeleteProject: true,
		CapCreateUser:    true,
		CapDeleteUser:    true,
	},
	RoleTeamLead: {
		CapCreateProject: true,
		CapDeleteProject: true,
	},
	RoleDeveloper: {},
}

// Can reports whether the role holds the given capability.
func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}

// User is a team member. Users are immutable once created except for deletion.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Initial returns the first letter of the user's name for avatar rendering.
func (u User) Initial() string {
	if u.Name == "" {
		return "?"
	}
	return string([]rune(u.Name)[0])
}
