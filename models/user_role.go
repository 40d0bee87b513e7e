package models

type UserRole string

const (
	UserRoleCandidate UserRole = "CANDIDATE_ROLE"
	UserRoleStaff     UserRole = "STAFF_ROLE"
	UserRoleAdmin     UserRole = "ADMIN_ROLE"
)

var roleHumanName = map[UserRole]string{
	UserRoleCandidate: "Кандидат",
	UserRoleStaff:     "Сотрудник отбора",
	UserRoleAdmin:     "Администратор",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsStaff() bool {
	return r == UserRoleStaff || r == UserRoleAdmin
}

const SystemUser = "Система"
