package enum

type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
)

func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleOrganizer
}
