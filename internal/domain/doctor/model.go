package doctor

// Doctor maps to the doctors table. Doctors are created only by seeding;
// no workflow in the application mutates them.
type Doctor struct {
	ID           int    `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Dept         string `db:"dept" json:"dept"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Color        string `db:"color" json:"color"`
}

// Initials returns up to two upper-case initials for avatar display.
func (d *Doctor) Initials() string {
	initials := make([]rune, 0, 2)
	prev := ' '
	for _, r := range d.Name {
		if prev == ' ' && r >= 'A' && r <= 'Z' {
			initials = append(initials, r)
			if len(initials) == 2 {
				break
			}
		}
		prev = r
	}
	return string(initials)
}
