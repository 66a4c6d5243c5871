package user

// Principal is the authenticated caller resolved by the account service.
type Principal struct {
	ID          string
	DisplayName string
	Email       string
	Organizer   bool
}
