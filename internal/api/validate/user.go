package validate

// Registration checks a new user's username and password.
func Registration(username, password string) error {
	var errs Errs
	if ef := Required("username", username); ef != nil {
		errs.add(ef)
	} else {
		errs.add(MinLen("username", username, 3))
	}
	if ef := Required("password", password); ef != nil {
		errs.add(ef)
	} else {
		errs.add(MinLen("password", password, 3))
	}
	return errs.err()
}
