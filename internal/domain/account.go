package domain

import (
	"strings"
	"unicode"
)

// AccountClass is the result of classifying a registration email.
type AccountClass string

const (
	AccountAdmin   AccountClass = "ADMIN"
	AccountStudent AccountClass = "STUDENT"
	AccountInvalid AccountClass = "INVALID"
)

// ClassifyEmail derives the account class from the local part of an email
// address: alphabetic-only local parts register administrators, digit-only
// local parts register students, anything else is rejected. The class is
// computed once at sign-up and stored immutably on the account.
func ClassifyEmail(email string) AccountClass {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return AccountInvalid
	}

	allLetters := true
	allDigits := true
	for _, r := range local {
		if !unicode.IsLetter(r) {
			allLetters = false
		}
		if !unicode.IsDigit(r) {
			allDigits = false
		}
	}

	switch {
	case allLetters:
		return AccountAdmin
	case allDigits:
		return AccountStudent
	default:
		return AccountInvalid
	}
}

// UserType maps a valid account class to its stored role tag.
func (c AccountClass) UserType() (UserType, bool) {
	switch c {
	case AccountAdmin:
		return UserTypeAdmin, true
	case AccountStudent:
		return UserTypeStudent, true
	default:
		return "", false
	}
}
