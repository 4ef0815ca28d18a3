package coupon

import (
	"errors"
	"strings"
	"time"

	"alhyra_organics/internal/models"
)

type Kind int

const (
	InvalidCode Kind = iota + 1
	Expired
	InvalidInput
)

func (k Kind) String() string {
	switch k {
	case InvalidCode:
		return "INVALID_CODE"
	case Expired:
		return "EXPIRED"
	case InvalidInput:
		return "INVALID_INPUT"
	default:
		return "UNKNOWN"
	}
}

// Messages shown to the shopper or admin.
const (
	MsgApplied         = "Coupon applied successfully!"
	MsgInvalidCode     = "Invalid coupon code."
	MsgExpired         = "Coupon has expired."
	MsgCodeRequired    = "Coupon code is required"
	MsgPercentageRange = "Percentage must be 0-100"
	MsgExpiryRequired  = "Expiry date is required"
	MsgExpiryFormat    = "Expiry date must be YYYY-MM-DD"
)

const DateLayout = "2006-01-02"

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the Kind carried by err, or 0 when err is not a coupon error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

// Validate finds code among coupons, ignoring case, and checks it has not
// expired. Only the calendar date matters: a coupon is usable through the
// whole of its expiry day.
func Validate(code string, coupons []models.Coupon, now time.Time) (models.Coupon, error) {
	code = strings.TrimSpace(code)
	for _, c := range coupons {
		if !strings.EqualFold(c.Code, code) {
			continue
		}
		if dateOf(c.ExpiryDate).Before(dateOf(now)) {
			return models.Coupon{}, &Error{Kind: Expired, Message: MsgExpired}
		}
		return c, nil
	}
	return models.Coupon{}, &Error{Kind: InvalidCode, Message: MsgInvalidCode}
}

// New checks an admin-entered coupon and normalises its code to upper case.
func New(code string, pct int, expiry string) (models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return models.Coupon{}, &Error{Kind: InvalidInput, Message: MsgCodeRequired}
	}
	if pct < 0 || pct > 100 {
		return models.Coupon{}, &Error{Kind: InvalidInput, Message: MsgPercentageRange}
	}
	expiry = strings.TrimSpace(expiry)
	if expiry == "" {
		return models.Coupon{}, &Error{Kind: InvalidInput, Message: MsgExpiryRequired}
	}
	d, err := time.Parse(DateLayout, expiry)
	if err != nil {
		return models.Coupon{}, &Error{Kind: InvalidInput, Message: MsgExpiryFormat}
	}
	return models.Coupon{Code: code, DiscountPercentage: pct, ExpiryDate: d}, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
