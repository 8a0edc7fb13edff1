package domain

import "errors"

// Kind classifies an error for callers that need to react to the class of
// failure rather than to a specific sentinel (e.g. the HTTP status mapping).
type Kind string

const (
	KindState         Kind = "StateError"
	KindValidation    Kind = "ValidationError"
	KindTiming        Kind = "TimingError"
	KindNotFound      Kind = "NotFoundError"
	KindAuthorization Kind = "AuthorizationError"
	KindInternal      Kind = "InternalError"
)

type kindError struct {
	kind Kind
	msg  string
}

func (e *kindError) Error() string {
	return e.msg
}

func newError(kind Kind, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// KindOf returns the kind of the first classified error in err's chain.
// Unclassified errors are internal.
func KindOf(err error) Kind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindInternal
}

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = newError(KindInternal, "Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = newError(KindNotFound, "Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = newError(KindValidation, "Given Param is not valid")

	// lifecycle
	ErrAuctionAlreadyActive = newError(KindState, "there's already an auction active")
	ErrNoAuctionActive      = newError(KindState, "no auction active")
	ErrAuctionsDisabled     = newError(KindState, "auctions are not active at the moment")
	ErrNoItemsAvailable     = newError(KindState, "no items left to auction")
	ErrNoBidsPlaced         = newError(KindState, "no bids were made")
	ErrItemUnderAuction     = newError(KindState, "can't delete an item that's currently under auction")
	ErrAuctionArchived      = newError(KindState, "auction is already archived")

	// bids and parameters
	ErrInvalidBidCurrency        = newError(KindValidation, "bid must be made with the bid currency")
	ErrBidTooLow                 = newError(KindValidation, "bid increase not high enough")
	ErrInvalidAuctionDuration    = newError(KindValidation, "auction duration must be more than 0 and longer than the auction buffer")
	ErrInvalidAuctionBuffer      = newError(KindValidation, "auction buffer must be more than 0 and lower than the auction duration")
	ErrInvalidMinimumBidIncrease = newError(KindValidation, "minimum bid increase must be higher than 0")
	ErrInvalidSideAsset          = newError(KindValidation, "not a side asset")
	ErrResourceMismatch          = newError(KindValidation, "resource does not match the vault")
	ErrInsufficientFunds         = newError(KindValidation, "insufficient funds")
	ErrInvalidAmount             = newError(KindValidation, "amount must not be negative")
	ErrInvalidItemData           = newError(KindValidation, "invalid item data")
	ErrInvalidAddress            = newError(KindValidation, "Invalid address")
	ErrInvalidRewardRate         = newError(KindValidation, "reward rate must be in [0, 1)")

	// timing
	ErrAuctionNotEnded = newError(KindTiming, "current auction has not ended yet")
	ErrAuctionEnded    = newError(KindTiming, "auction has ended")

	// lookups
	ErrAuctionNotFound   = newError(KindNotFound, "auction not found")
	ErrItemNotAvailable  = newError(KindNotFound, "item is not available")
	ErrItemNotInVault    = newError(KindNotFound, "item is not in the vault")
	ErrSideAssetNotFound = newError(KindNotFound, "side asset is not in the vault")
	ErrPoolNotFound      = newError(KindNotFound, "pool not found")

	// access control
	ErrUnauthorized     = newError(KindAuthorization, "caller is not authenticated")
	ErrForbidden        = newError(KindAuthorization, "caller lacks the required role")
	ErrNotAccountOwner  = newError(KindAuthorization, "caller does not own the account")
	ErrInvalidSignature = newError(KindAuthorization, "Invalid signature")
)
