package transact

// Result is the outcome of applying one special transaction. Results are
// codes, not Go errors: a rejection is a normal, expected outcome that the
// caller translates into network-visible transaction metadata. Go errors
// are reserved for mechanical failures inside the core and surface as
// InternalFailure at the engine boundary.
type Result uint8

const (
	// Success: the transaction was applied; the store's working set holds
	// the resulting entries.
	Success Result = iota

	// BadSource: a system transaction originated from a non-zero account.
	BadSource

	// BadSignature: a system transaction carried a signature or signing
	// key.
	BadSignature

	// BadSequence: a system transaction carried a non-zero sequence.
	BadSequence

	// BadFee: a system transaction carried a non-zero fee.
	BadFee

	// UnknownKind: the dispatcher received an unrecognized transaction
	// kind.
	UnknownKind

	// NoDestination: the referrer account was not specified.
	NoDestination

	// SelfReferral: an account tried to refer itself.
	SelfReferral

	// DestinationNotFound: the referrer account does not exist. Permanent.
	DestinationNotFound

	// AccountNotSynced: the referred account does not exist in the local
	// view yet. Transient; the caller may retry after further sync.
	AccountNotSynced

	// RefereeExists: the referred account's referee field is already set.
	// The link is immutable once established.
	RefereeExists

	// ReferenceExists: the referrer already lists the referred account.
	// Unreachable while RefereeExists holds, checked defensively.
	ReferenceExists

	// AlreadyEnacted: the amendment is already active. A soft, idempotent
	// rejection, not an error state.
	AlreadyEnacted

	// InternalFailure: arithmetic overflow, forest corruption, or a
	// referral chain beyond the depth cap. Fatal to this transaction only.
	InternalFailure
)

// OK reports whether the transaction was applied.
func (r Result) OK() bool { return r == Success }

// Malformed reports whether the transaction can never succeed because its
// contents are invalid.
func (r Result) Malformed() bool {
	switch r {
	case BadSource, BadSignature, BadSequence, BadFee, UnknownKind,
		NoDestination, SelfReferral:
		return true
	default:
		return false
	}
}

// Transient reports whether the rejection may resolve itself after further
// ledger sync, making the transaction retry-eligible.
func (r Result) Transient() bool { return r == AccountNotSynced }

func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case BadSource:
		return "BadSource"
	case BadSignature:
		return "BadSignature"
	case BadSequence:
		return "BadSequence"
	case BadFee:
		return "BadFee"
	case UnknownKind:
		return "UnknownKind"
	case NoDestination:
		return "NoDestination"
	case SelfReferral:
		return "SelfReferral"
	case DestinationNotFound:
		return "DestinationNotFound"
	case AccountNotSynced:
		return "AccountNotSynced"
	case RefereeExists:
		return "RefereeExists"
	case ReferenceExists:
		return "ReferenceExists"
	case AlreadyEnacted:
		return "AlreadyEnacted"
	case InternalFailure:
		return "InternalFailure"
	default:
		return "Invalid"
	}
}
